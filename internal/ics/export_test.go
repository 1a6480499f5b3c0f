package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"iljeong/internal/model"
)

func TestExport(t *testing.T) {
	events := []*model.Event{
		{
			ID: "e1", Title: "팀 회의", Date: "2024-11-01",
			StartTime: "10:00", EndTime: "11:00",
			Description: "주간 팀 미팅", Location: "회의실 A", Category: "업무",
			Repeat: model.Repeat{
				Type:     model.RepeatWeekly,
				Interval: 1,
				EndDate:  "2024-12-31",
			},
		},
		{
			ID: "e2", Title: "점심", Date: "2024-11-01",
			StartTime: "12:00", EndTime: "13:00",
			Repeat: model.Repeat{Type: model.RepeatNone},
		},
		{
			ID: "broken", Title: "깨진 이벤트", Date: "2024-1101",
			StartTime: "10:00", EndTime: "11:00",
		},
	}

	out := Export(events, time.UTC)

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "SUMMARY:팀 회의")
	assert.Contains(t, out, "LOCATION:회의실 A")
	assert.Contains(t, out, "UID:e1")
	assert.Contains(t, out, "UID:e2")

	t.Run("unparseable events are skipped, not fatal", func(t *testing.T) {
		assert.NotContains(t, out, "broken")
		assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	})

	t.Run("repeat metadata becomes an RRULE", func(t *testing.T) {
		assert.Contains(t, out, "RRULE:")
		assert.Contains(t, out, "FREQ=WEEKLY")
		assert.Contains(t, out, "UNTIL=20241231")
		assert.Equal(t, 1, strings.Count(out, "RRULE:"), "non-repeating events carry no RRULE")
	})
}

func TestRepeatRule(t *testing.T) {
	t.Run("none yields no rule", func(t *testing.T) {
		assert.Empty(t, repeatRule(model.Repeat{Type: model.RepeatNone}, time.UTC))
	})

	t.Run("unknown type yields no rule", func(t *testing.T) {
		assert.Empty(t, repeatRule(model.Repeat{Type: model.RepeatType("hourly")}, time.UTC))
	})

	t.Run("interval survives serialization", func(t *testing.T) {
		rule := repeatRule(model.Repeat{Type: model.RepeatDaily, Interval: 2}, time.UTC)
		assert.Contains(t, rule, "FREQ=DAILY")
		assert.Contains(t, rule, "INTERVAL=2")
	})

	t.Run("unparseable end date is simply omitted", func(t *testing.T) {
		rule := repeatRule(model.Repeat{Type: model.RepeatDaily, EndDate: "soon"}, time.UTC)
		assert.Contains(t, rule, "FREQ=DAILY")
		assert.NotContains(t, rule, "UNTIL")
	})
}
