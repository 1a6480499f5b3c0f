package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iljeong/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		want  int
	}{
		{"january has 31 days", 2024, 1, 31},
		{"april has 30 days", 2024, 4, 30},
		{"leap-year february has 29 days", 2024, 2, 29},
		{"non-leap february has 28 days", 2023, 2, 28},
		{"month 13 rolls over to next january", 2024, 13, 31},
		{"month 0 rolls back to previous december", 2024, 0, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month))
		})
	}
}

func TestWeekDates(t *testing.T) {
	t.Run("midweek date yields its Sunday-to-Saturday week", func(t *testing.T) {
		week := WeekDates(date(2024, time.November, 6))
		want := [7]time.Time{
			date(2024, time.November, 3),
			date(2024, time.November, 4),
			date(2024, time.November, 5),
			date(2024, time.November, 6),
			date(2024, time.November, 7),
			date(2024, time.November, 8),
			date(2024, time.November, 9),
		}
		assert.Equal(t, want, week)
	})

	t.Run("sunday itself starts the week", func(t *testing.T) {
		week := WeekDates(date(2024, time.November, 3))
		assert.Equal(t, date(2024, time.November, 3), week[0])
		assert.Equal(t, date(2024, time.November, 9), week[6])
	})

	t.Run("week spans a year boundary", func(t *testing.T) {
		week := WeekDates(date(2024, time.December, 31))
		assert.Equal(t, date(2024, time.December, 29), week[0])
		assert.Equal(t, date(2025, time.January, 4), week[6])
	})

	t.Run("same week whether entered from the old or new year", func(t *testing.T) {
		assert.Equal(t, WeekDates(date(2024, time.December, 31)), WeekDates(date(2025, time.January, 1)))
	})

	t.Run("week containing leap day", func(t *testing.T) {
		week := WeekDates(date(2024, time.February, 29))
		assert.Equal(t, date(2024, time.February, 25), week[0])
		assert.Equal(t, date(2024, time.March, 2), week[6])
	})

	t.Run("input date is always contained in its week", func(t *testing.T) {
		d := date(2024, time.November, 30)
		week := WeekDates(d)
		assert.Contains(t, week[:], d)
	})

	t.Run("time of day is stripped", func(t *testing.T) {
		noon := time.Date(2024, time.November, 6, 12, 34, 56, 0, time.UTC)
		assert.Equal(t, WeekDates(date(2024, time.November, 6)), WeekDates(noon))
	})
}

func TestWeeksAtMonth(t *testing.T) {
	weeks := WeeksAtMonth(date(2024, time.July, 1))

	require.Len(t, weeks, 5)
	assert.Equal(t, [7]int{0, 1, 2, 3, 4, 5, 6}, weeks[0])
	assert.Equal(t, [7]int{7, 8, 9, 10, 11, 12, 13}, weeks[1])
	assert.Equal(t, [7]int{14, 15, 16, 17, 18, 19, 20}, weeks[2])
	assert.Equal(t, [7]int{21, 22, 23, 24, 25, 26, 27}, weeks[3])
	assert.Equal(t, [7]int{28, 29, 30, 31, 0, 0, 0}, weeks[4])
}

func TestEventsForDay(t *testing.T) {
	base := model.Event{
		ID:        "2b7545a6-ebee-426c-b906-2329bc8d62bd",
		Title:     "팀 회의",
		StartTime: "10:00",
		EndTime:   "11:00",
	}

	first := base
	first.Date = "2024-11-01"
	zeroDay := base
	zeroDay.Date = "2024-11-00"
	overflow := base
	overflow.Date = "2024-11-32"
	events := []*model.Event{&first, &zeroDay, &overflow}

	t.Run("returns only events on the requested day", func(t *testing.T) {
		assert.Equal(t, []*model.Event{&first}, EventsForDay(events, 1))
	})

	t.Run("no events on the day yields empty slice", func(t *testing.T) {
		assert.Empty(t, EventsForDay(events, 2))
	})

	t.Run("day 0 yields empty slice", func(t *testing.T) {
		assert.Empty(t, EventsForDay(events, 0))
	})

	t.Run("day 32 yields empty slice", func(t *testing.T) {
		assert.Empty(t, EventsForDay(events, 32))
	})
}

func TestFormatWeek(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"middle of a month", date(2024, time.November, 6), "2024년 11월 1주"},
		{"first week of a month", date(2024, time.November, 3), "2024년 11월 1주"},
		{"last week of a month", date(2024, time.November, 30), "2024년 11월 4주"},
		{"year-end rolls into the new year", date(2024, time.December, 31), "2025년 1월 1주"},
		{"leap february last week", date(2024, time.February, 29), "2024년 2월 5주"},
		{"non-leap february end rolls into march", date(2023, time.February, 28), "2023년 3월 1주"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatWeek(tt.date))
		})
	}
}

func TestFormatMonth(t *testing.T) {
	assert.Equal(t, "2024년 7월", FormatMonth(date(2024, time.July, 10)))
}

func TestIsDateInRange(t *testing.T) {
	start := date(2024, time.July, 1)
	end := date(2024, time.July, 31)

	assert.True(t, IsDateInRange(date(2024, time.July, 10), start, end))
	assert.True(t, IsDateInRange(start, start, end), "inclusive lower bound")
	assert.True(t, IsDateInRange(end, start, end), "inclusive upper bound")
	assert.False(t, IsDateInRange(date(2024, time.June, 30), start, end))
	assert.False(t, IsDateInRange(date(2024, time.August, 1), start, end))

	t.Run("inverted range contains nothing", func(t *testing.T) {
		assert.False(t, IsDateInRange(date(2024, time.July, 10), end, start))
	})
}

func TestFillZero(t *testing.T) {
	tests := []struct {
		value float64
		size  []int
		want  string
	}{
		{5, []int{2}, "05"},
		{10, []int{2}, "10"},
		{3, []int{3}, "003"},
		{100, []int{2}, "100"},
		{0, []int{2}, "00"},
		{1, []int{5}, "00001"},
		{3.14, []int{5}, "03.14"},
		{5, nil, "05"},
		{1000, []int{2}, "1000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FillZero(tt.value, tt.size...))
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-11-06", FormatDate(date(2024, time.November, 6)))
	assert.Equal(t, "2024-11-01", FormatDate(date(2024, time.November, 6), 1))
	assert.Equal(t, "2024-01-06", FormatDate(date(2024, time.January, 6)))

	t.Run("day substitution is verbatim, not normalized", func(t *testing.T) {
		assert.Equal(t, "2024-11-32", FormatDate(date(2024, time.November, 6), 32))
	})
}

func TestParseDateTime(t *testing.T) {
	loc := time.UTC

	t.Run("valid date and time combine", func(t *testing.T) {
		got := ParseDateTime("2024-07-01", "14:30", loc)
		assert.Equal(t, time.Date(2024, time.July, 1, 14, 30, 0, 0, loc), got)
	})

	t.Run("malformed date yields the invalid sentinel", func(t *testing.T) {
		assert.True(t, ParseDateTime("2024-0701", "14:30", loc).IsZero())
	})

	t.Run("malformed time yields the invalid sentinel", func(t *testing.T) {
		assert.True(t, ParseDateTime("2024-07-01", "1430", loc).IsZero())
	})

	t.Run("empty date yields the invalid sentinel", func(t *testing.T) {
		assert.True(t, ParseDateTime("", "14:30", loc).IsZero())
	})
}
