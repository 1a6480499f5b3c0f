// Package ics renders stored events as an iCalendar document so other
// calendar clients can subscribe to or import the collection.
package ics

import (
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"iljeong/internal/calendar"
	"iljeong/internal/model"
)

// Export serializes events into a VCALENDAR payload. Events whose date or
// time strings fail to parse are skipped rather than aborting the export.
// Repeat metadata with a type other than "none" is rendered as an RRULE
// property; no occurrence expansion happens here or anywhere else.
func Export(events []*model.Event, loc *time.Location) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//iljeong//calendar//KO")
	cal.SetXWRCalName("iljeong")

	for _, ev := range events {
		r := calendar.EventToRange(ev, loc)
		if !r.Valid() {
			continue
		}

		ve := cal.AddEvent(ev.ID)
		ve.SetDtStampTime(time.Now().In(loc))
		ve.SetStartAt(r.Start)
		ve.SetEndAt(r.End)
		ve.SetSummary(ev.Title)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
		if ev.Category != "" {
			ve.SetProperty(ical.ComponentPropertyCategories, ev.Category)
		}

		if rule := repeatRule(ev.Repeat, loc); rule != "" {
			ve.AddRrule(rule)
		}
	}

	return cal.Serialize()
}

// repeatRule builds the RRULE value for an event's repeat metadata, or ""
// when the event does not repeat or the metadata cannot be expressed.
func repeatRule(rep model.Repeat, loc *time.Location) string {
	var freq rrule.Frequency
	switch rep.Type {
	case model.RepeatDaily:
		freq = rrule.DAILY
	case model.RepeatWeekly:
		freq = rrule.WEEKLY
	case model.RepeatMonthly:
		freq = rrule.MONTHLY
	case model.RepeatYearly:
		freq = rrule.YEARLY
	default:
		return ""
	}

	opt := rrule.ROption{
		Freq:     freq,
		Interval: rep.Interval,
	}
	if rep.EndDate != "" {
		if until := calendar.ParseDate(rep.EndDate, loc); !until.IsZero() {
			opt.Until = until.UTC()
		}
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return ""
	}
	return rule.String()
}
