// Package calendar implements the temporal logic behind the event manager:
// calendar-grid math, week/month labels, date+time parsing, overlap
// detection between event time ranges, and view/search filtering.
//
// All functions are pure and never return errors for malformed event data.
// Bad date or time strings degrade to the zero time.Time, which acts as an
// "invalid" sentinel: it never overlaps anything, never matches any range,
// and is excluded from every positive filter. A single corrupt record can
// therefore never break a batch operation over a whole event collection.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"iljeong/internal/model"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04"
)

// DaysInMonth returns the number of days in the given 1-indexed month.
// Out-of-range months roll over the way native date arithmetic does:
// month 13 resolves to January of the following year (31 days), month 0 to
// December of the previous year. The result is always in [28,31].
func DaysInMonth(year, month int) int {
	// Day 0 of the following month is the last day of this one; time.Date
	// normalizes out-of-range months for free.
	return time.Date(year, time.Month(month+1), 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekDates returns the 7 consecutive calendar dates (midnight, in t's
// location) of the Sunday-to-Saturday week containing t. The week spans
// month and year boundaries as needed.
func WeekDates(t time.Time) [7]time.Time {
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	sunday := midnight.AddDate(0, 0, -int(midnight.Weekday()))

	var week [7]time.Time
	for i := range week {
		week[i] = sunday.AddDate(0, 0, i)
	}
	return week
}

// WeeksAtMonth lays out the calendar month containing t as Sunday-first
// grid rows. Each row holds 7 day-of-month numbers; cells outside the month
// are 0.
func WeeksAtMonth(t time.Time) [][7]int {
	year, month, _ := t.Date()
	days := DaysInMonth(year, int(month))
	first := time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	offset := int(first.Weekday())

	rows := (offset + days + 6) / 7
	weeks := make([][7]int, rows)
	for day := 1; day <= days; day++ {
		cell := offset + day - 1
		weeks[cell/7][cell%7] = day
	}
	return weeks
}

// EventsForDay returns the events whose date falls on the given day of
// month. Days outside any month (0, 32, ...) simply match nothing, and
// events with unparseable dates are skipped.
func EventsForDay(events []*model.Event, day int) []*model.Event {
	matched := make([]*model.Event, 0)
	for _, ev := range events {
		d, err := time.Parse(dateLayout, ev.Date)
		if err != nil {
			continue
		}
		if d.Day() == day {
			matched = append(matched, ev)
		}
	}
	return matched
}

// FormatWeek renders the "YYYY년 M월 N주" label for the week containing t.
// Week-of-month is taken from the Thursday of that week, so a week strung
// across a month boundary is labeled under whichever month holds its
// majority; a late-December date whose Thursday lands in January is labeled
// as week 1 of the new year.
func FormatWeek(t time.Time) string {
	thursday := t.AddDate(0, 0, int(time.Thursday)-int(t.Weekday()))
	weekOfMonth := (thursday.Day() + 6) / 7
	return fmt.Sprintf("%d년 %d월 %d주", thursday.Year(), int(thursday.Month()), weekOfMonth)
}

// FormatMonth renders the "YYYY년 M월" label for the month containing t.
func FormatMonth(t time.Time) string {
	return fmt.Sprintf("%d년 %d월", t.Year(), int(t.Month()))
}

// IsDateInRange reports whether d lies within [start, end], inclusive on
// both ends. An inverted range (start after end) contains nothing.
func IsDateInRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

// FillZero left-pads the decimal rendering of value with zeros to at least
// size characters (default 2). Fractional parts are preserved and count
// toward the width; values already at or above the width are returned
// unchanged, never truncated.
func FillZero(value float64, size ...int) string {
	width := 2
	if len(size) > 0 {
		width = size[0]
	}
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// FormatDate renders t as "YYYY-MM-DD". If day is supplied it replaces the
// day-of-month verbatim, without re-normalizing month or year, so an
// out-of-range day shows up as given (e.g. "2024-11-32").
func FormatDate(t time.Time, day ...int) string {
	d := t.Day()
	if len(day) > 0 {
		d = day[0]
	}
	return fmt.Sprintf("%d-%s-%s", t.Year(), FillZero(float64(int(t.Month()))), FillZero(float64(d)))
}

// ParseDateTime combines a "YYYY-MM-DD" date string and an "HH:MM" time
// string into a single time.Time in loc. Malformed or empty input yields
// the zero time.Time; callers check validity with IsZero.
func ParseDateTime(dateStr, timeStr string, loc *time.Location) time.Time {
	t, err := time.ParseInLocation(dateTimeLayout, dateStr+"T"+timeStr, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ParseDate parses a "YYYY-MM-DD" date string at midnight in loc, returning
// the zero time.Time when the string is malformed.
func ParseDate(dateStr string, loc *time.Location) time.Time {
	t, err := time.ParseInLocation(dateLayout, dateStr, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}
