package calendar

import (
	"strings"
	"time"

	"iljeong/internal/model"
)

// ViewMode selects the calendar window events are filtered against.
type ViewMode string

const (
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// FilterEvents returns the events that fall inside the week or month
// containing referenceDate and match searchTerm, preserving input order.
// An empty searchTerm never excludes anything; an unknown view applies no
// window at all. Event dates are interpreted in referenceDate's location,
// and events with unparseable dates fall outside every window.
func FilterEvents(events []*model.Event, searchTerm string, referenceDate time.Time, view ViewMode) []*model.Event {
	searched := searchEvents(events, searchTerm)

	switch view {
	case ViewWeek:
		week := WeekDates(referenceDate)
		return filterByDateRange(searched, week[0], week[6], referenceDate.Location())
	case ViewMonth:
		year, month, _ := referenceDate.Date()
		loc := referenceDate.Location()
		monthStart := time.Date(year, month, 1, 0, 0, 0, 0, loc)
		monthEnd := time.Date(year, month, DaysInMonth(year, int(month)), 0, 0, 0, 0, loc)
		return filterByDateRange(searched, monthStart, monthEnd, loc)
	}
	return searched
}

func searchEvents(events []*model.Event, term string) []*model.Event {
	if term == "" {
		return events
	}
	lower := strings.ToLower(term)

	matched := make([]*model.Event, 0)
	for _, ev := range events {
		if containsTerm(ev.Title, lower) ||
			containsTerm(ev.Description, lower) ||
			containsTerm(ev.Location, lower) {
			matched = append(matched, ev)
		}
	}
	return matched
}

func containsTerm(field, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(field), lowerTerm)
}

func filterByDateRange(events []*model.Event, start, end time.Time, loc *time.Location) []*model.Event {
	matched := make([]*model.Event, 0)
	for _, ev := range events {
		d := ParseDate(ev.Date, loc)
		if d.IsZero() {
			continue
		}
		if IsDateInRange(d, start, end) {
			matched = append(matched, ev)
		}
	}
	return matched
}
