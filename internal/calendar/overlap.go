package calendar

import (
	"time"

	"iljeong/internal/model"
)

// TimeRange is the concrete interval an event occupies, derived from its
// date and start/end time strings. A range with zero endpoints is the
// invalid sentinel: it compares as never overlapping anything.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether both endpoints parsed successfully.
func (r TimeRange) Valid() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}

// EventToRange derives the TimeRange of an event in loc. If either the
// date, start time, or end time fails to parse, both endpoints are invalid.
func EventToRange(ev *model.Event, loc *time.Location) TimeRange {
	r := TimeRange{
		Start: ParseDateTime(ev.Date, ev.StartTime, loc),
		End:   ParseDateTime(ev.Date, ev.EndTime, loc),
	}
	if r.Start.IsZero() || r.End.IsZero() {
		return TimeRange{}
	}
	return r
}

// Overlapping reports whether two ranges overlap under half-open interval
// semantics: each must start strictly before the other ends, so an event
// ending exactly when another starts does not overlap. Invalid ranges
// overlap nothing.
func Overlapping(a, b TimeRange) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// EventsOverlap reports whether two events occupy overlapping time ranges.
func EventsOverlap(a, b *model.Event, loc *time.Location) bool {
	return Overlapping(EventToRange(a, loc), EventToRange(b, loc))
}

// FindOverlapping returns, in input order, every event from events whose
// range overlaps the candidate's. An event sharing the candidate's id is
// skipped, so a list that still contains the event being edited never
// reports a self-overlap.
func FindOverlapping(candidate *model.Event, events []*model.Event, loc *time.Location) []*model.Event {
	cr := EventToRange(candidate, loc)

	overlapping := make([]*model.Event, 0)
	for _, ev := range events {
		if ev.ID == candidate.ID {
			continue
		}
		if Overlapping(cr, EventToRange(ev, loc)) {
			overlapping = append(overlapping, ev)
		}
	}
	return overlapping
}
