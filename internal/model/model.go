package model

// RepeatType enumerates how (and whether) an event repeats. Repeat is
// descriptive metadata carried with the event; it is never expanded into
// multiple occurrences anywhere in this codebase. The only consumer is ICS
// export, which serializes it as an RRULE property.
type RepeatType string

const (
	RepeatNone    RepeatType = "none"
	RepeatDaily   RepeatType = "daily"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
	RepeatYearly  RepeatType = "yearly"
)

// Repeat describes the recurrence metadata of an event.
type Repeat struct {
	Type     RepeatType `json:"type"`
	Interval int        `json:"interval"`
	// EndDate is an optional "YYYY-MM-DD" bound; empty means unbounded.
	EndDate string `json:"endDate,omitempty"`
}

// Event is a single concrete calendar entry. Date is "YYYY-MM-DD" and
// StartTime/EndTime are "HH:MM" (24-hour). The strings are kept as-is from
// the caller; malformed values degrade to the invalid-range sentinel in the
// calendar package rather than failing whole-collection operations.
// StartTime is not guaranteed to precede EndTime.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Repeat      Repeat `json:"repeat"`
	// NotificationTime is the lead time in minutes before StartTime at
	// which a notification should fire.
	NotificationTime int `json:"notificationTime"`
}

// EventRequest is the payload for creating or updating an event.
type EventRequest struct {
	Title            string `json:"title" validate:"required"`
	Date             string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime        string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime          string `json:"endTime" validate:"required,datetime=15:04"`
	Description      string `json:"description"`
	Location         string `json:"location"`
	Category         string `json:"category"`
	Repeat           Repeat `json:"repeat"`
	NotificationTime int    `json:"notificationTime" validate:"gte=0"`
}

// Event materializes the request into an Event with the given id.
func (r *EventRequest) Event(id string) *Event {
	return &Event{
		ID:               id,
		Title:            r.Title,
		Date:             r.Date,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		Description:      r.Description,
		Location:         r.Location,
		Category:         r.Category,
		Repeat:           r.Repeat,
		NotificationTime: r.NotificationTime,
	}
}

// Notification is a transient, process-local alert for one event. ID is the
// source event id; Message is the user-facing text. Notifications live in a
// notify.Engine until positionally dismissed or the process restarts.
type Notification struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
