// Package notify implements the notification trigger engine: a recurring
// evaluation against the clock that fires each event's lead-time alert
// exactly once per process lifetime.
package notify

import (
	"fmt"
	"sync"
	"time"

	"iljeong/internal/calendar"
	"iljeong/internal/model"
)

// Engine owns the notified set and the ordered list of live notifications.
// Both are private to one instance; two engines share nothing. The notified
// set only ever grows: once an event id has fired, later ticks inside (or
// past) its window never fire again, and positional dismissal of the
// notification does not re-arm it.
//
// Tick runs on the scheduler goroutine while the HTTP layer reads
// snapshots, so the state is mutex-guarded.
type Engine struct {
	mu            sync.RWMutex
	loc           *time.Location
	notified      map[string]struct{}
	notifications []model.Notification
}

// NewEngine creates an empty engine whose event date/time strings are
// interpreted in loc.
func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{
		loc:      loc,
		notified: make(map[string]struct{}),
	}
}

// Message renders the user-facing notification text for an event.
func Message(ev *model.Event) string {
	return fmt.Sprintf("%d분 후 %s 일정이 시작됩니다.", ev.NotificationTime, ev.Title)
}

// due reports whether ev's lead-time window [start-notificationTime, start)
// contains now. Once the event has started it is no longer eligible, and an
// event with an unparseable start is never due.
func (e *Engine) due(ev *model.Event, now time.Time) bool {
	start := calendar.ParseDateTime(ev.Date, ev.StartTime, e.loc)
	if start.IsZero() {
		return false
	}
	windowStart := start.Add(-time.Duration(ev.NotificationTime) * time.Minute)
	return !now.Before(windowStart) && now.Before(start)
}

// UpcomingEvents returns the events that are due at now and have not yet
// fired, in input order. It does not record anything; Tick does.
func (e *Engine) UpcomingEvents(events []*model.Event, now time.Time) []*model.Event {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.upcoming(events, now)
}

func (e *Engine) upcoming(events []*model.Event, now time.Time) []*model.Event {
	upcoming := make([]*model.Event, 0)
	for _, ev := range events {
		if _, fired := e.notified[ev.ID]; fired {
			continue
		}
		if e.due(ev, now) {
			upcoming = append(upcoming, ev)
		}
	}
	return upcoming
}

// Tick evaluates one scheduler beat: every event newly inside its lead-time
// window gains exactly one notification and its id joins the notified set.
// Re-running the same instant is a no-op for already-fired events. The
// newly created notifications are returned.
func (e *Engine) Tick(events []*model.Event, now time.Time) []model.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()

	fired := make([]model.Notification, 0)
	for _, ev := range e.upcoming(events, now) {
		n := model.Notification{ID: ev.ID, Message: Message(ev)}
		e.notifications = append(e.notifications, n)
		e.notified[ev.ID] = struct{}{}
		fired = append(fired, n)
	}
	return fired
}

// Notifications returns a snapshot of the current notification list in
// firing order.
func (e *Engine) Notifications() []model.Notification {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]model.Notification, len(e.notifications))
	copy(out, e.notifications)
	return out
}

// NotifiedEvents returns the ids that have fired, in firing order.
func (e *Engine) NotifiedEvents() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ids := make([]string, 0, len(e.notified))
	for _, n := range e.notifications {
		ids = append(ids, n.ID)
	}
	// Dismissed notifications drop out of the list above but stay
	// notified; append those too.
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	for id := range e.notified {
		if _, ok := seen[id]; !ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// RemoveNotification dismisses the notification at the given position.
// Out-of-range indexes are ignored. The event id stays in the notified set,
// so the notification will not fire again.
func (e *Engine) RemoveNotification(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.notifications) {
		return
	}
	e.notifications = append(e.notifications[:index], e.notifications[index+1:]...)
}
