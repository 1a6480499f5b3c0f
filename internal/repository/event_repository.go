package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"

	"iljeong/internal/model"
)

// ErrEventNotFound is returned when an event id does not exist.
var ErrEventNotFound = errors.New("event not found")

// EventRepository defines the data access surface for events.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*model.Event, error)
}

type eventRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewEventRepository creates a SQLite-backed event repository.
func NewEventRepository(db *sql.DB, log zerolog.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log,
	}
}

const eventColumns = `id, title, date, start_time, end_time, description, location, category,
	repeat_type, repeat_interval, repeat_end_date, notification_time`

// Create inserts a new event.
func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.Title,
		event.Date,
		event.StartTime,
		event.EndTime,
		event.Description,
		event.Location,
		event.Category,
		string(event.Repeat.Type),
		event.Repeat.Interval,
		event.Repeat.EndDate,
		event.NotificationTime,
	)
	if err != nil {
		r.log.Error().Err(err).Str("event_id", event.ID).Msg("Failed to create event")
		return err
	}
	return nil
}

// GetByID retrieves an event by its id.
func (r *eventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		r.log.Error().Err(err).Str("event_id", id).Msg("Failed to get event by ID")
		return nil, err
	}
	return event, nil
}

// Update overwrites an existing event.
func (r *eventRepository) Update(ctx context.Context, event *model.Event) error {
	query := `
		UPDATE events
		SET title = ?, date = ?, start_time = ?, end_time = ?, description = ?,
			location = ?, category = ?, repeat_type = ?, repeat_interval = ?,
			repeat_end_date = ?, notification_time = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		event.Title,
		event.Date,
		event.StartTime,
		event.EndTime,
		event.Description,
		event.Location,
		event.Category,
		string(event.Repeat.Type),
		event.Repeat.Interval,
		event.Repeat.EndDate,
		event.NotificationTime,
		event.ID,
	)
	if err != nil {
		r.log.Error().Err(err).Str("event_id", event.ID).Msg("Failed to update event")
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Delete removes an event.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		r.log.Error().Err(err).Str("event_id", id).Msg("Failed to delete event")
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// List returns all events ordered by date, start time, then insertion order.
func (r *eventRepository) List(ctx context.Context) ([]*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date, start_time, rowid`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to list events")
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*model.Event, error) {
	var event model.Event
	var repeatType string
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Date,
		&event.StartTime,
		&event.EndTime,
		&event.Description,
		&event.Location,
		&event.Category,
		&repeatType,
		&event.Repeat.Interval,
		&event.Repeat.EndDate,
		&event.NotificationTime,
	)
	if err != nil {
		return nil, err
	}
	event.Repeat.Type = model.RepeatType(repeatType)
	return &event, nil
}
