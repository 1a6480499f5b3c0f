package repository

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iljeong/internal/database"
	"iljeong/internal/model"
)

func newTestRepo(t *testing.T) EventRepository {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewEventRepository(db, zerolog.Nop())
}

func sampleEvent(id, date, start string) *model.Event {
	return &model.Event{
		ID:          id,
		Title:       "팀 회의",
		Date:        date,
		StartTime:   start,
		EndTime:     "11:00",
		Description: "주간 팀 미팅",
		Location:    "회의실 A",
		Category:    "업무",
		Repeat: model.Repeat{
			Type:     model.RepeatWeekly,
			Interval: 1,
			EndDate:  "2024-12-31",
		},
		NotificationTime: 10,
	}
}

func TestEventRepositoryRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	event := sampleEvent("e1", "2024-11-01", "10:00")
	require.NoError(t, repo.Create(ctx, event))

	got, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, event, got)
}

func TestEventRepositoryGetMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventRepositoryUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	event := sampleEvent("e1", "2024-11-01", "10:00")
	require.NoError(t, repo.Create(ctx, event))

	event.Title = "옮겨진 회의"
	event.StartTime = "14:00"
	event.Repeat = model.Repeat{Type: model.RepeatNone}
	require.NoError(t, repo.Update(ctx, event))

	got, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "옮겨진 회의", got.Title)
	assert.Equal(t, "14:00", got.StartTime)
	assert.Equal(t, model.RepeatNone, got.Repeat.Type)

	t.Run("updating a missing event reports not found", func(t *testing.T) {
		missing := sampleEvent("ghost", "2024-11-01", "10:00")
		assert.ErrorIs(t, repo.Update(ctx, missing), ErrEventNotFound)
	})
}

func TestEventRepositoryDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleEvent("e1", "2024-11-01", "10:00")))
	require.NoError(t, repo.Delete(ctx, "e1"))

	_, err := repo.GetByID(ctx, "e1")
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "e1"), ErrEventNotFound)
}

func TestEventRepositoryListOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Insert out of chronological order on purpose.
	require.NoError(t, repo.Create(ctx, sampleEvent("late", "2024-11-02", "09:00")))
	require.NoError(t, repo.Create(ctx, sampleEvent("early", "2024-11-01", "08:00")))
	require.NoError(t, repo.Create(ctx, sampleEvent("mid", "2024-11-01", "12:00")))

	events, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "early", events[0].ID)
	assert.Equal(t, "mid", events[1].ID)
	assert.Equal(t, "late", events[2].ID)
}

func TestEventRepositoryListEmpty(t *testing.T) {
	repo := newTestRepo(t)

	events, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}
