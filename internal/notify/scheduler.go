package notify

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"iljeong/internal/model"
)

// EventSource supplies the event snapshot each tick evaluates. The
// repository satisfies this.
type EventSource interface {
	List(ctx context.Context) ([]*model.Event, error)
}

// Scheduler drives an Engine on a cron schedule. It owns the tick timing
// only; the engine owns all notification state, so stopping the scheduler
// halts future ticks without losing anything already notified.
type Scheduler struct {
	engine *Engine
	source EventSource
	log    zerolog.Logger

	// now is injectable for deterministic tests; defaults to time.Now.
	now func() time.Time

	cron *cron.Cron
}

// NewScheduler wires an engine to an event source. spec is a robfig/cron
// expression; the default config uses "@every 1s" for a per-second
// evaluation cadence.
func NewScheduler(engine *Engine, source EventSource, spec string, log zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		engine: engine,
		source: source,
		log:    log,
		now:    time.Now,
		cron:   cron.New(),
	}

	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := s.source.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("notification tick: listing events failed")
		return
	}

	for _, n := range s.engine.Tick(events, s.now()) {
		s.log.Info().Str("event_id", n.ID).Str("message", n.Message).Msg("notification fired")
	}
}

// Start begins ticking in the cron's own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels future ticks and waits for a running one to finish. The
// engine's notified set and notification list are left untouched.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
