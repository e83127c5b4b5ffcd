package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"bearwatch/internal/logger"
)

// Scheduler drives the engine's scheduled check on a fixed interval. The
// manual path stays reachable through Engine.TriggerOnce and may run
// concurrently with ticks.
type Scheduler struct {
	engine   *Engine
	interval time.Duration
	log      zerolog.Logger
}

func NewScheduler(eng *Engine, interval time.Duration) *Scheduler {
	return &Scheduler{
		engine:   eng,
		interval: interval,
		log:      logger.Get().With().Str("component", "scheduler").Logger(),
	}
}

// Run ticks until the context is cancelled. A failing or panicking check is
// logged and the loop resumes on the next tick; nothing inside a single run
// may take the scheduler down.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.interval).Msg("scheduler started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("scheduled check panicked")
		}
	}()

	if _, err := s.engine.RunScheduledCheck(ctx); err != nil {
		s.log.Error().Err(err).Msg("scheduled check failed")
	}
}
