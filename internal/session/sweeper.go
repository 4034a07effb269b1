package session

import (
	"context"
	"fmt"
	stdlog "log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper periodically removes expired sessions.
type Sweeper struct {
	store      *Store
	schedule   string
	cronRunner *cron.Cron
	log        zerolog.Logger
}

// NewSweeper creates a sweeper running on schedule, which accepts standard
// cron expressions and descriptors such as "@every 10m".
func NewSweeper(store *Store, schedule string, log zerolog.Logger) *Sweeper {
	cronLog := cron.PrintfLogger(stdlog.New(log.With().Str("component", "cron").Logger(), "", 0))
	return &Sweeper{
		store:    store,
		schedule: schedule,
		log:      log.With().Str("component", "session-sweeper").Logger(),
		cronRunner: cron.New(
			cron.WithChain(
				cron.SkipIfStillRunning(cronLog),
				cron.Recover(cronLog),
			),
		),
	}
}

// Start registers the sweep job and starts the cron runner.
func (s *Sweeper) Start() error {
	if _, err := s.cronRunner.AddFunc(s.schedule, s.RunOnce); err != nil {
		return fmt.Errorf("invalid session sweep schedule %q: %w", s.schedule, err)
	}
	s.cronRunner.Start()
	s.log.Info().Str("schedule", s.schedule).Msg("session sweeper started")
	return nil
}

// RunOnce performs a single sweep.
func (s *Sweeper) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.store.Sweep(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("session sweep failed")
		return
	}
	if n > 0 {
		s.log.Info().Int64("removed", n).Msg("expired sessions removed")
	}
}

// Stop shuts down the cron runner, waiting for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cronRunner.Stop()
	select {
	case <-ctx.Done():
		s.log.Info().Msg("session sweeper stopped")
	case <-time.After(15 * time.Second):
		s.log.Warn().Msg("session sweeper shutdown timed out")
	}
}
