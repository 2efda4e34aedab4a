// Package sweeper periodically deletes expired sessions.
package sweeper

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/playerprofile/internal/logging"
	"github.com/robfig/cron/v3"
)

// SessionSweeper is the part of services.SessionService the sweeper needs.
type SessionSweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// Sweeper runs SweepExpired on a cron schedule.
type Sweeper struct {
	cron     *cron.Cron
	sessions SessionSweeper
	log      logging.Logger
}

// New parses schedule (standard cron or "@every 10m" style descriptors) and
// registers the sweep. Nothing runs until Start.
func New(schedule string, sessions SessionSweeper, log logging.Logger) (*Sweeper, error) {
	s := &Sweeper{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		sessions: sessions,
		log:      log,
	}

	if _, err := s.cron.AddFunc(schedule, func() {
		_, _ = s.RunOnce(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}

	return s, nil
}

// RunOnce performs a single sweep and logs its outcome.
func (s *Sweeper) RunOnce(ctx context.Context) (int64, error) {
	n, err := s.sessions.SweepExpired(ctx)
	if err != nil {
		s.log.Error(ctx, "session sweep failed", "error", err)
		return 0, err
	}
	if n > 0 {
		s.log.Info(ctx, "expired sessions removed", "count", n)
	} else {
		s.log.Debug(ctx, "no expired sessions")
	}
	return n, nil
}

func (s *Sweeper) Start() {
	s.log.Info(context.Background(), "session sweeper started")
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep, or for ctx.
func (s *Sweeper) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	s.log.Info(ctx, "session sweeper stopped")
}
