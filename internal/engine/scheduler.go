package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler manages periodic inventory import, expiry refresh and digest tasks.
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	log    *slog.Logger
}

// NewScheduler creates a new Scheduler that runs engine tasks on a schedule.
// A non-positive interval disables that task.
func NewScheduler(
	eng *Engine,
	importInterval time.Duration,
	expiryInterval time.Duration,
	digestInterval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:   c,
		engine: eng,
		log:    log,
	}

	if importInterval > 0 {
		if _, err := c.AddFunc(
			"@every "+importInterval.String(),
			s.runImport,
		); err != nil {
			return nil, err
		}
	}

	if expiryInterval > 0 {
		if _, err := c.AddFunc(
			"@every "+expiryInterval.String(),
			s.runExpiryRefresh,
		); err != nil {
			return nil, err
		}
	}

	if digestInterval > 0 {
		if _, err := c.AddFunc(
			"@every "+digestInterval.String(),
			s.runDigest,
		); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "jobs", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runImport() {
	ctx := context.Background()
	s.log.Info("scheduled import starting")
	if _, err := s.engine.RunImport(ctx); err != nil {
		s.log.Error("scheduled import failed", "error", err)
	}
}

func (s *Scheduler) runExpiryRefresh() {
	ctx := context.Background()
	s.log.Info("scheduled expiry refresh starting")
	if _, err := s.engine.RunExpiryRefresh(ctx); err != nil {
		s.log.Error("scheduled expiry refresh failed", "error", err)
	}
}

func (s *Scheduler) runDigest() {
	ctx := context.Background()
	s.log.Info("scheduled digest starting")
	if _, err := s.engine.RunDigest(ctx); err != nil {
		s.log.Error("scheduled digest failed", "error", err)
	}
}
