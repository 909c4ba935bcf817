// Package scheduler runs polling cycles on a fixed interval.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Job is one polling cycle.
type Job interface {
	Run(ctx context.Context) error
}

// Scheduler repeatedly executes a Job. A failed cycle is logged and the
// next tick retries; persisted state makes retries safe.
type Scheduler struct {
	job  Job
	log  *slog.Logger
	tick time.Duration
}

func New(job Job, log *slog.Logger) *Scheduler {
	return &Scheduler{
		job:  job,
		log:  log,
		tick: 1 * time.Minute,
	}
}

// SetTickInterval overrides the default 1-minute polling interval.
func (s *Scheduler) SetTickInterval(d time.Duration) {
	if d > 0 {
		s.tick = d
	}
}

// Run executes one cycle immediately, then one per tick, blocking until
// ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.runOnce(ctx)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	if err := s.job.Run(ctx); err != nil {
		s.log.Error("polling cycle failed", "error", err, "elapsed", time.Since(start))
		return
	}
	s.log.Debug("polling cycle finished", "elapsed", time.Since(start))
}
