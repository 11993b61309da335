package usecase

import (
	"context"
	"log/slog"
	"time"

	"NewsWriter/internal/ports"
)

// Scheduler wires the cron driver with the batch runner.
type Scheduler struct {
	driver ports.Scheduler
	runner *BatchRunner
	logger *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring batches.
func NewScheduler(driver ports.Scheduler, runner *BatchRunner, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{driver: driver, runner: runner, logger: logger}
}

// Start registers the batch with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.runner == nil {
		return nil
	}

	job := func(trigger time.Time) {
		s.logger.Info("scheduled batch triggered", "at", trigger.Format(time.RFC3339))
		if _, err := s.runner.Run(ctx); err != nil {
			s.logger.Warn("scheduled batch stopped", "error", err)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
