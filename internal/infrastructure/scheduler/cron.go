package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"NewsWriter/internal/ports"
	"NewsWriter/pkg/logger"
)

// CronScheduler runs a job on a standard five-field cron expression.
// Ticks that arrive while the previous run is still going are skipped.
type CronScheduler struct {
	expr   string
	loc    *time.Location
	logger *slog.Logger
	parser cron.Parser

	mu   sync.Mutex
	cron *cron.Cron
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler builds a scheduler for expr evaluated in loc.
func NewCronScheduler(expr string, loc *time.Location, log *slog.Logger) *CronScheduler {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = slog.Default()
	}
	return &CronScheduler{
		expr:   expr,
		loc:    loc,
		logger: log,
		parser: cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

// Next reports the first activation after t.
func (c *CronScheduler) Next(t time.Time) (time.Time, error) {
	schedule, err := c.parser.Parse(c.expr)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cron expression %q: %w", c.expr, err)
	}
	return schedule.Next(t.In(c.loc)), nil
}

// Start registers job and starts the cron loop. The loop also stops when ctx
// is cancelled.
func (c *CronScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cron != nil {
		return nil
	}

	cronLog := cron.PrintfLogger(logger.FromSlog(c.logger, slog.LevelDebug))
	runner := cron.New(
		cron.WithParser(c.parser),
		cron.WithLocation(c.loc),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.SkipIfStillRunning(cronLog), cron.Recover(cronLog)),
	)

	if _, err := runner.AddFunc(c.expr, func() {
		job(time.Now().In(c.loc))
	}); err != nil {
		return fmt.Errorf("schedule %q: %w", c.expr, err)
	}

	runner.Start()
	c.cron = runner

	if next, err := c.Next(time.Now()); err == nil {
		c.logger.Info("scheduler started", "cron", c.expr, "next_run", next.Format(time.RFC3339))
	}

	go func() {
		<-ctx.Done()
		_ = c.Stop(context.Background())
	}()

	return nil
}

// Stop halts the loop and waits for a running job until ctx expires.
func (c *CronScheduler) Stop(ctx context.Context) error {
	c.mu.Lock()
	runner := c.cron
	c.cron = nil
	c.mu.Unlock()

	if runner == nil {
		return nil
	}

	done := runner.Stop()
	select {
	case <-done.Done():
		c.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for running job: %w", ctx.Err())
	}
}
