package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"NewsWriter/internal/dedup"
	"NewsWriter/internal/domain"
	"NewsWriter/internal/metrics"
	"NewsWriter/internal/ports"
)

// BatchOptions controls one pass over the categories.
type BatchOptions struct {
	Categories          []domain.Category
	ArticlesPerCategory int
	InterCategoryDelay  time.Duration
	InterArticleDelay   time.Duration
}

// BatchRunner runs the pipeline across categories strictly in order.
type BatchRunner struct {
	pipeline *Pipeline
	opts     BatchOptions
	notifier ports.Notifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
	out      io.Writer
	sleep    func(ctx context.Context, d time.Duration) error
	now      func() time.Time
}

// NewBatchRunner builds a runner. A nil notifier disables notifications.
func NewBatchRunner(pipeline *Pipeline, opts BatchOptions, notifier ports.Notifier, m *metrics.Metrics, logger *slog.Logger) *BatchRunner {
	if len(opts.Categories) == 0 {
		opts.Categories = domain.AllCategories()
	}
	if opts.ArticlesPerCategory <= 0 {
		opts.ArticlesPerCategory = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchRunner{
		pipeline: pipeline,
		opts:     opts,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		out:      os.Stdout,
		sleep:    sleepContext,
		now:      time.Now,
	}
}

// SetOutput redirects the printed summary.
func (b *BatchRunner) SetOutput(w io.Writer) {
	b.out = w
}

// Run processes every category once with a fresh tracker. It returns an
// error only when ctx is cancelled; per-category failures are reported in
// the summary.
func (b *BatchRunner) Run(ctx context.Context) (domain.BatchSummary, error) {
	start := b.now()
	summary := domain.BatchSummary{RunAt: start.UTC()}
	tracker := dedup.NewTracker()

	b.logger.Info("batch started", "categories", len(b.opts.Categories))

	for i, category := range b.opts.Categories {
		if i > 0 {
			if err := b.sleep(ctx, b.opts.InterCategoryDelay); err != nil {
				return b.finish(ctx, summary, start, tracker), fmt.Errorf("batch interrupted: %w", err)
			}
		}
		for n := 0; n < b.opts.ArticlesPerCategory; n++ {
			if n > 0 {
				if err := b.sleep(ctx, b.opts.InterArticleDelay); err != nil {
					return b.finish(ctx, summary, start, tracker), fmt.Errorf("batch interrupted: %w", err)
				}
			}
			summary.Results = append(summary.Results, b.runCategory(ctx, category, tracker))
		}
	}

	return b.finish(ctx, summary, start, tracker), nil
}

// RunCategory generates a single article outside of a full batch.
func (b *BatchRunner) RunCategory(ctx context.Context, category domain.Category) domain.BatchSummary {
	start := b.now()
	summary := domain.BatchSummary{RunAt: start.UTC()}
	tracker := dedup.NewTracker()
	summary.Results = append(summary.Results, b.runCategory(ctx, category, tracker))
	return b.finish(ctx, summary, start, tracker)
}

func (b *BatchRunner) runCategory(ctx context.Context, category domain.Category, tracker *dedup.Tracker) (result domain.BatchResult) {
	result.Category = category

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("category panicked", "category", category, "panic", r)
			result = domain.BatchResult{Category: category, Error: fmt.Sprint(r)}
		}
		b.metrics.Article(string(category), result.OK)
	}()

	article, err := b.pipeline.GenerateOne(ctx, category, tracker)
	if err != nil {
		b.logger.Error("article failed", "category", category, "error", err)
		result.Error = err.Error()
		return result
	}
	result.OK = true
	result.Slug = article.Slug
	return result
}

func (b *BatchRunner) finish(ctx context.Context, summary domain.BatchSummary, start time.Time, tracker *dedup.Tracker) domain.BatchSummary {
	b.metrics.ObserveBatch(b.now().Sub(start))
	topicsUsed, imagesUsed := tracker.Counts()
	b.logger.Info("batch complete",
		"succeeded", summary.Succeeded(),
		"total", len(summary.Results),
		"topics_used", topicsUsed,
		"images_used", imagesUsed)

	if payload, err := json.MarshalIndent(summary, "", "  "); err == nil {
		fmt.Fprintln(b.out, string(payload))
	}

	if b.notifier != nil {
		if err := b.notifier.PublishSummary(ctx, summary); err != nil {
			b.logger.Warn("notification failed", "error", err)
		}
	}
	return summary
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
