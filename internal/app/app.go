package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"NewsWriter/internal/config"
	"NewsWriter/internal/content"
	"NewsWriter/internal/domain"
	"NewsWriter/internal/imagery"
	"NewsWriter/internal/infrastructure/images"
	"NewsWriter/internal/infrastructure/llm"
	"NewsWriter/internal/infrastructure/scheduler"
	"NewsWriter/internal/infrastructure/storage"
	"NewsWriter/internal/infrastructure/telegram"
	"NewsWriter/internal/infrastructure/trends"
	"NewsWriter/internal/logging"
	"NewsWriter/internal/metrics"
	"NewsWriter/internal/ports"
	"NewsWriter/internal/retry"
	"NewsWriter/internal/slug"
	"NewsWriter/internal/topics"
	"NewsWriter/internal/usecase"
)

const (
	ModeCron = "cron"
	ModeRun  = "run"

	shutdownTimeout = 30 * time.Second
)

var dbPing = retry.Config{MaxAttempts: 3, Delay: 2 * time.Second, Backoff: true}

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	metrics   *metrics.Metrics
	runner    *usecase.BatchRunner
	scheduler *usecase.Scheduler
	closers   []func() error
}

// New builds the application. Optional collaborators that cannot be set up
// (database, generator) are logged and left out.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	a := &Application{cfg: cfg, logger: baseLogger, metrics: metrics.New()}

	generator := a.newGenerator(ctx)
	repository := a.newRepository(ctx)

	registry := topics.NewRegistry()
	topicClient := &http.Client{Timeout: cfg.Topics.Timeout}
	registry.Register(trends.NewGoogleTrends(topicClient, cfg.Topics.TrendsURL, cfg.Topics.TrendsGeo, cfg.Topics.MaxPerSource))
	registry.Register(trends.NewNewsAPI(topicClient, cfg.Topics.NewsAPIURL, cfg.Topics.NewsAPIKey))
	registry.Register(trends.NewRSS(topicClient, cfg.Topics.Feeds, cfg.Topics.MaxPerSource, baseLogger.With("component", "topics.rss")))
	registry.Register(trends.NewHeadlines(topicClient, cfg.Topics.Pages, cfg.Topics.MaxPerSource))
	registry.Register(trends.NewPredefined())
	chain := topics.NewChain(registry, cfg.Topics.Sources, baseLogger.With("component", "topics"))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Topics:    chain,
		Generator: generator,
		Images:    a.imageProviders(),
		ImageOptions: imagery.Options{
			PerPage:   cfg.Images.PerPage,
			MinWidth:  cfg.Images.MinWidth,
			MinHeight: cfg.Images.MinHeight,
			Timeout:   cfg.Images.Timeout,
			Metrics:   a.metrics,
			Logger:    baseLogger.With("component", "imagery"),
		},
		Repository: repository,
		Backup:     storage.NewJSONStore(cfg.Storage.DataRoot),
		Slugs:      slug.NewManager(time.Now, baseLogger.With("component", "slug")),
		Keywords: content.NewKeywordExtractor(content.KeywordConfig{
			Stopwords: cfg.Keywords.Stopwords,
			Fragments: cfg.Keywords.Fragments,
			Default:   cfg.Keywords.Default,
		}),
		Generation: usecase.GenerationSettings{
			MaxTokens:     cfg.Generator.MaxTokens,
			Temperature:   cfg.Generator.Temperature,
			TopP:          cfg.Generator.TopP,
			RepeatPenalty: cfg.Generator.RepeatPenalty,
			Timeout:       cfg.Generator.Timeout,
		},
		Metrics: a.metrics,
		Logger:  baseLogger.With("component", "pipeline"),
	})

	var notifier ports.Notifier
	if tg := telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID); tg.Configured() {
		notifier = tg
	}

	a.runner = usecase.NewBatchRunner(pipeline, usecase.BatchOptions{
		Categories:          cfg.Categories(),
		ArticlesPerCategory: cfg.Batch.ArticlesPerCategory,
		InterCategoryDelay:  cfg.Batch.InterCategoryDelay,
		InterArticleDelay:   cfg.Batch.InterArticleDelay,
	}, notifier, a.metrics, baseLogger.With("component", "batch"))

	driver := scheduler.NewCronScheduler(cfg.Scheduler.CronExpression, cfg.Scheduler.Location(), baseLogger.With("component", "scheduler"))
	if _, err := driver.Next(time.Now()); err != nil {
		a.Close()
		return nil, fmt.Errorf("configure scheduler: %w", err)
	}
	a.scheduler = usecase.NewScheduler(driver, a.runner, baseLogger.With("component", "scheduler"))

	return a, nil
}

func (a *Application) newGenerator(ctx context.Context) ports.TextGenerator {
	generator, err := llm.New(ctx, a.cfg.Generator)
	if err != nil {
		a.logger.Warn("text generator disabled, articles will use templates", "provider", a.cfg.Generator.Provider, "error", err)
		return nil
	}
	if c, ok := generator.(io.Closer); ok {
		a.closers = append(a.closers, c.Close)
	}
	a.logger.Info("text generator ready", "provider", a.cfg.Generator.Provider, "model", a.cfg.Generator.Model)
	return generator
}

func (a *Application) newRepository(ctx context.Context) ports.ArticleRepository {
	if a.cfg.Database.DSN == "" {
		a.logger.Info("no database configured, using backup store only")
		return nil
	}

	db, err := sql.Open("postgres", a.cfg.Database.DSN)
	if err != nil {
		a.logger.Warn("open database failed, using backup store only", "error", err)
		return nil
	}
	if err := retry.Do(ctx, dbPing, db.PingContext); err != nil {
		a.logger.Warn("database unreachable, using backup store only", "error", err)
		_ = db.Close()
		return nil
	}

	a.closers = append(a.closers, db.Close)
	return storage.NewPostgresRepository(db, storage.WithLogger(a.logger.With("component", "storage.postgres")))
}

func (a *Application) imageProviders() []ports.ImageProvider {
	client := &http.Client{Timeout: a.cfg.Images.Timeout}
	var providers []ports.ImageProvider
	if a.cfg.Images.PexelsAPIKey != "" {
		providers = append(providers, images.NewPexels(client, a.cfg.Images.PexelsURL, a.cfg.Images.PexelsAPIKey))
	}
	if a.cfg.Images.UnsplashAccessKey != "" {
		providers = append(providers, images.NewUnsplash(client, a.cfg.Images.UnsplashURL, a.cfg.Images.UnsplashAccessKey))
	}
	if len(providers) == 0 {
		a.logger.Warn("no image provider keys configured, articles will use placeholder images")
	}
	return providers
}

// SetOutput redirects the printed batch summary.
func (a *Application) SetOutput(w io.Writer) {
	a.runner.SetOutput(w)
}

// Metrics exposes the application registry.
func (a *Application) Metrics() *metrics.Metrics {
	return a.metrics
}

// Run dispatches on mode; an empty mode uses the configured one.
func (a *Application) Run(ctx context.Context, mode string) error {
	if mode == "" {
		mode = a.cfg.Mode
	}
	switch strings.ToLower(mode) {
	case ModeCron, "":
		return a.RunCron(ctx)
	case ModeRun, "once":
		_, err := a.RunOnce(ctx)
		return err
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

// RunOnce executes a single batch over all configured categories.
func (a *Application) RunOnce(ctx context.Context) (domain.BatchSummary, error) {
	a.serveMetrics(ctx)
	return a.runner.Run(ctx)
}

// GenerateCategory writes one article for category.
func (a *Application) GenerateCategory(ctx context.Context, category domain.Category) domain.BatchSummary {
	return a.runner.RunCategory(ctx, category)
}

// RunCron runs a batch immediately and then on the configured schedule until
// SIGINT, SIGTERM or ctx cancellation.
func (a *Application) RunCron(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.serveMetrics(ctx)

	a.logger.Info("running initial batch")
	if _, err := a.runner.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("cron mode active", "cron", a.cfg.Scheduler.CronExpression, "timezone", a.cfg.Scheduler.Location().String())

	<-ctx.Done()
	a.logger.Info("shutting down")

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.scheduler.Stop(stopCtx)
}

func (a *Application) serveMetrics(ctx context.Context) {
	addr := a.cfg.Metrics.Addr
	if addr == "" {
		return
	}
	go func() {
		if err := a.metrics.Serve(ctx, addr, a.logger.With("component", "metrics")); err != nil {
			a.logger.Warn("metrics server stopped", "error", err)
		}
	}()
}

// Close releases the database and generator clients.
func (a *Application) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
