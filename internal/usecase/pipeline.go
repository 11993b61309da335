package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"NewsWriter/internal/content"
	"NewsWriter/internal/dedup"
	"NewsWriter/internal/domain"
	"NewsWriter/internal/imagery"
	"NewsWriter/internal/metrics"
	"NewsWriter/internal/ports"
	"NewsWriter/internal/slug"
	"NewsWriter/internal/topics"
)

const (
	// VariationSuffix is appended to a title already used in this batch.
	VariationSuffix = " - Latest Developments"

	defaultGenerationTimeout = 120 * time.Second
)

// ErrNoTopics means no source produced a candidate topic.
var ErrNoTopics = errors.New("no topics available")

// GenerationSettings carries the sampling parameters for each request.
type GenerationSettings struct {
	MaxTokens     int
	Temperature   float64
	TopP          float64
	RepeatPenalty float64
	Timeout       time.Duration
}

// PipelineDeps wires all driven adapters into the article pipeline. Only
// Topics is required; a nil Generator yields templated articles, a nil
// Repository keeps articles in the backup store only.
type PipelineDeps struct {
	Topics       ports.TopicSource
	Generator    ports.TextGenerator
	Images       []ports.ImageProvider
	ImageOptions imagery.Options
	Repository   ports.ArticleRepository
	Backup       ports.BackupStore
	Slugs        *slug.Manager
	Keywords     *content.KeywordExtractor
	Picker       *topics.Picker
	Generation   GenerationSettings
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
	Now          func() time.Time
	NewID        func() string
}

// Pipeline turns a category into a persisted article.
type Pipeline struct {
	topics     ports.TopicSource
	generator  ports.TextGenerator
	images     []ports.ImageProvider
	imageOpts  imagery.Options
	repository ports.ArticleRepository
	backup     ports.BackupStore
	slugs      *slug.Manager
	keywords   *content.KeywordExtractor
	picker     *topics.Picker
	generation GenerationSettings
	metrics    *metrics.Metrics
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	p := &Pipeline{
		topics:     deps.Topics,
		generator:  deps.Generator,
		images:     deps.Images,
		imageOpts:  deps.ImageOptions,
		repository: deps.Repository,
		backup:     deps.Backup,
		slugs:      deps.Slugs,
		keywords:   deps.Keywords,
		picker:     deps.Picker,
		generation: deps.Generation,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		now:        deps.Now,
		newID:      deps.NewID,
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.newID == nil {
		p.newID = uuid.NewString
	}
	if p.slugs == nil {
		p.slugs = slug.NewManager(p.now, p.logger.With("component", "slug"))
	}
	if p.keywords == nil {
		p.keywords = content.NewKeywordExtractor(content.KeywordConfig{})
	}
	if p.picker == nil {
		p.picker = topics.NewPicker(nil)
	}
	if p.generation.Timeout <= 0 {
		p.generation.Timeout = defaultGenerationTimeout
	}
	if p.imageOpts.Metrics == nil {
		p.imageOpts.Metrics = p.metrics
	}
	if p.imageOpts.Logger == nil {
		p.imageOpts.Logger = p.logger.With("component", "imagery")
	}
	return p
}

// GenerateOne writes, illustrates and persists one article for category.
// Upstream failures degrade to fallbacks; only persistence errors and a
// missing topic are returned.
func (p *Pipeline) GenerateOne(ctx context.Context, category domain.Category, tracker *dedup.Tracker) (domain.Article, error) {
	if tracker == nil {
		tracker = dedup.NewTracker()
	}
	log := p.logger.With("category", category)

	topic, headline, err := p.chooseTopic(ctx, category, tracker)
	if err != nil {
		return domain.Article{}, err
	}
	log.Info("topic selected", "topic", topic, "headline", headline)

	raw := p.generate(ctx, category, headline)

	article := p.Assemble(raw, category, headline, tracker)
	article.Slug = p.slugs.EnsureUnique(article.Slug, func(candidate string) bool {
		return p.slugTaken(ctx, category, candidate)
	})
	article.ID = p.newID()
	article.PublishDate = p.now().UTC()

	image := imagery.NewResolver(p.images, tracker, p.imageOpts).Resolve(ctx, article)
	article.Image = &image

	persistErr := p.persist(ctx, article)

	if p.backup != nil {
		if err := p.backup.SaveArticle(article); err != nil {
			log.Warn("backup write failed", "slug", article.Slug, "error", err)
		}
		if err := p.backup.AddRecentTopic(category, topic); err != nil {
			log.Warn("recent topics update failed", "error", err)
		}
	}

	if persistErr != nil {
		return article, persistErr
	}
	log.Info("article generated", "title", article.Title, "slug", article.Slug, "words", article.WordCount())
	return article, nil
}

// Assemble turns raw generator output into an article without identity,
// date or image. The title is recorded in tracker; a title already present
// gets VariationSuffix.
func (p *Pipeline) Assemble(raw string, category domain.Category, headline string, tracker *dedup.Tracker) domain.Article {
	text := content.Sanitize(raw)

	fallback := content.Sanitize(headline)
	if fallback == "" {
		fallback = category.Title() + " News Update"
	}

	title := content.ExtractTitle(text, fallback)
	if title == fallback {
		p.metrics.Fallback("title")
	}
	bodySource := content.WithoutLine(text, title)

	if tracker != nil {
		if tracker.WasTopicUsed(title) {
			p.logger.Info("title already used, adding variation", "title", title)
			title += VariationSuffix
		}
		tracker.MarkTopicUsed(title)
	}

	body := content.ExtractBody(bodySource, string(category), fallback)
	if body == content.FallbackBody(string(category), fallback) {
		p.metrics.Fallback("body")
	}

	summary := content.ExtractSummary(bodySource)
	if len(summary) == 1 && summary[0] == content.SummaryFiller {
		p.metrics.Fallback("summary")
	}

	return domain.Article{
		Title:           title,
		Slug:            p.slugs.Generate(title),
		Summary:         summary,
		Body:            body,
		MetaDescription: content.GenerateMetaDescription(summary, title),
		SEOKeyword:      p.keywords.Extract(text, title),
		Category:        category,
	}
}

func (p *Pipeline) chooseTopic(ctx context.Context, category domain.Category, tracker *dedup.Tracker) (string, string, error) {
	if p.topics == nil {
		return "", "", ErrNoTopics
	}

	candidates, err := p.topics.Topics(ctx, category)
	if err != nil {
		return "", "", fmt.Errorf("load topics: %w", err)
	}
	if len(candidates) == 0 {
		return "", "", ErrNoTopics
	}

	var recent []string
	if p.backup != nil {
		if recent, err = p.backup.RecentTopics(category); err != nil {
			p.logger.Warn("recent topics unavailable", "category", category, "error", err)
		}
	}

	topic, headline := p.picker.Pick(candidates, tracker.WasTopicUsed, recent)
	return topic, headline, nil
}

// generate returns "" on any generator failure so the fallback chain runs.
func (p *Pipeline) generate(ctx context.Context, category domain.Category, headline string) string {
	if p.generator == nil {
		p.metrics.Fallback("generation")
		return ""
	}

	genCtx, cancel := context.WithTimeout(ctx, p.generation.Timeout)
	defer cancel()

	start := time.Now()
	raw, err := p.generator.Generate(genCtx, ports.GenerationRequest{
		Prompt:        BuildPrompt(category, headline),
		MaxTokens:     p.generation.MaxTokens,
		Temperature:   p.generation.Temperature,
		TopP:          p.generation.TopP,
		RepeatPenalty: p.generation.RepeatPenalty,
	})
	p.metrics.ObserveGeneration(time.Since(start))
	if err != nil {
		p.metrics.Fallback("generation")
		p.logger.Warn("generation failed, using fallback article", "category", category, "error", err)
		return ""
	}
	return raw
}

func (p *Pipeline) slugTaken(ctx context.Context, category domain.Category, candidate string) bool {
	if p.backup != nil && p.backup.Exists(category, candidate) {
		return true
	}
	if p.repository == nil {
		return false
	}
	taken, err := p.repository.SlugExists(ctx, candidate)
	if err != nil {
		p.logger.Warn("slug lookup failed", "slug", candidate, "error", err)
		return false
	}
	return taken
}

func (p *Pipeline) persist(ctx context.Context, article domain.Article) error {
	if p.repository == nil {
		return nil
	}

	categoryID, err := p.repository.CategoryID(ctx, article.Category)
	if err != nil {
		return fmt.Errorf("resolve category: %w", err)
	}
	authorID, err := p.repository.AuthorID(ctx, article.Category)
	if err != nil {
		return fmt.Errorf("resolve author: %w", err)
	}
	if err := p.repository.InsertArticle(ctx, article, categoryID, authorID); err != nil {
		return fmt.Errorf("save article: %w", err)
	}
	return nil
}
