package ports

import (
	"context"
	"time"

	"NewsWriter/internal/domain"
)

// GenerationRequest is the payload sent to a text-generation service.
type GenerationRequest struct {
	Prompt        string
	MaxTokens     int
	Temperature   float64
	TopP          float64
	RepeatPenalty float64
}

// TextGenerator produces raw article text from a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// ImageSearch is a provider-agnostic photo query.
type ImageSearch struct {
	Query       string
	Orientation string
	PerPage     int
}

// ImageProvider searches a stock-photo service.
type ImageProvider interface {
	Name() string
	Search(ctx context.Context, req ImageSearch) ([]domain.Photo, error)
}

// TopicSource lists candidate headlines for a category.
type TopicSource interface {
	Topics(ctx context.Context, category domain.Category) ([]string, error)
}

// ArticleRepository is the primary persistence collaborator.
type ArticleRepository interface {
	CategoryID(ctx context.Context, category domain.Category) (string, error)
	AuthorID(ctx context.Context, category domain.Category) (string, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	InsertArticle(ctx context.Context, article domain.Article, categoryID, authorID string) error
}

// BackupStore keeps the JSON audit trail and recent-topic history.
type BackupStore interface {
	Exists(category domain.Category, slug string) bool
	SaveArticle(article domain.Article) error
	RecentTopics(category domain.Category) ([]string, error)
	AddRecentTopic(category domain.Category, topic string) error
}

// Notifier streams batch summaries to Telegram or other channels.
type Notifier interface {
	PublishSummary(ctx context.Context, summary domain.BatchSummary) error
}

// Scheduler controls when batches execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
