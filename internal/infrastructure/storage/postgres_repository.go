package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"NewsWriter/internal/domain"
	"NewsWriter/internal/ports"
)

const (
	// FallbackAuthorID is used when no author profile can be resolved.
	FallbackAuthorID = "00000000-0000-0000-0000-000000000001"

	defaultCategoryColor = "#6B7280"
	defaultSEOScore      = 85
)

// DefaultAuthors is the roster new articles are attributed to.
var DefaultAuthors = []string{
	"Sarah Johnson",
	"Michael Chen",
	"Emily Rodriguez",
	"David Thompson",
	"Jessica Williams",
	"Robert Martinez",
	"Amanda Foster",
	"Christopher Lee",
}

// ErrCategoryUnavailable means the category row could neither be found nor created.
var ErrCategoryUnavailable = errors.New("category unavailable")

var usernameInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// PostgresRepository persists generated articles into Postgres.
type PostgresRepository struct {
	db      *sql.DB
	sb      sq.StatementBuilderType
	authors []string
	intn    func(int) int
	now     func() time.Time
	logger  *slog.Logger
}

var _ ports.ArticleRepository = (*PostgresRepository)(nil)

// Option customises a PostgresRepository.
type Option func(*PostgresRepository)

// WithAuthors replaces the author roster.
func WithAuthors(names []string) Option {
	return func(r *PostgresRepository) {
		if len(names) > 0 {
			r.authors = names
		}
	}
}

// WithRand sets the random source used to pick an author.
func WithRand(intn func(int) int) Option {
	return func(r *PostgresRepository) { r.intn = intn }
}

// WithClock sets the timestamp source for created/updated columns.
func WithClock(now func() time.Time) Option {
	return func(r *PostgresRepository) { r.now = now }
}

// WithLogger sets the repository logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *PostgresRepository) { r.logger = l }
}

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB, opts ...Option) *PostgresRepository {
	r := &PostgresRepository{
		db:      db,
		sb:      sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		authors: DefaultAuthors,
		intn:    rand.Intn,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CategoryID looks the category up by slug, then by display name, and
// creates it when neither exists.
func (r *PostgresRepository) CategoryID(ctx context.Context, category domain.Category) (string, error) {
	if r.db == nil {
		return "", fmt.Errorf("%w: postgres repository has no database", ErrCategoryUnavailable)
	}

	slug := string(category)
	name := category.Title()

	for _, where := range []sq.Eq{{"slug": slug}, {"name": name}} {
		id, err := r.lookupID(ctx, "categories", where)
		if err != nil {
			return "", fmt.Errorf("lookup category %s: %w", slug, err)
		}
		if id != "" {
			return id, nil
		}
	}

	query, args, err := r.sb.Insert("categories").
		Columns("name", "slug", "description", "color", "is_active").
		Values(name, slug, fmt.Sprintf("Articles about %s topics", slug), defaultCategoryColor, true).
		Suffix("ON CONFLICT (slug) DO UPDATE SET is_active = EXCLUDED.is_active RETURNING id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build category insert: %w", err)
	}

	var id string
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return "", fmt.Errorf("%w: create category %s: %w", ErrCategoryUnavailable, slug, err)
	}
	r.logger.Info("category created", "slug", slug, "id", id)
	return id, nil
}

// AuthorID picks a random roster name and returns its profile, creating it
// when missing. Failures degrade to FallbackAuthorID.
func (r *PostgresRepository) AuthorID(ctx context.Context, category domain.Category) (string, error) {
	if r.db == nil || len(r.authors) == 0 {
		return FallbackAuthorID, nil
	}

	name := r.authors[r.intn(len(r.authors))]
	id, err := r.lookupID(ctx, "profiles", sq.Eq{"full_name": name})
	if err != nil {
		r.logger.Warn("author lookup failed, using fallback", "name", name, "error", err)
		return FallbackAuthorID, nil
	}
	if id != "" {
		return id, nil
	}

	query, args, err := r.sb.Insert("profiles").
		Columns("id", "username", "full_name", "bio", "is_verified", "role").
		Values(uuid.New().String(), username(name), name,
			fmt.Sprintf("Professional journalist and writer covering %s topics.", category), true, "user").
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return FallbackAuthorID, nil
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.Warn("author create failed, using fallback", "name", name, "error", err)
		return FallbackAuthorID, nil
	}
	return id, nil
}

// SlugExists reports whether an article already uses slug.
func (r *PostgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	if r.db == nil {
		return false, nil
	}
	id, err := r.lookupID(ctx, "articles", sq.Eq{"slug": slug})
	if err != nil {
		return false, fmt.Errorf("lookup slug: %w", err)
	}
	return id != "", nil
}

// InsertArticle stores a published article.
func (r *PostgresRepository) InsertArticle(ctx context.Context, article domain.Article, categoryID, authorID string) error {
	if r.db == nil {
		return fmt.Errorf("postgres repository has no database")
	}

	imageURL := ""
	if article.Image != nil {
		imageURL = article.Image.URL
	}
	now := r.now().UTC()

	query, args, err := r.sb.Insert("articles").
		Columns(
			"id", "title", "slug", "excerpt", "content", "featured_image_url", "status",
			"author_id", "category_id", "published_at", "reading_time", "word_count",
			"meta_title", "meta_description", "tags", "is_featured", "is_pinned",
			"allow_comments", "seo_score", "created_at", "updated_at",
		).
		Values(
			article.ID, article.Title, article.Slug, strings.Join(article.Summary, " "), article.Body, nullable(imageURL), "published",
			authorID, categoryID, article.PublishDate.UTC(), article.ReadingTime(), article.WordCount(),
			article.Title, article.MetaDescription, pq.StringArray{article.SEOKeyword}, false, false,
			true, defaultSEOScore, now, now,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build article insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert article %s: %w", article.Slug, err)
	}
	return nil
}

func (r *PostgresRepository) lookupID(ctx context.Context, table string, where sq.Eq) (string, error) {
	query, args, err := r.sb.Select("id").From(table).Where(where).Limit(1).ToSql()
	if err != nil {
		return "", fmt.Errorf("build lookup: %w", err)
	}

	var id string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func username(fullName string) string {
	return strings.Trim(usernameInvalid.ReplaceAllString(strings.ToLower(fullName), "_"), "_")
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
