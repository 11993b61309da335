// Package imagery picks a stock photo for an article across providers.
package imagery

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"NewsWriter/internal/dedup"
	"NewsWriter/internal/domain"
	"NewsWriter/internal/metrics"
	"NewsWriter/internal/ports"
)

const (
	defaultPerPage   = 15
	defaultMinWidth  = 1920
	defaultMinHeight = 1080
	defaultTimeout   = 10 * time.Second
	minQueryLen      = 10
	titleQueryWords  = 4
)

// Options tunes the resolver. Zero values take defaults.
type Options struct {
	PerPage   int
	MinWidth  int
	MinHeight int
	Timeout   time.Duration
	// Coin decides provider order per query; true keeps the configured order.
	Coin    func() bool
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// Resolver walks query variants and providers until a usable photo is found.
type Resolver struct {
	providers []ports.ImageProvider
	tracker   *dedup.Tracker
	perPage   int
	minWidth  int
	minHeight int
	timeout   time.Duration
	coin      func() bool
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewResolver wires providers with the batch tracker.
func NewResolver(providers []ports.ImageProvider, tracker *dedup.Tracker, opts Options) *Resolver {
	if opts.PerPage <= 0 {
		opts.PerPage = defaultPerPage
	}
	if opts.MinWidth <= 0 {
		opts.MinWidth = defaultMinWidth
	}
	if opts.MinHeight <= 0 {
		opts.MinHeight = defaultMinHeight
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Coin == nil {
		opts.Coin = func() bool { return rand.Intn(2) == 0 }
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if tracker == nil {
		tracker = dedup.NewTracker()
	}
	return &Resolver{
		providers: providers,
		tracker:   tracker,
		perPage:   opts.PerPage,
		minWidth:  opts.MinWidth,
		minHeight: opts.MinHeight,
		timeout:   opts.Timeout,
		coin:      opts.Coin,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
	}
}

// Queries builds the ordered search variants for an article.
func Queries(article domain.Article) []string {
	keyword := strings.TrimSpace(article.SEOKeyword)
	category := string(article.Category)

	words := strings.Fields(article.Title)
	if len(words) > titleQueryWords {
		words = words[:titleQueryWords]
	}

	candidates := []string{
		keyword + " " + category,
		strings.Join(words, " "),
		category + " news " + keyword,
		keyword + " " + category + " latest",
	}

	seen := map[string]struct{}{}
	queries := make([]string, 0, len(candidates))
	for _, q := range candidates {
		q = strings.Join(strings.Fields(q), " ")
		if len(q) <= minQueryLen {
			continue
		}
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		queries = append(queries, q)
	}
	if len(queries) == 0 {
		if title := strings.TrimSpace(article.Title); title != "" {
			queries = append(queries, title)
		}
	}
	return queries
}

// Resolve returns the first acceptable photo or a placeholder. The returned
// URL is never one the tracker already holds.
func (r *Resolver) Resolve(ctx context.Context, article domain.Article) domain.Image {
	for _, query := range Queries(article) {
		for _, provider := range r.order() {
			photo, ok := r.try(ctx, provider, query)
			if !ok {
				continue
			}
			r.tracker.MarkImageUsed(photo.URL)
			return domain.Image{
				URL:    photo.URL,
				Alt:    fmt.Sprintf("%s - Photo by %s on %s", query, attribution(photo), provider.Name()),
				Prompt: "Professional news photo for: " + query,
			}
		}
	}

	r.metrics.Fallback("image")
	r.logger.Info("no image resolved, using placeholder", "title", article.Title)
	return Placeholder(article.Title)
}

// Placeholder is returned when no provider yields a usable photo.
func Placeholder(title string) domain.Image {
	return domain.Image{Alt: "No image available for " + title}
}

func (r *Resolver) order() []ports.ImageProvider {
	ordered := make([]ports.ImageProvider, len(r.providers))
	copy(ordered, r.providers)
	if !r.coin() {
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}
	return ordered
}

func (r *Resolver) try(ctx context.Context, provider ports.ImageProvider, query string) (domain.Photo, bool) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	photos, err := provider.Search(callCtx, ports.ImageSearch{
		Query:       query,
		Orientation: "landscape",
		PerPage:     r.perPage,
	})
	if err != nil {
		r.metrics.ImageLookup(provider.Name(), "error")
		r.logger.Warn("image search failed", "provider", provider.Name(), "query", query, "error", err)
		return domain.Photo{}, false
	}

	photo, ok := r.pick(photos)
	if !ok {
		r.metrics.ImageLookup(provider.Name(), "miss")
		return domain.Photo{}, false
	}
	r.metrics.ImageLookup(provider.Name(), "hit")
	return photo, true
}

// pick prefers the first unused photo meeting the resolution bar, then the
// first unused photo of any size.
func (r *Resolver) pick(photos []domain.Photo) (domain.Photo, bool) {
	var fallback *domain.Photo
	for i := range photos {
		p := photos[i]
		if p.URL == "" || r.tracker.WasImageUsed(p.URL) {
			continue
		}
		if p.Width >= r.minWidth && p.Height >= r.minHeight {
			return p, true
		}
		if fallback == nil {
			fallback = &photos[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return domain.Photo{}, false
}

func attribution(p domain.Photo) string {
	if a := strings.TrimSpace(p.Attribution); a != "" {
		return a
	}
	return "Unknown"
}
