package trends

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"NewsWriter/internal/domain"
	"NewsWriter/internal/topics"
)

// RSS collects item titles from feeds configured per category.
type RSS struct {
	parser *gofeed.Parser
	feeds  map[string][]string
	max    int
	logger *slog.Logger
}

var _ topics.Source = (*RSS)(nil)

// NewRSS wires a gofeed parser using client.
func NewRSS(client *http.Client, feeds map[string][]string, max int, logger *slog.Logger) *RSS {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if max <= 0 {
		max = 10
	}
	if logger == nil {
		logger = slog.Default()
	}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = userAgent
	return &RSS{parser: parser, feeds: feeds, max: max, logger: logger}
}

// Name identifies the source inside the registry.
func (r *RSS) Name() string {
	return "rss"
}

// Topics parses every feed of the category; a failing feed is skipped.
func (r *RSS) Topics(ctx context.Context, category domain.Category) ([]string, error) {
	urls := r.feeds[string(category)]
	if len(urls) == 0 {
		return nil, nil
	}

	var (
		out     []string
		lastErr error
	)
	for _, u := range urls {
		feed, err := r.parser.ParseURLWithContext(u, ctx)
		if err != nil {
			lastErr = fmt.Errorf("parse feed %s: %w", u, err)
			r.logger.Warn("feed failed", "url", u, "error", err)
			continue
		}
		for _, item := range feed.Items {
			title := strings.TrimSpace(item.Title)
			if l := len(title); l <= 20 || l >= 100 {
				continue
			}
			out = append(out, title)
			if len(out) == r.max {
				return out, nil
			}
		}
	}
	if len(out) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return out, nil
}
