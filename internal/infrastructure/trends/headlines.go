package trends

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsWriter/internal/config"
	"NewsWriter/internal/domain"
	"NewsWriter/internal/topics"
)

const userAgent = "NewsWriter/1.0"

// Headlines scrapes headline text from HTML pages configured per category.
type Headlines struct {
	client *http.Client
	pages  []config.PageConfig
	max    int
}

var _ topics.Source = (*Headlines)(nil)

// NewHeadlines wires an HTTP client; nil uses a 10s timeout client.
func NewHeadlines(client *http.Client, pages []config.PageConfig, max int) *Headlines {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if max <= 0 {
		max = 10
	}
	return &Headlines{client: client, pages: pages, max: max}
}

// Name identifies the source inside the registry.
func (h *Headlines) Name() string {
	return "headlines"
}

// Topics walks every page configured for category.
func (h *Headlines) Topics(ctx context.Context, category domain.Category) ([]string, error) {
	var out []string
	for _, page := range h.pages {
		if !strings.EqualFold(page.Category, string(category)) {
			continue
		}

		doc, err := h.fetchDocument(ctx, page.URL)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", page.URL, err)
		}

		out = append(out, extractHeadlines(doc, page.Selector, h.max-len(out))...)
		if len(out) >= h.max {
			break
		}
	}
	return out, nil
}

func (h *Headlines) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func extractHeadlines(doc *goquery.Document, selector string, limit int) []string {
	if selector == "" {
		selector = "h1, h2, h3"
	}

	var out []string
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if l := len(text); l > 20 && l < 100 {
			out = append(out, text)
		}
		return len(out) < limit
	})
	return out
}
