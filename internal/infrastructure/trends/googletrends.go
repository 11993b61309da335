package trends

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"NewsWriter/internal/domain"
	"NewsWriter/internal/topics"
)

var trendsPrefix = []byte(")]}'")

// GoogleTrends reads the daily trending searches feed. Trends are not
// categorised, so every category receives the same list.
type GoogleTrends struct {
	client   *http.Client
	endpoint string
	geo      string
	max      int
}

var _ topics.Source = (*GoogleTrends)(nil)

// NewGoogleTrends wires an HTTP client; nil uses a 10s timeout client.
func NewGoogleTrends(client *http.Client, endpoint, geo string, max int) *GoogleTrends {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if geo == "" {
		geo = "US"
	}
	if max <= 0 {
		max = 10
	}
	return &GoogleTrends{client: client, endpoint: endpoint, geo: geo, max: max}
}

// Name identifies the source inside the registry.
func (g *GoogleTrends) Name() string {
	return "googletrends"
}

type dailyTrends struct {
	Default struct {
		TrendingSearchesDays []struct {
			TrendingSearches []struct {
				Title struct {
					Query string `json:"query"`
				} `json:"title"`
			} `json:"trendingSearches"`
		} `json:"trendingSearchesDays"`
	} `json:"default"`
}

// Topics fetches today's trending queries.
func (g *GoogleTrends) Topics(ctx context.Context, _ domain.Category) ([]string, error) {
	u, err := url.Parse(g.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid trends url %s: %w", g.endpoint, err)
	}
	q := u.Query()
	q.Set("hl", "en-US")
	q.Set("tz", "-120")
	q.Set("geo", g.geo)
	q.Set("ns", "15")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request trends: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google trends returned %s", resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read trends: %w", err)
	}
	return parseDailyTrends(raw, g.max)
}

func parseDailyTrends(raw []byte, max int) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	raw = bytes.TrimPrefix(raw, trendsPrefix)
	raw = bytes.TrimLeft(raw, ", \n")

	var payload dailyTrends
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode trends: %w", err)
	}

	days := payload.Default.TrendingSearchesDays
	if len(days) == 0 {
		return nil, nil
	}

	var out []string
	for _, s := range days[0].TrendingSearches {
		title := s.Title.Query
		if n := len(title); n <= 10 || n >= 100 {
			continue
		}
		out = append(out, title)
		if len(out) == max {
			break
		}
	}
	return out, nil
}
