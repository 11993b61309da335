package trends

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"NewsWriter/internal/domain"
	"NewsWriter/internal/topics"
)

const newsAPIMaxTopics = 5

// ErrNoAPIKey is returned when a keyed source is used without credentials.
var ErrNoAPIKey = errors.New("api key is not configured")

// NewsAPI reads top headlines per category.
type NewsAPI struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

var _ topics.Source = (*NewsAPI)(nil)

// NewNewsAPI wires an HTTP client; nil uses a 10s timeout client.
func NewNewsAPI(client *http.Client, endpoint, apiKey string) *NewsAPI {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &NewsAPI{client: client, endpoint: endpoint, apiKey: apiKey}
}

// Name identifies the source inside the registry.
func (n *NewsAPI) Name() string {
	return "newsapi"
}

func newsAPICategory(c domain.Category) string {
	switch c {
	case domain.CategoryWorld, domain.CategoryLifestyle:
		return "general"
	case domain.CategoryCelebrities:
		return "entertainment"
	default:
		return string(c)
	}
}

type headlinesResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title string `json:"title"`
	} `json:"articles"`
}

// Topics returns up to five headline titles for the category.
func (n *NewsAPI) Topics(ctx context.Context, category domain.Category) ([]string, error) {
	if n.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	u, err := url.Parse(n.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid newsapi url %s: %w", n.endpoint, err)
	}
	q := u.Query()
	q.Set("country", "us")
	q.Set("category", newsAPICategory(category))
	q.Set("pageSize", "20")
	q.Set("apiKey", n.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request headlines: %w", err)
	}
	defer resp.Body.Close()

	var payload headlinesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode headlines: %w", err)
	}
	if resp.StatusCode != http.StatusOK || payload.Status == "error" {
		return nil, fmt.Errorf("newsapi returned %s: %s", resp.Status, payload.Message)
	}

	var out []string
	for _, a := range payload.Articles {
		title := stripPublisher(a.Title)
		if l := len(title); l <= 20 || l >= 100 {
			continue
		}
		out = append(out, title)
		if len(out) == newsAPIMaxTopics {
			break
		}
	}
	return out, nil
}

// stripPublisher drops a trailing " - Publisher" attribution.
func stripPublisher(title string) string {
	title = strings.TrimSpace(title)
	if idx := strings.LastIndex(title, " - "); idx > 0 {
		return strings.TrimSpace(title[:idx])
	}
	return title
}
