package images

import (
	"context"
	"net/http"
	"time"

	"NewsWriter/internal/domain"
	"NewsWriter/internal/ports"
)

// Unsplash searches the Unsplash photo API.
type Unsplash struct {
	client    *http.Client
	endpoint  string
	accessKey string
}

var _ ports.ImageProvider = (*Unsplash)(nil)

// NewUnsplash wires an HTTP client; nil uses a 10s timeout client.
func NewUnsplash(client *http.Client, endpoint, accessKey string) *Unsplash {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Unsplash{client: client, endpoint: endpoint, accessKey: accessKey}
}

// Name is used in alt text and metrics.
func (u *Unsplash) Name() string {
	return "Unsplash"
}

type unsplashResponse struct {
	Results []struct {
		Width  int `json:"width"`
		Height int `json:"height"`
		URLs   struct {
			Regular string `json:"regular"`
			Small   string `json:"small"`
			Thumb   string `json:"thumb"`
		} `json:"urls"`
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	} `json:"results"`
}

// Search returns photos ordered by relevance.
func (u *Unsplash) Search(ctx context.Context, req ports.ImageSearch) ([]domain.Photo, error) {
	if u.accessKey == "" {
		return nil, ErrNotConfigured
	}

	params := searchParams(req, "per_page")
	params.Set("order_by", "relevant")

	var payload unsplashResponse
	if err := searchJSON(ctx, u.client, u.endpoint, params, "Client-ID "+u.accessKey, &payload); err != nil {
		return nil, err
	}

	photos := make([]domain.Photo, 0, len(payload.Results))
	for _, r := range payload.Results {
		photos = append(photos, domain.Photo{
			URL:         firstNonEmpty(r.URLs.Regular, r.URLs.Small, r.URLs.Thumb),
			Width:       r.Width,
			Height:      r.Height,
			Attribution: r.User.Name,
		})
	}
	return photos, nil
}
