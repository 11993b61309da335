package images

import (
	"context"
	"net/http"
	"time"

	"NewsWriter/internal/domain"
	"NewsWriter/internal/ports"
)

// Pexels searches the Pexels photo API.
type Pexels struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

var _ ports.ImageProvider = (*Pexels)(nil)

// NewPexels wires an HTTP client; nil uses a 10s timeout client.
func NewPexels(client *http.Client, endpoint, apiKey string) *Pexels {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Pexels{client: client, endpoint: endpoint, apiKey: apiKey}
}

// Name is used in alt text and metrics.
func (p *Pexels) Name() string {
	return "Pexels"
}

type pexelsResponse struct {
	Photos []struct {
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		Photographer string `json:"photographer"`
		Src          struct {
			Large2x string `json:"large2x"`
			Large   string `json:"large"`
			Medium  string `json:"medium"`
			Small   string `json:"small"`
		} `json:"src"`
	} `json:"photos"`
}

// Search returns photos in API order.
func (p *Pexels) Search(ctx context.Context, req ports.ImageSearch) ([]domain.Photo, error) {
	if p.apiKey == "" {
		return nil, ErrNotConfigured
	}

	params := searchParams(req, "per_page")
	params.Set("size", "large")

	var payload pexelsResponse
	if err := searchJSON(ctx, p.client, p.endpoint, params, p.apiKey, &payload); err != nil {
		return nil, err
	}

	photos := make([]domain.Photo, 0, len(payload.Photos))
	for _, ph := range payload.Photos {
		photos = append(photos, domain.Photo{
			URL:         firstNonEmpty(ph.Src.Large, ph.Src.Large2x, ph.Src.Medium, ph.Src.Small),
			Width:       ph.Width,
			Height:      ph.Height,
			Attribution: ph.Photographer,
		})
	}
	return photos, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
