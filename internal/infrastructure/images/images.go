// Package images implements stock-photo search providers.
package images

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"NewsWriter/internal/ports"
)

var (
	ErrNotConfigured = errors.New("image provider is not configured")
	ErrUnauthorized  = errors.New("image provider rejected credentials")
	ErrRateLimited   = errors.New("image provider rate limit reached")
)

// searchJSON issues a GET with query parameters and decodes a JSON reply.
func searchJSON(ctx context.Context, client *http.Client, endpoint string, params url.Values, auth string, out any) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %s: %w", endpoint, err)
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, resp.Status)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, resp.Status)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("search returned %s: %s", resp.Status, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode search: %w", err)
	}
	return nil
}

func searchParams(req ports.ImageSearch, perPageKey string) url.Values {
	orientation := req.Orientation
	if orientation == "" {
		orientation = "landscape"
	}
	params := url.Values{}
	params.Set("query", req.Query)
	params.Set("orientation", orientation)
	if req.PerPage > 0 {
		params.Set(perPageKey, strconv.Itoa(req.PerPage))
	}
	return params
}
