package images

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"NewsWriter/internal/ports"
)

func TestPexelsSearch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.Header.Get("Authorization") != "pexels-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if q.Get("query") != "solar energy" || q.Get("orientation") != "landscape" || q.Get("per_page") != "15" || q.Get("size") != "large" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"photos":[{"width":6000,"height":4000,"photographer":"Jane Doe","src":{"large":"https://images.pexels.com/1.jpg","medium":"https://images.pexels.com/1-m.jpg"}}]}`))
	}))
	defer server.Close()

	p := NewPexels(server.Client(), server.URL, "pexels-key")
	photos, err := p.Search(context.Background(), ports.ImageSearch{Query: "solar energy", Orientation: "landscape", PerPage: 15})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(photos) != 1 {
		t.Fatalf("expected 1 photo, got %d", len(photos))
	}
	ph := photos[0]
	if ph.URL != "https://images.pexels.com/1.jpg" || ph.Width != 6000 || ph.Height != 4000 || ph.Attribution != "Jane Doe" {
		t.Fatalf("unexpected photo %+v", ph)
	}
}

func TestUnsplashSearch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Client-ID unsplash-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("order_by") != "relevant" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"width":5000,"height":3000,"urls":{"regular":"https://images.unsplash.com/a"},"user":{"name":"John Roe"}},{"width":800,"height":600,"urls":{"small":"https://images.unsplash.com/b-small"},"user":{"name":""}}]}`))
	}))
	defer server.Close()

	u := NewUnsplash(server.Client(), server.URL, "unsplash-key")
	photos, err := u.Search(context.Background(), ports.ImageSearch{Query: "city skyline"})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(photos) != 2 || photos[0].URL != "https://images.unsplash.com/a" || photos[1].URL != "https://images.unsplash.com/b-small" {
		t.Fatalf("unexpected photos %+v", photos)
	}
	if photos[0].Attribution != "John Roe" {
		t.Fatalf("unexpected attribution %q", photos[0].Attribution)
	}
}

func TestProviderErrors(t *testing.T) {
	t.Parallel()

	statuses := map[int]error{
		http.StatusUnauthorized:    ErrUnauthorized,
		http.StatusTooManyRequests: ErrRateLimited,
	}
	for status, want := range statuses {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		_, err := NewPexels(server.Client(), server.URL, "key").Search(context.Background(), ports.ImageSearch{Query: "q"})
		server.Close()
		if !errors.Is(err, want) {
			t.Fatalf("status %d: expected %v, got %v", status, want, err)
		}
	}

	if _, err := NewUnsplash(nil, "http://unused", "").Search(context.Background(), ports.ImageSearch{Query: "q"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestProviderTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewPexels(server.Client(), server.URL, "key").Search(ctx, ports.ImageSearch{Query: "q"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
