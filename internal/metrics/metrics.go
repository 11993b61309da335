// Package metrics exposes Prometheus instrumentation for the writer.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "newswriter"

// Metrics groups all collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	ArticlesTotal        *prometheus.CounterVec
	FallbacksTotal       *prometheus.CounterVec
	ImageLookupsTotal    *prometheus.CounterVec
	GenerationDuration   prometheus.Histogram
	BatchDurationSeconds prometheus.Histogram
}

// New registers collectors on a dedicated registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ArticlesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_total",
			Help:      "Articles processed by category and status",
		}, []string{"category", "status"}),
		FallbacksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Fallback paths taken by pipeline stage",
		}, []string{"stage"}),
		ImageLookupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_lookups_total",
			Help:      "Image provider calls by provider and outcome",
		}, []string{"provider", "outcome"}),
		GenerationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Text generation latency",
			Buckets:   []float64{1, 5, 15, 30, 60, 90, 120},
		}),
		BatchDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Wall time of a full batch",
			Buckets:   prometheus.ExponentialBuckets(30, 2, 8),
		}),
	}
}

// Registry exposes the underlying registry for tests and handlers.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Article counts one category result.
func (m *Metrics) Article(category string, ok bool) {
	if m == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "failed"
	}
	m.ArticlesTotal.WithLabelValues(category, status).Inc()
}

// Fallback counts a fallback taken at stage.
func (m *Metrics) Fallback(stage string) {
	if m == nil {
		return
	}
	m.FallbacksTotal.WithLabelValues(stage).Inc()
}

// ImageLookup counts a provider call outcome (hit, miss, error).
func (m *Metrics) ImageLookup(provider, outcome string) {
	if m == nil {
		return
	}
	m.ImageLookupsTotal.WithLabelValues(provider, outcome).Inc()
}

// ObserveGeneration records generation latency.
func (m *Metrics) ObserveGeneration(d time.Duration) {
	if m == nil {
		return
	}
	m.GenerationDuration.Observe(d.Seconds())
}

// ObserveBatch records batch wall time.
func (m *Metrics) ObserveBatch(d time.Duration) {
	if m == nil {
		return
	}
	m.BatchDurationSeconds.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve metrics: %w", err)
	}
	return nil
}
