// Package topics resolves candidate headlines for a category from an
// ordered set of named sources.
package topics

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"NewsWriter/internal/domain"
	"NewsWriter/internal/ports"
)

// Source is a named topic provider.
type Source interface {
	ports.TopicSource
	Name() string
}

// Registry keeps a mapping from source names to their implementations.
type Registry struct {
	sources map[string]Source
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: map[string]Source{}}
}

// Register adds or replaces a source implementation.
func (r *Registry) Register(source Source) {
	if r.sources == nil {
		r.sources = map[string]Source{}
	}
	r.sources[source.Name()] = source
}

// Resolve returns a source by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Source, error) {
	if source, ok := r.sources[name]; ok {
		return source, nil
	}
	return nil, fmt.Errorf("topic source %s is not registered", name)
}

// Chain tries sources in order; the first non-empty list wins.
type Chain struct {
	registry *Registry
	order    []string
	logger   *slog.Logger
}

var _ ports.TopicSource = (*Chain)(nil)

// NewChain wires the registry with the configured source order.
func NewChain(reg *Registry, order []string, logger *slog.Logger) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{registry: reg, order: order, logger: logger}
}

// Topics returns the first non-empty topic list. Source failures are logged
// and skipped.
func (c *Chain) Topics(ctx context.Context, category domain.Category) ([]string, error) {
	if c.registry == nil {
		return nil, fmt.Errorf("topic registry is not configured")
	}

	for _, name := range c.order {
		source, err := c.registry.Resolve(name)
		if err != nil {
			c.logger.Debug("skip topic source", "source", name, "error", err)
			continue
		}

		found, err := source.Topics(ctx, category)
		if err != nil {
			c.logger.Warn("topic source failed", "source", name, "category", category, "error", err)
			continue
		}
		found = clean(found)
		if len(found) == 0 {
			c.logger.Debug("topic source empty", "source", name, "category", category)
			continue
		}

		c.logger.Debug("topics resolved", "source", name, "category", category, "count", len(found))
		return found, nil
	}
	return nil, fmt.Errorf("no topics for category %s", category)
}

func clean(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.Join(strings.Fields(t), " ")
		key := strings.ToLower(t)
		if t == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
