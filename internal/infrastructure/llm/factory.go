package llm

import (
	"context"
	"fmt"
	"strings"

	"NewsWriter/internal/config"
	"NewsWriter/internal/ports"
)

// New selects a generator by cfg.Provider (ollama, openai, gemini).
func New(ctx context.Context, cfg config.GeneratorConfig) (ports.TextGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "ollama":
		return NewOllamaClient(cfg), nil
	case "openai":
		return NewOpenAIClient(cfg)
	case "gemini":
		return NewGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown generator provider %q", cfg.Provider)
	}
}
