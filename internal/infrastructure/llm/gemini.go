package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"NewsWriter/internal/config"
	"NewsWriter/internal/ports"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiClient implements ports.TextGenerator on Google Gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
}

var _ ports.TextGenerator = (*GeminiClient)(nil)

// NewGeminiClient opens an SDK client; call Close when done.
func NewGeminiClient(ctx context.Context, cfg config.GeneratorConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key missing")
	}
	model := cfg.Model
	if model == "" || strings.Contains(model, ":") {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Generate asks the model for a single candidate and joins its text parts.
func (c *GeminiClient) Generate(ctx context.Context, req ports.GenerationRequest) (string, error) {
	model := c.client.GenerativeModel(c.model)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.Temperature > 0 {
		model.SetTemperature(float32(req.Temperature))
	}
	if req.TopP > 0 {
		model.SetTopP(float32(req.TopP))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
