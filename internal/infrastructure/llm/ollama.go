package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"NewsWriter/internal/config"
	"NewsWriter/internal/ports"
)

var (
	// ErrModelNotFound means the backend does not serve the configured model.
	ErrModelNotFound = errors.New("model not found")
	// ErrUnavailable means the backend could not be reached.
	ErrUnavailable = errors.New("generator unavailable")
	// ErrEmptyResponse means the backend answered without any text.
	ErrEmptyResponse = errors.New("empty generation response")
)

// OllamaClient implements ports.TextGenerator against a local Ollama server.
type OllamaClient struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

var _ ports.TextGenerator = (*OllamaClient)(nil)

// NewOllamaClient builds a client from configuration.
func NewOllamaClient(cfg config.GeneratorConfig) *OllamaClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OllamaClient{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		model:    cfg.Model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	NumPredict    int     `json:"num_predict,omitempty"`
	Temperature   float64 `json:"temperature,omitempty"`
	TopP          float64 `json:"top_p,omitempty"`
	RepeatPenalty float64 `json:"repeat_penalty,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Generate posts a non-streaming request to /api/generate.
func (c *OllamaClient) Generate(ctx context.Context, req ports.GenerationRequest) (string, error) {
	if c == nil {
		return "", fmt.Errorf("ollama client is nil")
	}
	if c.endpoint == "" || c.model == "" {
		return "", fmt.Errorf("ollama client misconfigured")
	}

	body, err := json.Marshal(ollamaRequest{
		Model:  c.model,
		Prompt: req.Prompt,
		Stream: false,
		Options: ollamaOptions{
			NumPredict:    req.MaxTokens,
			Temperature:   req.Temperature,
			TopP:          req.TopP,
			RepeatPenalty: req.RepeatPenalty,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal ollama payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var payload ollamaResponse
	decodeErr := json.Unmarshal(raw, &payload)

	if resp.StatusCode >= http.StatusBadRequest {
		msg := strings.TrimSpace(payload.Error)
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		if resp.StatusCode == http.StatusNotFound || strings.Contains(strings.ToLower(msg), "not found") {
			return "", fmt.Errorf("%w: %s", ErrModelNotFound, msg)
		}
		return "", fmt.Errorf("ollama error %s: %s", resp.Status, msg)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}
	if strings.TrimSpace(payload.Response) == "" {
		return "", ErrEmptyResponse
	}
	return payload.Response, nil
}
