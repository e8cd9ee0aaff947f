// Package ollama generates chat completions through a local Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
)

var _ driven.LLMService = (*Client)(nil)

const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.2"

	// Local generation can be slow on CPU-only machines.
	defaultTimeout = 120 * time.Second
)

// Config holds connection settings for the Ollama client.
// Zero fields fall back to defaults.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client generates answers via the Ollama /api/chat endpoint.
type Client struct {
	http    *http.Client
	baseURL string
	model   string
}

// New creates a Client for the given configuration.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
	}
}

// Chat sends the conversation with streaming disabled and returns the
// reply text.
func (c *Client) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type genOptions struct {
		NumPredict  int     `json:"num_predict,omitempty"`
		Temperature float64 `json:"temperature,omitempty"`
	}
	payload := struct {
		Model    string      `json:"model"`
		Messages []message   `json:"messages"`
		Stream   bool        `json:"stream"`
		Options  *genOptions `json:"options,omitempty"`
	}{Model: c.model}

	for _, m := range messages {
		payload.Messages = append(payload.Messages, message{Role: m.Role, Content: m.Content})
	}
	if opts.MaxTokens > 0 || opts.Temperature > 0 {
		payload.Options = &genOptions{NumPredict: opts.MaxTokens, Temperature: opts.Temperature}
	}

	var out struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := c.postJSON(ctx, "/api/chat", payload, &out); err != nil {
		return "", err
	}
	return out.Message.Content, nil
}

// ModelName returns the configured model.
func (c *Client) ModelName() string {
	return c.model
}

// Ping lists local models via /api/tags to confirm the server is up.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: build ping request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: ping: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama: ping returned status %d", resp.StatusCode)
	}
	return nil
}

// Close is a no-op; the HTTP client holds no resources that outlive requests.
func (c *Client) Close() error {
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ollama: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ollama: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ollama: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama: %s returned status %d: %s", path, resp.StatusCode, snippet(raw))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("ollama: decode response: %w", err)
	}
	return nil
}

// snippet truncates an error body so a misbehaving server cannot
// flood the logs.
func snippet(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
