// Package openai embeds text through the OpenAI embeddings API.
// Any endpoint speaking the same protocol works via Config.BaseURL.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
)

var _ driven.EmbeddingService = (*Embedder)(nil)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "text-embedding-3-small"

	defaultTimeout = 60 * time.Second

	// fallbackDimensions applies when the model is not in the known
	// table and no override is configured.
	fallbackDimensions = 1536
)

// knownDimensions maps OpenAI embedding models to their native vector size.
var knownDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// Config holds connection settings for the OpenAI embedder.
type Config struct {
	// APIKey is required.
	APIKey string

	// BaseURL overrides the public endpoint, for Azure or compatible gateways.
	BaseURL string

	// Model selects the embedding model.
	Model string

	// Dimensions requests truncated output. Only the
	// text-embedding-3-* family honours it.
	Dimensions int

	Timeout time.Duration
}

// Embedder generates embeddings via the /embeddings endpoint.
type Embedder struct {
	http       *http.Client
	baseURL    string
	apiKey     string
	model      string
	dimensions int
}

// New creates an Embedder. The API key must be set; everything else
// falls back to defaults.
func New(cfg Config) (*Embedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: missing API key")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	dims := cfg.Dimensions
	if dims == 0 {
		if known, ok := knownDimensions[cfg.Model]; ok {
			dims = known
		} else {
			dims = fallbackDimensions
		}
	}

	return &Embedder{
		http:       &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		dimensions: dims,
	}, nil
}

// Embed generates a vector embedding for a single text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("openai: empty embedding response")
	}
	return vecs[0], nil
}

// EmbedBatch embeds all texts in one request. Results arrive tagged
// with an index and are reordered to match the input.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	payload := struct {
		Model      string   `json:"model"`
		Input      []string `json:"input"`
		Dimensions int      `json:"dimensions,omitempty"`
	}{Model: e.model, Input: texts}

	if strings.HasPrefix(e.model, "text-embedding-3-") && e.dimensions > 0 {
		payload.Dimensions = e.dimensions
	}

	var out struct {
		Data []struct {
			Index     int       `json:"index"`
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	if err := e.call(ctx, http.MethodPost, "/embeddings", payload, &out); err != nil {
		return nil, err
	}

	if len(out.Data) != len(texts) {
		return nil, fmt.Errorf("openai: sent %d texts, got %d embeddings", len(texts), len(out.Data))
	}

	vecs := make([][]float32, len(texts))
	for _, item := range out.Data {
		if item.Index < 0 || item.Index >= len(texts) {
			return nil, fmt.Errorf("openai: embedding index %d out of range", item.Index)
		}
		vec := make([]float32, len(item.Embedding))
		for i, v := range item.Embedding {
			vec[i] = float32(v)
		}
		vecs[item.Index] = vec
	}
	return vecs, nil
}

// Dimensions is the vector width, taken from Config.Dimensions or looked up
// by model name.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}

// ModelName returns the configured model.
func (e *Embedder) ModelName() string {
	return e.model
}

// Ping lists models, which exercises authentication without paying
// for an embedding call.
func (e *Embedder) Ping(ctx context.Context) error {
	return e.call(ctx, http.MethodGet, "/models", nil, nil)
}

// Close is a no-op; the HTTP client holds no resources that outlive requests.
func (e *Embedder) Close() error {
	return nil
}

// call performs an authenticated JSON round trip. On a non-2xx status
// it surfaces the API error message when one is present.
func (e *Embedder) call(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("openai: encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, e.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.http.Do(req)
	if err != nil {
		return fmt.Errorf("openai: %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("openai: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("openai: %s returned status %d: %s", path, resp.StatusCode, apiError(raw))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("openai: decode response: %w", err)
	}
	return nil
}

// apiError extracts the message from an OpenAI error payload, falling
// back to a truncated raw body.
func apiError(raw []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	const max = 200
	if len(raw) > max {
		return string(raw[:max]) + "..."
	}
	return string(raw)
}
