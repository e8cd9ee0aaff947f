// Package ai wires provider settings to concrete embedding, LLM, and
// storage adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/haldane-labs/tuberag/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/haldane-labs/tuberag/internal/adapters/driven/embedding/openai"
	groqllm "github.com/haldane-labs/tuberag/internal/adapters/driven/llm/groq"
	ollamallm "github.com/haldane-labs/tuberag/internal/adapters/driven/llm/ollama"
	openaillm "github.com/haldane-labs/tuberag/internal/adapters/driven/llm/openai"
	"github.com/haldane-labs/tuberag/internal/adapters/driven/storage/memory"
	"github.com/haldane-labs/tuberag/internal/adapters/driven/storage/milvus"
	"github.com/haldane-labs/tuberag/internal/adapters/driven/storage/sqlite"
	"github.com/haldane-labs/tuberag/internal/core/domain"
	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
)

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 5 * time.Second

// Stores bundles the storage adapters for one configured backend.
// HistoryStore is nil for backends that do not keep run history.
type Stores struct {
	Vector  driven.VectorStore
	History driven.IngestHistoryStore
}

// Close releases the underlying store. The history store shares the
// vector store's connection, so a single Close covers both.
func (s *Stores) Close() {
	if s.Vector != nil {
		s.Vector.Close()
	}
}

// CreateStores creates the vector store (and, for SQLite, the ingest
// history store sharing its database) selected by settings. dataDir is
// the directory for file-backed storage; empty means the default under
// the config directory.
func CreateStores(ctx context.Context, settings domain.StoreSettings, dataDir string) (*Stores, error) {
	switch settings.Backend {
	case domain.StoreBackendSQLite:
		if settings.Path != "" {
			dataDir = settings.Path
		}
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		return &Stores{
			Vector:  store.VectorStore(),
			History: store.HistoryStore(),
		}, nil

	case domain.StoreBackendMemory:
		return &Stores{Vector: memory.NewVectorStore()}, nil

	case domain.StoreBackendMilvus:
		store, err := milvus.NewStore(ctx, milvus.Config{
			Address:    settings.Address,
			Collection: settings.Collection,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		return &Stores{Vector: store}, nil

	default:
		return nil, fmt.Errorf("%w: store backend %q", domain.ErrUnsupportedProvider, settings.Backend)
	}
}

// CreateEmbeddingService builds the embedding adapter selected by
// settings. Returns nil without error when the provider is not
// configured, so callers can degrade instead of failing.
func CreateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.New(ollamaembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: domain.EmbeddingDimensions()[settings.Model],
		}), nil

	case domain.AIProviderOpenAI:
		return openaiembed.New(openaiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: domain.EmbeddingDimensions()[settings.Model],
		})

	case domain.AIProviderGroq:
		// Groq has no embeddings endpoint.
		return nil, fmt.Errorf("groq does not support embeddings, use ollama or openai")

	default:
		return nil, fmt.Errorf("%w: embedding provider %q", domain.ErrUnsupportedProvider, settings.Provider)
	}
}

// CreateLLMService builds the LLM adapter selected by settings.
// Returns nil without error when the provider is not configured.
func CreateLLMService(settings domain.LLMSettings) (driven.LLMService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderGroq:
		return groqllm.New(groqllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderOllama:
		return ollamallm.New(ollamallm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.New(openaillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("%w: LLM provider %q", domain.ErrUnsupportedProvider, settings.Provider)
	}
}

// CreateAndValidateEmbeddingService builds the embedding adapter and
// confirms the provider answers before handing it out.
func CreateAndValidateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'tuberag settings' to check your configuration",
			domain.ErrEmbeddingUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}
	if err := ping(svc); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'tuberag settings' to check your configuration",
			domain.ErrEmbeddingUnavailable, err)
	}
	return svc, nil
}

// CreateAndValidateLLMService builds the LLM adapter and confirms the
// provider answers before handing it out.
func CreateAndValidateLLMService(settings domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'tuberag settings' to check your configuration",
			domain.ErrLLMUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}
	if err := ping(svc); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'tuberag settings' to check your configuration",
			domain.ErrLLMUnavailable, err)
	}
	return svc, nil
}

// ValidateEmbeddingConfig checks a candidate embedding configuration
// by building the adapter and pinging it. Used by the settings flow
// before persisting changes.
func ValidateEmbeddingConfig(settings domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(settings)
	if err != nil || svc == nil {
		return err
	}
	defer svc.Close()
	return ping(svc)
}

// ValidateLLMConfig checks a candidate LLM configuration by building
// the adapter and pinging it.
func ValidateLLMConfig(settings domain.LLMSettings) error {
	svc, err := CreateLLMService(settings)
	if err != nil || svc == nil {
		return err
	}
	defer svc.Close()
	return ping(svc)
}

func ping(svc interface {
	Ping(context.Context) error
}) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}
