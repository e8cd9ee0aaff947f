package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

func TestCreateEmbeddingService_Unconfigured(t *testing.T) {
	svc, err := CreateEmbeddingService(domain.EmbeddingSettings{})
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateEmbeddingService_Ollama(t *testing.T) {
	svc, err := CreateEmbeddingService(domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  "http://localhost:11434",
		Model:    "nomic-embed-text",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, "nomic-embed-text", svc.ModelName())
	assert.Equal(t, 768, svc.Dimensions(), "dimensions come from the known-model table")
}

func TestCreateEmbeddingService_OpenAI(t *testing.T) {
	svc, err := CreateEmbeddingService(domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		APIKey:   "sk-test",
		Model:    "text-embedding-3-large",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.Equal(t, 3072, svc.Dimensions())
}

func TestCreateEmbeddingService_GroqRejected(t *testing.T) {
	svc, err := CreateEmbeddingService(domain.EmbeddingSettings{
		Provider: domain.AIProviderGroq,
		APIKey:   "gsk_test",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "groq does not support embeddings")
	assert.Nil(t, svc)
}

func TestCreateEmbeddingService_UnknownProviderNotConfigured(t *testing.T) {
	// An unrecognised provider fails IsConfigured, so creation is a
	// quiet no-op rather than an error.
	svc, err := CreateEmbeddingService(domain.EmbeddingSettings{
		Provider: "watsonx",
		APIKey:   "key",
	})
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateLLMService_Providers(t *testing.T) {
	tests := []struct {
		name     string
		settings domain.LLMSettings
	}{
		{"groq", domain.LLMSettings{Provider: domain.AIProviderGroq, APIKey: "gsk_test", Model: "llama-3.1-8b-instant"}},
		{"ollama", domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "llama3.2"}},
		{"openai", domain.LLMSettings{Provider: domain.AIProviderOpenAI, APIKey: "sk-test", Model: "gpt-4o-mini"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)
			require.NoError(t, err)
			require.NotNil(t, svc)
			defer svc.Close()

			assert.Equal(t, tt.settings.Model, svc.ModelName())
		})
	}
}

func TestCreateLLMService_Unconfigured(t *testing.T) {
	svc, err := CreateLLMService(domain.LLMSettings{})
	require.NoError(t, err)
	assert.Nil(t, svc)

	// Groq without a key is unconfigured, not an error.
	svc, err = CreateLLMService(domain.LLMSettings{
		Provider: domain.AIProviderGroq,
		Model:    "llama-3.1-8b-instant",
	})
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateAndValidateEmbeddingService_PingSucceeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			w.Write([]byte(`{"models":[]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	svc, err := CreateAndValidateEmbeddingService(domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  server.URL,
		Model:    "nomic-embed-text",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	svc.Close()
}

func TestCreateAndValidateEmbeddingService_PingFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc, err := CreateAndValidateEmbeddingService(domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  server.URL,
		Model:    "nomic-embed-text",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Nil(t, svc)
}

func TestCreateAndValidateEmbeddingService_Unconfigured(t *testing.T) {
	svc, err := CreateAndValidateEmbeddingService(domain.EmbeddingSettings{})
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateAndValidateLLMService_PingFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc, err := CreateAndValidateLLMService(domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  server.URL,
		Model:    "llama3.2",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.Nil(t, svc)
}

func TestCreateAndValidateLLMService_PingSucceeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	svc, err := CreateAndValidateLLMService(domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  server.URL,
		Model:    "llama3.2",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	svc.Close()
}

func TestValidateEmbeddingConfig(t *testing.T) {
	// Unconfigured settings validate trivially.
	assert.NoError(t, ValidateEmbeddingConfig(domain.EmbeddingSettings{}))

	// Groq can never embed.
	err := ValidateEmbeddingConfig(domain.EmbeddingSettings{
		Provider: domain.AIProviderGroq,
		APIKey:   "gsk_test",
	})
	assert.Error(t, err)
}

func TestValidateLLMConfig(t *testing.T) {
	assert.NoError(t, ValidateLLMConfig(domain.LLMSettings{}))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	assert.NoError(t, ValidateLLMConfig(domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  server.URL,
		Model:    "llama3.2",
	}))
}

func TestCreateStores_SQLite(t *testing.T) {
	stores, err := CreateStores(context.Background(), domain.StoreSettings{
		Backend: domain.StoreBackendSQLite,
		Path:    t.TempDir(),
	}, "")
	require.NoError(t, err)
	defer stores.Close()

	assert.NotNil(t, stores.Vector)
	assert.NotNil(t, stores.History, "sqlite keeps ingest run history")
}

func TestCreateStores_Memory(t *testing.T) {
	stores, err := CreateStores(context.Background(), domain.StoreSettings{
		Backend: domain.StoreBackendMemory,
	}, "")
	require.NoError(t, err)
	defer stores.Close()

	assert.NotNil(t, stores.Vector)
	assert.Nil(t, stores.History, "memory backend keeps no run history")
}

func TestCreateStores_UnknownBackend(t *testing.T) {
	_, err := CreateStores(context.Background(), domain.StoreSettings{
		Backend: "cassandra",
	}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)
}

func TestStores_CloseWithoutStores(t *testing.T) {
	var s Stores
	s.Close()
}
