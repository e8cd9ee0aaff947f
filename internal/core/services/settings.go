package services

import (
	"fmt"
	"os"
	"slices"

	"github.com/haldane-labs/tuberag/internal/core/domain"
	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
	"github.com/haldane-labs/tuberag/internal/core/ports/driving"
)

var _ driving.SettingsService = (*SettingsService)(nil)

// Dotted keys under which settings live in the config file.
//
//nolint:gosec // G101: key names, not credentials.
const (
	keyEmbedProvider = "embedding.provider"
	keyEmbedModel    = "embedding.model"
	keyEmbedBaseURL  = "embedding.base_url"
	keyEmbedAPIKey   = "embedding.api_key"
	keyLLMProvider   = "llm.provider"
	keyLLMModel      = "llm.model"
	keyLLMBaseURL    = "llm.base_url"
	keyLLMAPIKey     = "llm.api_key"
	keyStoreBackend  = "store.backend"
	keyStorePath     = "store.path"
	keyStoreAddress  = "store.address"
	keyStoreColl     = "store.collection"
	keyQueryDefaultK = "query.default_k"
	keyQueryMaxK     = "query.max_k"
	keyIngestDir     = "ingest.transcripts_dir"
	keyIngestSize    = "ingest.chunk_size"
	keyIngestOverlap = "ingest.chunk_overlap"
	keyIngestRate    = "ingest.embed_rate_per_sec"
)

// defaultOllamaURL is assumed for local providers with no explicit endpoint.
const defaultOllamaURL = "http://localhost:11434"

// SettingsService maps AppSettings onto the flat key space of the
// config store and validates provider choices before saving them.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService builds the service. aiValidator may be nil, in
// which case the connectivity checks report success.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings. API keys missing from
// the config file fall back to the provider's conventional environment
// variable (GROQ_API_KEY, OPENAI_API_KEY).
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	embedProvider := s.getProvider(keyEmbedProvider, defaults.Embedding.Provider)
	llmProvider := s.getProvider(keyLLMProvider, defaults.LLM.Provider)

	return &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider: embedProvider,
			Model:    orDefault(s.configStore.GetString(keyEmbedModel), defaults.Embedding.Model),
			// No BaseURL default; empty is valid for cloud providers.
			BaseURL: s.configStore.GetString(keyEmbedBaseURL),
			APIKey:  s.getSecret(keyEmbedAPIKey, embedProvider),
		},
		LLM: domain.LLMSettings{
			Provider: llmProvider,
			Model:    orDefault(s.configStore.GetString(keyLLMModel), defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL),
			APIKey:   s.getSecret(keyLLMAPIKey, llmProvider),
		},
		Store: domain.StoreSettings{
			Backend:    s.getBackend(keyStoreBackend, defaults.Store.Backend),
			Path:       s.configStore.GetString(keyStorePath),
			Address:    s.configStore.GetString(keyStoreAddress),
			Collection: orDefault(s.configStore.GetString(keyStoreColl), defaults.Store.Collection),
		},
		Query: domain.QuerySettings{
			DefaultK: orDefault(s.configStore.GetInt(keyQueryDefaultK), defaults.Query.DefaultK),
			MaxK:     orDefault(s.configStore.GetInt(keyQueryMaxK), defaults.Query.MaxK),
		},
		Ingest: domain.IngestSettings{
			TranscriptsDir:  orDefault(s.configStore.GetString(keyIngestDir), defaults.Ingest.TranscriptsDir),
			ChunkSize:       orDefault(s.configStore.GetInt(keyIngestSize), defaults.Ingest.ChunkSize),
			ChunkOverlap:    orDefault(s.configStore.GetInt(keyIngestOverlap), defaults.Ingest.ChunkOverlap),
			EmbedRatePerSec: orDefault(s.configStore.GetFloat(keyIngestRate), defaults.Ingest.EmbedRatePerSec),
		},
	}, nil
}

// Save writes every settings field back to the config store.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	type entry struct {
		key string
		val any
	}
	entries := []entry{
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyStoreBackend, settings.Store.Backend.String()},
		{keyStorePath, settings.Store.Path},
		{keyStoreAddress, settings.Store.Address},
		{keyStoreColl, settings.Store.Collection},
		{keyQueryDefaultK, settings.Query.DefaultK},
		{keyQueryMaxK, settings.Query.MaxK},
		{keyIngestDir, settings.Ingest.TranscriptsDir},
		{keyIngestSize, settings.Ingest.ChunkSize},
		{keyIngestOverlap, settings.Ingest.ChunkOverlap},
		{keyIngestRate, settings.Ingest.EmbedRatePerSec},
	}

	// API keys are only written when set, so a Save round-trip never
	// clears a stored key.
	if settings.Embedding.APIKey != "" {
		entries = append(entries, entry{keyEmbedAPIKey, settings.Embedding.APIKey})
	}
	if settings.LLM.APIKey != "" {
		entries = append(entries, entry{keyLLMAPIKey, settings.LLM.APIKey})
	}

	for _, e := range entries {
		if err := s.configStore.Set(e.key, e.val); err != nil {
			return fmt.Errorf("save %s: %w", e.key, err)
		}
	}
	return nil
}

// SetEmbeddingProvider switches the embedding provider, filling in the
// provider's default model and base URL where none are given.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}
	if !slices.Contains(domain.AllEmbeddingProviders(), provider) {
		return fmt.Errorf("provider %s does not support embeddings", provider)
	}
	if err := s.requireKey(provider, apiKey); err != nil {
		return err
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider
	settings.Embedding.Model, settings.Embedding.BaseURL = resolveProvider(
		provider, model, settings.Embedding.BaseURL, domain.DefaultEmbeddingModels())
	settings.Embedding.APIKey = apiKey
	return s.Save(settings)
}

// SetLLMProvider switches the generation provider, filling in the
// provider's default model and base URL where none are given.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid llm provider: %s", provider)
	}
	if err := s.requireKey(provider, apiKey); err != nil {
		return err
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider
	settings.LLM.Model, settings.LLM.BaseURL = resolveProvider(
		provider, model, settings.LLM.BaseURL, domain.DefaultLLMModels())
	settings.LLM.APIKey = apiKey
	return s.Save(settings)
}

// SetStoreBackend configures the vector store backend.
func (s *SettingsService) SetStoreBackend(backend domain.StoreBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("invalid store backend: %s", backend)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Store.Backend = backend

	// Milvus is the only backend reached over the network.
	if backend == domain.StoreBackendMilvus && settings.Store.Address == "" {
		settings.Store.Address = "localhost:19530"
	}

	return s.Save(settings)
}

// Validate checks if current settings can serve the query pipeline.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Store.Backend.IsValid() {
		return fmt.Errorf("invalid store backend: %s", settings.Store.Backend)
	}
	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("embedding provider %q is not fully configured", settings.Embedding.Provider)
	}
	if !settings.LLM.IsConfigured() {
		return fmt.Errorf("llm provider %q is not fully configured", settings.LLM.Provider)
	}
	if settings.Ingest.ChunkOverlap >= settings.Ingest.ChunkSize {
		return fmt.Errorf("chunk overlap %d must be smaller than chunk size %d",
			settings.Ingest.ChunkOverlap, settings.Ingest.ChunkSize)
	}
	return nil
}

// GetDefaults returns the built-in defaults.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig connects to the configured embedding provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig connects to the configured generation provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// requireKey rejects cloud providers with no key in the call or environment.
func (s *SettingsService) requireKey(provider domain.AIProvider, apiKey string) error {
	if provider.RequiresAPIKey() && apiKey == "" && envAPIKey(provider) == "" {
		return fmt.Errorf("API key required for %s", provider)
	}
	return nil
}

// resolveProvider computes the model and base URL stored for a provider
// change. An empty model falls back to the catalog default. Local providers
// keep or gain the standard Ollama URL; cloud providers drop any URL.
func resolveProvider(provider domain.AIProvider, model, baseURL string,
	defaults map[domain.AIProvider]string,
) (string, string) {
	if model == "" {
		model = defaults[provider]
	}
	if !provider.IsLocal() {
		return model, ""
	}
	return model, orDefault(baseURL, defaultOllamaURL)
}

// Helpers for reading config with defaults.

// orDefault substitutes def when val is the zero value, covering config
// keys that were never set.
func orDefault[T comparable](val, def T) T {
	var zero T
	if val == zero {
		return def
	}
	return val
}

func (s *SettingsService) getProvider(key string, def domain.AIProvider) domain.AIProvider {
	if p := domain.AIProvider(s.configStore.GetString(key)); p.IsValid() {
		return p
	}
	return def
}

func (s *SettingsService) getBackend(key string, def domain.StoreBackend) domain.StoreBackend {
	if b := domain.StoreBackend(s.configStore.GetString(key)); b.IsValid() {
		return b
	}
	return def
}

// getSecret reads an API key from config, falling back to the
// provider's environment variable.
func (s *SettingsService) getSecret(key string, provider domain.AIProvider) string {
	return orDefault(s.configStore.GetString(key), envAPIKey(provider))
}

// Conventional environment variables holding provider API keys.
var apiKeyEnv = map[domain.AIProvider]string{
	domain.AIProviderGroq:   "GROQ_API_KEY",
	domain.AIProviderOpenAI: "OPENAI_API_KEY",
}

func envAPIKey(provider domain.AIProvider) string {
	name, ok := apiKeyEnv[provider]
	if !ok {
		return ""
	}
	return os.Getenv(name)
}
