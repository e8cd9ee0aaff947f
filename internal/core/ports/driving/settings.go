package driving

import "github.com/haldane-labs/tuberag/internal/core/domain"

// SettingsService reads and updates the persisted application settings.
type SettingsService interface {
	// Get loads the current settings.
	Get() (*domain.AppSettings, error)

	// Save persists settings in full.
	Save(settings *domain.AppSettings) error

	// SetEmbeddingProvider switches the embedding provider, model and
	// API key in one step.
	SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error

	// SetLLMProvider switches the generation provider, model and API
	// key in one step.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetStoreBackend switches the vector store backend.
	SetStoreBackend(backend domain.StoreBackend) error

	// Validate checks that the stored settings can serve the pipeline.
	Validate() error

	// GetDefaults returns the built-in defaults.
	GetDefaults() domain.AppSettings

	// ValidateEmbeddingConfig pings the configured embedding provider.
	ValidateEmbeddingConfig() error

	// ValidateLLMConfig pings the configured generation provider.
	ValidateLLMConfig() error
}
