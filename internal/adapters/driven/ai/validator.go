package ai

import (
	"github.com/haldane-labs/tuberag/internal/core/domain"
	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
)

var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator checks candidate provider settings by pinging the
// provider. The settings service uses it before persisting changes.
type ConfigValidator struct{}

// NewConfigValidator creates a ConfigValidator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateEmbedding pings the embedding provider described by config.
// A nil config is nothing to validate and passes.
func (v *ConfigValidator) ValidateEmbedding(config *domain.EmbeddingSettings) error {
	if config == nil {
		return nil
	}
	return ValidateEmbeddingConfig(*config)
}

// ValidateLLM pings the LLM provider described by config. A nil
// config is nothing to validate and passes.
func (v *ConfigValidator) ValidateLLM(config *domain.LLMSettings) error {
	if config == nil {
		return nil
	}
	return ValidateLLMConfig(*config)
}
