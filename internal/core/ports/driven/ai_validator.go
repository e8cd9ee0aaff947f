package driven

import "github.com/haldane-labs/tuberag/internal/core/domain"

// AIConfigValidator checks provider settings by connecting to the
// underlying services. A nil error means the configuration works, or
// that nothing is configured yet.
type AIConfigValidator interface {
	ValidateEmbedding(config *domain.EmbeddingSettings) error
	ValidateLLM(config *domain.LLMSettings) error
}
