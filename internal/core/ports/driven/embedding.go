package driven

import "context"

// EmbeddingService turns text into vectors. Storage and queries must
// go through the same service; mixing embedding models makes
// nearest-neighbour distances meaningless.
//
// The Ollama (nomic-embed-text, all-minilm) and OpenAI
// (text-embedding-3-small, text-embedding-3-large) adapters implement
// this interface.
type EmbeddingService interface {
	// Embed generates the vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch embeds several texts, in one round trip where the
	// provider supports it.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions reports the vector size the model produces, for
	// example 384, 768 or 1536. It fixes the store's dimensionality.
	Dimensions() int

	// ModelName reports the model in use.
	ModelName() string

	// Ping makes a lightweight request to verify the service is
	// reachable. Run at startup before queries are served.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
