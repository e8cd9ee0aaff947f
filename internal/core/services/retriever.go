package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/haldane-labs/tuberag/internal/core/domain"
	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
	"github.com/haldane-labs/tuberag/internal/logger"
)

// Retriever performs query-time retrieval: it embeds the query text
// and finds the nearest stored chunks.
type Retriever struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
}

// NewRetriever creates a retriever over the given embedding provider
// and vector store. Both must be non-nil.
func NewRetriever(embedder driven.EmbeddingService, store driven.VectorStore) *Retriever {
	return &Retriever{
		embedder: embedder,
		store:    store,
	}
}

// Retrieve embeds the query and returns the k nearest chunks, closest
// first. Matches carry both the normalised distance and the derived
// similarity.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]domain.Match, error) {
	vector, err := r.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.Nearest(ctx, vector, k)
}

// EmbedQuery converts the query text into a vector using the same
// embedding model the corpus was indexed with.
func (r *Retriever) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	logger.Debug("Query embedded: %d dimensions", len(vector))
	return vector, nil
}

// Nearest runs the k-NN search and fills in similarity scores.
// Similarity is 1 - distance; the store guarantees distances in [0, 1],
// so similarity lands in [0, 1] as well. The store's ordering (closest
// first) is preserved.
func (r *Retriever) Nearest(ctx context.Context, vector []float32, k int) ([]domain.Match, error) {
	matches, err := r.store.Query(ctx, vector, k)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyStore) || errors.Is(err, domain.ErrDimensionMismatch) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	for i := range matches {
		matches[i].Similarity = 1 - matches[i].Distance
	}

	logger.Debug("Retrieved %d chunks", len(matches))
	return matches, nil
}
