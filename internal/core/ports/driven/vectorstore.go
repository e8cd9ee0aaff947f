package driven

import (
	"context"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

// VectorStore persists chunks with their embeddings and answers
// nearest-neighbour queries.
//
// The distance metric is normalised cosine distance in [0,1]: 0 means
// identical direction, 1 means orthogonal. All backends implement the
// same metric so the retriever's similarity conversion holds everywhere.
//
// The store's dimensionality is fixed by the first insert after a
// clear; entries with a different dimensionality are rejected with
// domain.ErrDimensionMismatch.
type VectorStore interface {
	// ReplaceAll atomically replaces the entire collection contents.
	// Chunks must carry populated embeddings. An empty slice is
	// rejected; ingestion never clears the store without replacements.
	ReplaceAll(ctx context.Context, chunks []domain.Chunk) error

	// Query returns the k stored entries nearest to vector, ascending
	// by distance, each with its raw distance. Returns
	// domain.ErrEmptyStore when no entries are stored.
	Query(ctx context.Context, vector []float32, k int) ([]domain.Match, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// DistinctSources enumerates the unique source videos in the
	// store without touching any embeddings, first-seen order.
	DistinctSources(ctx context.Context) ([]domain.SourceRef, error)

	// Close releases resources.
	Close() error
}
