package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/haldane-labs/tuberag/internal/adapters/driven/storage"
	"github.com/haldane-labs/tuberag/internal/core/domain"
	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore is an in-memory implementation of driven.VectorStore.
// Nothing survives a restart; it exists for tests and for trying the
// pipeline without a database file.
type VectorStore struct {
	mu     sync.RWMutex
	chunks []domain.Chunk
}

// NewVectorStore creates a new in-memory vector store.
func NewVectorStore() *VectorStore {
	return &VectorStore{}
}

// ReplaceAll replaces the entire collection contents.
func (s *VectorStore) ReplaceAll(_ context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return fmt.Errorf("replacing chunks: empty chunk set")
	}

	dims := len(chunks[0].Embedding)
	if dims == 0 {
		return fmt.Errorf("replacing chunks: chunk %s has no embedding", chunks[0].ID)
	}
	for _, chunk := range chunks {
		if len(chunk.Embedding) != dims {
			return fmt.Errorf("chunk %s has %d dimensions, expected %d: %w",
				chunk.ID, len(chunk.Embedding), dims, domain.ErrDimensionMismatch)
		}
	}

	copied := make([]domain.Chunk, len(chunks))
	copy(copied, chunks)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = copied
	return nil
}

// Query scans every stored chunk and returns the k nearest by cosine
// distance, ascending.
func (s *VectorStore) Query(_ context.Context, vector []float32, k int) ([]domain.Match, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("querying chunks: empty query vector")
	}
	if k <= 0 {
		return []domain.Match{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.chunks) == 0 {
		return nil, domain.ErrEmptyStore
	}

	matches := make([]domain.Match, 0, len(s.chunks))
	for _, chunk := range s.chunks {
		if len(chunk.Embedding) != len(vector) {
			return nil, fmt.Errorf("query has %d dimensions, store has %d: %w",
				len(vector), len(chunk.Embedding), domain.ErrDimensionMismatch)
		}

		matches = append(matches, domain.Match{
			ID:       chunk.ID,
			Text:     chunk.Text,
			Meta:     chunk.Meta,
			Distance: storage.CosineDistance(vector, chunk.Embedding),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k], nil
}

// Count returns the number of stored chunks.
func (s *VectorStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

// DistinctSources returns the unique source videos in first-seen order.
func (s *VectorStore) DistinctSources(_ context.Context) ([]domain.SourceRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[domain.SourceRef]struct{})
	sources := make([]domain.SourceRef, 0)
	for _, chunk := range s.chunks {
		ref := chunk.Meta.Ref()
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		sources = append(sources, ref)
	}

	return sources, nil
}

// Close releases resources (no-op for memory store).
func (s *VectorStore) Close() error {
	return nil
}
