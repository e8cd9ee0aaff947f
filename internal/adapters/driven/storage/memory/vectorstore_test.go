package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

func chunk(id string, embedding []float32, title, url, filename string) domain.Chunk {
	return domain.Chunk{
		ID:        id,
		Text:      "text for " + id,
		Embedding: embedding,
		Meta: domain.ChunkMeta{
			VideoTitle: title,
			VideoURL:   url,
			Filename:   filename,
			Source:     domain.SourceYouTubeTranscript,
		},
	}
}

func TestVectorStore_ReplaceAll(t *testing.T) {
	t.Run("stores and replaces", func(t *testing.T) {
		store := NewVectorStore()
		ctx := context.Background()

		require.NoError(t, store.ReplaceAll(ctx, []domain.Chunk{
			chunk("a", []float32{1, 0}, "A", "u1", "a.txt"),
			chunk("b", []float32{0, 1}, "B", "u2", "b.txt"),
		}))

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		require.NoError(t, store.ReplaceAll(ctx, []domain.Chunk{
			chunk("c", []float32{1, 1}, "C", "u3", "c.txt"),
		}))

		count, err = store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("rejects empty set", func(t *testing.T) {
		store := NewVectorStore()
		assert.Error(t, store.ReplaceAll(context.Background(), nil))
	})

	t.Run("rejects mixed dimensions", func(t *testing.T) {
		store := NewVectorStore()
		err := store.ReplaceAll(context.Background(), []domain.Chunk{
			chunk("a", []float32{1, 0}, "A", "u1", "a.txt"),
			chunk("b", []float32{1, 0, 0}, "B", "u2", "b.txt"),
		})
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	})

	t.Run("is isolated from caller slice", func(t *testing.T) {
		store := NewVectorStore()
		ctx := context.Background()

		chunks := []domain.Chunk{chunk("a", []float32{1, 0}, "A", "u1", "a.txt")}
		require.NoError(t, store.ReplaceAll(ctx, chunks))

		chunks[0].ID = "mutated"

		matches, err := store.Query(ctx, []float32{1, 0}, 1)
		require.NoError(t, err)
		assert.Equal(t, "a", matches[0].ID)
	})
}

func TestVectorStore_Query(t *testing.T) {
	t.Run("orders by distance ascending", func(t *testing.T) {
		store := NewVectorStore()
		ctx := context.Background()

		require.NoError(t, store.ReplaceAll(ctx, []domain.Chunk{
			chunk("far", []float32{-1, 0}, "Far", "u1", "far.txt"),
			chunk("exact", []float32{1, 0}, "Exact", "u2", "exact.txt"),
			chunk("near", []float32{1, 0.3}, "Near", "u3", "near.txt"),
		}))

		matches, err := store.Query(ctx, []float32{1, 0}, 3)
		require.NoError(t, err)
		require.Len(t, matches, 3)

		assert.Equal(t, "exact", matches[0].ID)
		assert.Equal(t, "near", matches[1].ID)
		assert.Equal(t, "far", matches[2].ID)
	})

	t.Run("empty store returns ErrEmptyStore", func(t *testing.T) {
		store := NewVectorStore()
		_, err := store.Query(context.Background(), []float32{1, 0}, 5)
		assert.ErrorIs(t, err, domain.ErrEmptyStore)
	})

	t.Run("mismatched dimensions", func(t *testing.T) {
		store := NewVectorStore()
		ctx := context.Background()

		require.NoError(t, store.ReplaceAll(ctx, []domain.Chunk{
			chunk("a", []float32{1, 0, 0}, "A", "u1", "a.txt"),
		}))

		_, err := store.Query(ctx, []float32{1, 0}, 1)
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	})

	t.Run("k larger than store", func(t *testing.T) {
		store := NewVectorStore()
		ctx := context.Background()

		require.NoError(t, store.ReplaceAll(ctx, []domain.Chunk{
			chunk("a", []float32{1, 0}, "A", "u1", "a.txt"),
		}))

		matches, err := store.Query(ctx, []float32{1, 0}, 100)
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})
}

func TestVectorStore_DistinctSources_FirstSeenOrder(t *testing.T) {
	store := NewVectorStore()
	ctx := context.Background()

	require.NoError(t, store.ReplaceAll(ctx, []domain.Chunk{
		chunk("b1", []float32{0, 1}, "Video B", "u2", "b.txt"),
		chunk("a1", []float32{1, 0}, "Video A", "u1", "a.txt"),
		chunk("b2", []float32{1, 1}, "Video B", "u2", "b.txt"),
	}))

	sources, err := store.DistinctSources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, "Video B", sources[0].VideoTitle)
	assert.Equal(t, "Video A", sources[1].VideoTitle)
}

func TestVectorStore_ConcurrentAccess(t *testing.T) {
	store := NewVectorStore()
	ctx := context.Background()

	require.NoError(t, store.ReplaceAll(ctx, []domain.Chunk{
		chunk("a", []float32{1, 0}, "A", "u1", "a.txt"),
	}))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Query(ctx, []float32{1, 0}, 1)
			_, _ = store.Count(ctx)
			_, _ = store.DistinctSources(ctx)
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.ReplaceAll(ctx, []domain.Chunk{
				chunk("b", []float32{0, 1}, "B", "u2", "b.txt"),
			})
		}()
	}
	wg.Wait()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
