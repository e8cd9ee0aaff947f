package sqlite

import (
	"context"
	"fmt"
	"sort"

	"github.com/haldane-labs/tuberag/internal/adapters/driven/storage"
	"github.com/haldane-labs/tuberag/internal/core/domain"
	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
)

// vectorStore implements driven.VectorStore.
type vectorStore struct {
	store *Store
}

var _ driven.VectorStore = (*vectorStore)(nil)

// ReplaceAll replaces the entire collection contents in one transaction.
// A crash mid-replace rolls back to the previous contents.
func (s *vectorStore) ReplaceAll(ctx context.Context, chunks []domain.Chunk) error {
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

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, content, position, start_offset, end_offset, embedding, video_title, video_url, filename, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		embeddingBlob := encodeVector(chunk.Embedding)

		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.Text, chunk.Position,
			chunk.Start, chunk.End, embeddingBlob,
			chunk.Meta.VideoTitle, chunk.Meta.VideoURL, chunk.Meta.Filename,
			chunk.Meta.Source); err != nil {
			return fmt.Errorf("saving chunk %s: %w", chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Query scans every stored chunk and returns the k nearest by cosine
// distance, ascending.
func (s *vectorStore) Query(ctx context.Context, vector []float32, k int) ([]domain.Match, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("querying chunks: empty query vector")
	}
	if k <= 0 {
		return []domain.Match{}, nil
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, content, embedding, video_title, video_url, filename, source
		FROM chunks
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var matches []domain.Match //nolint:prealloc // size unknown from query
	for rows.Next() {
		var match domain.Match
		var embeddingBlob []byte

		if err := rows.Scan(&match.ID, &match.Text, &embeddingBlob,
			&match.Meta.VideoTitle, &match.Meta.VideoURL,
			&match.Meta.Filename, &match.Meta.Source); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}

		embedding := decodeVector(embeddingBlob)
		if len(embedding) != len(vector) {
			return nil, fmt.Errorf("query has %d dimensions, store has %d: %w",
				len(vector), len(embedding), domain.ErrDimensionMismatch)
		}

		match.Distance = storage.CosineDistance(vector, embedding)
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	if len(matches) == 0 {
		return nil, domain.ErrEmptyStore
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
func (s *vectorStore) Count(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// DistinctSources returns the unique source videos in insertion order.
func (s *vectorStore) DistinctSources(ctx context.Context) ([]domain.SourceRef, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT video_title, video_url, filename
		FROM chunks
		GROUP BY video_title, video_url, filename
		ORDER BY MIN(rowid)
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.SourceRef //nolint:prealloc // size unknown from query
	for rows.Next() {
		var ref domain.SourceRef
		if err := rows.Scan(&ref.VideoTitle, &ref.VideoURL, &ref.Filename); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		sources = append(sources, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}

	return sources, nil
}

// Close closes the underlying database.
func (s *vectorStore) Close() error {
	return s.store.Close()
}
