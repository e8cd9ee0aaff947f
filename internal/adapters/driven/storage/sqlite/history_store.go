package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/haldane-labs/tuberag/internal/core/domain"
	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
)

// historyStore implements driven.IngestHistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.IngestHistoryStore = (*historyStore)(nil)

// RecordRun persists one completed ingestion run.
func (s *historyStore) RecordRun(ctx context.Context, run domain.IngestRun) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO ingest_runs (id, started_at, finished_at, documents, chunks, success, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID,
		run.StartedAt.Format(time.RFC3339Nano),
		run.FinishedAt.Format(time.RFC3339Nano),
		run.Documents, run.Chunks,
		boolToInt(run.Success),
		nullable(run.Error))

	if err != nil {
		return fmt.Errorf("recording ingest run: %w", err)
	}
	return nil
}

// LastRun returns the most recent run.
func (s *historyStore) LastRun(ctx context.Context) (domain.IngestRun, error) {
	// Runs are recorded at completion, so rowid order is recording order.
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, documents, chunks, success, error
		FROM ingest_runs
		ORDER BY rowid DESC
		LIMIT 1
	`)

	run, err := scanIngestRun(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.IngestRun{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.IngestRun{}, err
	}
	return run, nil
}

// ListRuns returns up to limit runs, newest first.
func (s *historyStore) ListRuns(ctx context.Context, limit int) ([]domain.IngestRun, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, documents, chunks, success, error
		FROM ingest_runs
		ORDER BY rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying ingest runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.IngestRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanIngestRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingest runs: %w", err)
	}

	return runs, nil
}

// scanIngestRun scans one ingest run row via the given Scan function.
func scanIngestRun(scan func(dest ...any) error) (domain.IngestRun, error) {
	var run domain.IngestRun
	var startedAt, finishedAt string
	var success int
	var errMsg sql.NullString

	if err := scan(&run.ID, &startedAt, &finishedAt,
		&run.Documents, &run.Chunks, &success, &errMsg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.IngestRun{}, err
		}
		return domain.IngestRun{}, fmt.Errorf("scanning ingest run: %w", err)
	}

	run.StartedAt = parseTime(startedAt)
	run.FinishedAt = parseTime(finishedAt)
	run.Success = success == 1
	if errMsg.Valid {
		run.Error = errMsg.String
	}

	return run, nil
}
