package driven

import (
	"context"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

// IngestHistoryStore records full-rebuild ingestion runs.
// This is an optional service - when nil, run history is not kept.
type IngestHistoryStore interface {
	// RecordRun persists one completed ingestion run.
	RecordRun(ctx context.Context, run domain.IngestRun) error

	// LastRun returns the most recent run, or domain.ErrNotFound
	// when no run has been recorded.
	LastRun(ctx context.Context) (domain.IngestRun, error)

	// ListRuns returns up to limit runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.IngestRun, error)
}
