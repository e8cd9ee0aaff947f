package driving

import (
	"context"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

// IngestOrchestrator coordinates transcript ingestion into the vector store.
type IngestOrchestrator interface {
	// Rebuild runs a full ingestion: load all transcripts, chunk,
	// embed, then replace the store contents. There is no incremental
	// mode; every run rebuilds the whole collection. Returns
	// domain.ErrNoTranscripts when the corpus is empty (store
	// untouched) and domain.ErrIngestInProgress when a run is already
	// active.
	Rebuild(ctx context.Context) (domain.IngestStats, error)

	// WatchAndRebuild blocks, rebuilding whenever the transcript
	// corpus changes on disk, until ctx is cancelled. Rebuilds are
	// serialised and debounced.
	WatchAndRebuild(ctx context.Context) error

	// LastRun returns the most recent recorded ingestion run, or
	// domain.ErrNotFound when history is unavailable or empty.
	LastRun(ctx context.Context) (domain.IngestRun, error)
}
