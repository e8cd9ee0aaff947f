package driven

import (
	"context"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

// TranscriptSource loads transcript documents from a corpus location.
// The only implementation reads a local directory of transcript files;
// the subtitle extraction that produces those files is external.
type TranscriptSource interface {
	// Load reads and parses every transcript file in the corpus.
	// Files with missing header lines are still loaded with empty
	// title/URL and the whole file as body.
	Load(ctx context.Context) ([]domain.Transcript, error)

	// Watch emits an event whenever the corpus changes on disk.
	// The channel closes when ctx is cancelled.
	Watch(ctx context.Context) (<-chan TranscriptChange, error)

	// Close releases resources.
	Close() error
}

// TranscriptChange signals that a transcript file was added, modified
// or removed. The pipeline reacts with a full rebuild, so the event
// carries only the path for logging.
type TranscriptChange struct {
	// Path is the file that changed.
	Path string
}
