package driven

import (
	"context"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

// PostProcessor is one stage of the ingest pipeline. A stage either
// creates chunks from the transcript (the chunker receives nil) or
// transforms the chunks handed to it.
type PostProcessor interface {
	// Name identifies the processor in logs and configuration.
	Name() string

	Process(ctx context.Context, transcript *domain.Transcript, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline runs a transcript through all stages in order
// and returns the final chunks.
type PostProcessorPipeline interface {
	Process(ctx context.Context, transcript *domain.Transcript) ([]domain.Chunk, error)
}
