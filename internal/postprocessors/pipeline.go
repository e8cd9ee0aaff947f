// Package postprocessors turns fetched transcripts into storable chunks by
// running them through an ordered list of processing stages.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/haldane-labs/tuberag/internal/core/domain"
	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
)

// Pipeline runs a transcript through its stages in order. The first stage
// usually cuts the raw text into chunks and later stages refine them.
type Pipeline struct {
	stages []driven.PostProcessor
}

var _ driven.PostProcessorPipeline = (*Pipeline)(nil)

// NewPipeline assembles a pipeline from the given stages.
func NewPipeline(stages ...driven.PostProcessor) *Pipeline {
	return &Pipeline{stages: stages}
}

// Process feeds the transcript through every stage. Each stage receives the
// chunks the previous one produced, starting from nil.
func (p *Pipeline) Process(ctx context.Context, transcript *domain.Transcript) ([]domain.Chunk, error) {
	if transcript == nil {
		return nil, fmt.Errorf("cannot process nil transcript")
	}

	var chunks []domain.Chunk
	for i, stage := range p.stages {
		out, err := stage.Process(ctx, transcript, chunks)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, stage.Name(), err)
		}
		chunks = out
	}
	return chunks, nil
}

// Add appends a stage to the end of the pipeline.
func (p *Pipeline) Add(stage driven.PostProcessor) {
	p.stages = append(p.stages, stage)
}

// Len reports how many stages the pipeline holds.
func (p *Pipeline) Len() int { return len(p.stages) }
