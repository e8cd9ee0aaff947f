package postprocessors

import (
	"fmt"

	"github.com/haldane-labs/tuberag/internal/core/domain"
	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
	"github.com/haldane-labs/tuberag/internal/postprocessors/chunker"
)

// RegisterDefaults adds every built-in processor to the registry.
func RegisterDefaults(r *Registry) {
	r.Register("chunker", buildChunker)
}

// DefaultPipeline builds the standard ingestion pipeline from the user's
// ingest settings. Today that is a single chunker stage.
func DefaultPipeline(ingest domain.IngestSettings) (*Pipeline, error) {
	reg := NewRegistry()
	RegisterDefaults(reg)

	stage, err := reg.Build("chunker", map[string]any{
		"chunk_size": ingest.ChunkSize,
		"overlap":    ingest.ChunkOverlap,
	})
	if err != nil {
		return nil, fmt.Errorf("building chunker: %w", err)
	}

	return NewPipeline(stage), nil
}

// buildChunker constructs the chunker stage. Recognised config keys are
// chunk_size (characters per chunk) and overlap (characters shared between
// neighbouring chunks); anything missing falls back to the chunker defaults.
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option
	if size, ok := intSetting(cfg, "chunk_size"); ok && size > 0 {
		opts = append(opts, chunker.WithChunkSize(size))
	}
	if overlap, ok := intSetting(cfg, "overlap"); ok && overlap >= 0 {
		opts = append(opts, chunker.WithOverlap(overlap))
	}
	return chunker.New(opts...), nil
}

// intSetting reads an integer out of a config map. TOML and JSON decoders
// disagree on number types, so int, int64 and float64 are all accepted.
func intSetting(cfg map[string]any, key string) (int, bool) {
	switch v := cfg[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}
