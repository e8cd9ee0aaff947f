// Package chunker provides a separator-aware text chunking processor.
package chunker

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

// Default chunk geometry, in characters.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// separators in priority order. The chunker cuts at the last
// occurrence of the highest-priority separator inside the size window,
// falling back to a hard split when none occurs.
var separators = []string{"\n\n", "\n", " "}

// Processor is the pipeline stage that splits transcript text into
// overlapping chunks.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option adjusts the chunk geometry.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters. Non-positive sizes are
// ignored.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters. Negative
// overlaps are ignored.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options. An overlap at
// or above the chunk size would stall progress; it is replaced with a
// quarter of the chunk size.
func New(opts ...Option) *Processor {
	p := &Processor{chunkSize: DefaultChunkSize, overlap: DefaultChunkOverlap}
	for _, opt := range opts {
		opt(p)
	}
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}
	return p
}

// Name identifies the stage in pipeline errors and registry lookups.
func (p *Processor) Name() string { return "chunker" }

// Process splits the transcript text into chunks.
// Input chunks are ignored; this processor creates new chunks from the
// transcript text. Each chunk after the first begins overlap characters
// before the previous chunk's end, measured in the original text, so
// context crosses chunk boundaries. Chunking the same text with the
// same size and overlap always yields the same boundaries.
func (p *Processor) Process(_ context.Context, transcript *domain.Transcript, _ []domain.Chunk) ([]domain.Chunk, error) {
	if transcript.Text == "" {
		return nil, nil
	}

	text := transcript.Text
	n := len(text)
	meta := transcript.Meta()

	estimatedChunks := (n / (p.chunkSize - p.overlap)) + 1
	chunks := make([]domain.Chunk, 0, estimatedChunks)

	position := 0
	start := 0

	for start < n {
		end := p.cut(text, start)

		chunks = append(chunks, domain.Chunk{
			ID:       uuid.New().String(),
			Text:     text[start:end],
			Start:    start,
			End:      end,
			Position: position,
			Meta:     meta,
		})
		position++

		if end >= n {
			break
		}

		// Step back by the overlap, staying on a rune boundary.
		next := end - p.overlap
		for next > start && !utf8.RuneStart(text[next]) {
			next--
		}
		// A short chunk can make the overlap swallow all progress;
		// continue from the chunk end instead.
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks, nil
}

// cut returns the end offset of the chunk starting at start.
// The document tail shorter than the chunk size becomes one final
// chunk. Otherwise the cut lands after the last paragraph break in the
// window, else the last line break, else the last space, else hard at
// the size limit. The separator stays with the left chunk so that
// offsets remain contiguous.
func (p *Processor) cut(text string, start int) int {
	n := len(text)
	if n-start <= p.chunkSize {
		return n
	}

	limit := start + p.chunkSize
	window := text[start:limit]

	for _, sep := range separators {
		if idx := strings.LastIndex(window, sep); idx > 0 {
			return start + idx + len(sep)
		}
	}

	// No usable separator: hard split at the size limit, backing up to
	// a rune boundary. A single rune wider than the chunk size is kept
	// whole.
	for limit > start && !utf8.RuneStart(text[limit]) {
		limit--
	}
	if limit == start {
		limit = start + 1
		for limit < n && !utf8.RuneStart(text[limit]) {
			limit++
		}
	}
	return limit
}
