package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/haldane-labs/tuberag/internal/core/domain"
	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
	"github.com/haldane-labs/tuberag/internal/core/ports/driving"
	"github.com/haldane-labs/tuberag/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestOrchestrator = (*IngestService)(nil)

const (
	// embedBatchSize is how many chunks are embedded per provider call.
	embedBatchSize = 10

	// watchDebounce is how long the watcher waits after the last file
	// event before triggering a rebuild. Editors and sync tools touch
	// files in bursts.
	watchDebounce = 2 * time.Second
)

// IngestService coordinates full corpus rebuilds: load transcripts,
// chunk them, embed the chunks, then replace the vector store contents
// in one operation. Runs are exclusive; a second Rebuild while one is
// active returns domain.ErrIngestInProgress.
type IngestService struct {
	source   driven.TranscriptSource
	pipeline driven.PostProcessorPipeline
	embedder driven.EmbeddingService
	store    driven.VectorStore
	history  driven.IngestHistoryStore
	limiter  *rate.Limiter
	debounce time.Duration

	mu sync.Mutex
}

// NewIngestService creates an ingest orchestrator. The history store
// is optional; when nil, runs are not recorded. EmbedRatePerSec from
// settings caps embedding calls per second (zero means unlimited).
func NewIngestService(
	source driven.TranscriptSource,
	pipeline driven.PostProcessorPipeline,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	history driven.IngestHistoryStore,
	settings domain.IngestSettings,
) *IngestService {
	var limiter *rate.Limiter
	if settings.EmbedRatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(settings.EmbedRatePerSec), 1)
	}

	return &IngestService{
		source:   source,
		pipeline: pipeline,
		embedder: embedder,
		store:    store,
		history:  history,
		limiter:  limiter,
		debounce: watchDebounce,
	}
}

// Rebuild runs a full ingestion. The previous corpus stays intact
// until every chunk has an embedding; a failure anywhere before the
// final store replacement leaves the store untouched.
func (s *IngestService) Rebuild(ctx context.Context) (domain.IngestStats, error) {
	if !s.mu.TryLock() {
		return domain.IngestStats{}, domain.ErrIngestInProgress
	}
	defer s.mu.Unlock()

	started := time.Now()
	stats, err := s.rebuild(ctx)
	stats.Duration = time.Since(started)

	s.record(ctx, started, stats, err)

	return stats, err
}

func (s *IngestService) rebuild(ctx context.Context) (domain.IngestStats, error) {
	var stats domain.IngestStats

	logger.Section("Ingestion")

	if err := s.ready(); err != nil {
		return stats, err
	}

	// 1. Load the corpus
	transcripts, err := s.source.Load(ctx)
	if err != nil {
		return stats, fmt.Errorf("loading transcripts: %w", err)
	}
	if len(transcripts) == 0 {
		return stats, domain.ErrNoTranscripts
	}
	stats.Documents = len(transcripts)
	logger.Info("Loaded %d transcripts", len(transcripts))

	// 2. Chunk every transcript
	var chunks []domain.Chunk
	for i := range transcripts {
		transcript := &transcripts[i]
		processed, err := s.pipeline.Process(ctx, transcript)
		if err != nil {
			return stats, fmt.Errorf("chunking %s: %w", transcript.Filename, err)
		}
		logger.Debug("Chunked %s: %d chunks", transcript.Filename, len(processed))
		chunks = append(chunks, processed...)
	}
	if len(chunks) == 0 {
		return stats, fmt.Errorf("%w: transcripts contain no chunkable text", domain.ErrNoTranscripts)
	}
	stats.Chunks = len(chunks)
	logger.Info("Chunked %d transcripts into %d chunks", len(transcripts), len(chunks))

	// 3. Embed all chunks before touching the store
	if err := s.embedChunks(ctx, chunks); err != nil {
		return stats, err
	}

	// 4. Replace the store contents in one operation
	if err := s.store.ReplaceAll(ctx, chunks); err != nil {
		return stats, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	logger.Info("Ingestion complete: %d transcripts, %d chunks", stats.Documents, stats.Chunks)
	return stats, nil
}

// embedChunks fills in chunk embeddings batch by batch, respecting the
// configured rate limit. Any provider failure aborts the whole run.
func (s *IngestService) embedChunks(ctx context.Context, chunks []domain.Chunk) error {
	total := len(chunks)
	for start := 0; start < total; start += embedBatchSize {
		end := min(start+embedBatchSize, total)

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("waiting on embed rate limit: %w", err)
			}
		}

		texts := make([]string, 0, end-start)
		for _, chunk := range chunks[start:end] {
			texts = append(texts, chunk.Text)
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
		}
		if len(vectors) != len(texts) {
			return fmt.Errorf("%w: expected %d embeddings, got %d",
				domain.ErrEmbeddingUnavailable, len(texts), len(vectors))
		}

		for i, vector := range vectors {
			chunks[start+i].Embedding = vector
		}

		logger.Info("Embedded %d/%d chunks", end, total)
	}
	return nil
}

// WatchAndRebuild blocks, rebuilding whenever the corpus changes on
// disk, until ctx is cancelled. File events are debounced so a burst
// of writes triggers a single rebuild.
func (s *IngestService) WatchAndRebuild(ctx context.Context) error {
	changes, err := s.source.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watching transcripts: %w", err)
	}

	logger.Info("Watching transcript corpus for changes")

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case change, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Debug("Transcript change: %s", change.Path)
			if timer == nil {
				timer = time.NewTimer(s.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timerC:
					default:
					}
				}
				timer.Reset(s.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			stats, err := s.Rebuild(ctx)
			if err != nil {
				logger.Error("Watch rebuild failed: %v", err)
				continue
			}
			logger.Info("Rebuilt: %d transcripts, %d chunks in %s",
				stats.Documents, stats.Chunks, stats.Duration.Round(time.Millisecond))
		}
	}
}

// LastRun returns the most recent recorded ingestion run.
func (s *IngestService) LastRun(ctx context.Context) (domain.IngestRun, error) {
	if s.history == nil {
		return domain.IngestRun{}, domain.ErrNotFound
	}
	return s.history.LastRun(ctx)
}

// ready reports whether every service an ingestion run needs is present.
func (s *IngestService) ready() error {
	switch {
	case s.source == nil:
		return fmt.Errorf("%w: no transcript source", domain.ErrNotConfigured)
	case s.pipeline == nil:
		return fmt.Errorf("%w: no processing pipeline", domain.ErrNotConfigured)
	case s.embedder == nil:
		return fmt.Errorf("%w: no embedding provider", domain.ErrNotConfigured)
	case s.store == nil:
		return fmt.Errorf("%w: no vector store", domain.ErrNotConfigured)
	}
	return nil
}

// record writes the run outcome to the history store, best effort.
func (s *IngestService) record(ctx context.Context, started time.Time, stats domain.IngestStats, runErr error) {
	if s.history == nil {
		return
	}

	run := domain.IngestRun{
		ID:         uuid.NewString(),
		StartedAt:  started,
		FinishedAt: time.Now(),
		Documents:  stats.Documents,
		Chunks:     stats.Chunks,
		Success:    runErr == nil,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}

	if err := s.history.RecordRun(ctx, run); err != nil {
		logger.Warn("Recording ingest run: %v", err)
	}
}
