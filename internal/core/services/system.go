package services

import (
	"context"
	"fmt"

	"github.com/haldane-labs/tuberag/internal/core/domain"
	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
	"github.com/haldane-labs/tuberag/internal/core/ports/driving"
)

// Ensure SystemService implements the interface.
var _ driving.SystemService = (*SystemService)(nil)

// SystemService reports pipeline health and corpus facts.
type SystemService struct {
	embedder driven.EmbeddingService
	llm      driven.LLMService
	store    driven.VectorStore
}

// NewSystemService creates a system service. Nil services are
// tolerated and reported as configuration errors by Info.
func NewSystemService(embedder driven.EmbeddingService, llm driven.LLMService, store driven.VectorStore) *SystemService {
	return &SystemService{
		embedder: embedder,
		llm:      llm,
		store:    store,
	}
}

// Info reports the pipeline status. It never returns an error; a
// misconfigured or unreachable pipeline is reported through the
// Status and Error fields so callers can always render something.
func (s *SystemService) Info(ctx context.Context) domain.SystemInfo {
	info := domain.SystemInfo{Status: domain.SystemStatusError}

	// Model names are reported even when the pipeline is degraded.
	if s.embedder != nil {
		info.EmbeddingModel = s.embedder.ModelName()
	}
	if s.llm != nil {
		info.LLMModel = s.llm.ModelName()
	}

	switch {
	case s.store == nil:
		info.Error = "vector store not configured"
		return info
	case s.embedder == nil:
		info.Error = "embedding provider not configured"
		return info
	case s.llm == nil:
		info.Error = "generation provider not configured"
		return info
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		info.Error = fmt.Sprintf("counting chunks: %v", err)
		return info
	}

	info.DocumentCount = count
	info.Status = domain.SystemStatusReady
	return info
}

// Videos lists the distinct source videos in the store, in ingestion
// order.
func (s *SystemService) Videos(ctx context.Context) ([]domain.SourceRef, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: no vector store", domain.ErrNotConfigured)
	}

	sources, err := s.store.DistinctSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}
	return sources, nil
}
