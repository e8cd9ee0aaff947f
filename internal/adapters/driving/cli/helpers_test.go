package cli

import (
	"context"
	"testing"
	"time"

	"github.com/haldane-labs/tuberag/internal/core/domain"
	"github.com/haldane-labs/tuberag/internal/core/ports/driving"
)

// Mock driving services for command tests.

type mockQueryService struct {
	answer  domain.Answer
	matches []domain.Match
	err     error
}

func (m *mockQueryService) Ask(_ context.Context, _ string, _ int) (domain.Answer, error) {
	return m.answer, m.err
}

func (m *mockQueryService) Search(_ context.Context, _ string, _ int) ([]domain.Match, error) {
	return m.matches, m.err
}

type mockIngestService struct {
	stats    domain.IngestStats
	run      domain.IngestRun
	err      error
	watchErr error
	lastErr  error
}

func (m *mockIngestService) Rebuild(_ context.Context) (domain.IngestStats, error) {
	return m.stats, m.err
}

func (m *mockIngestService) WatchAndRebuild(_ context.Context) error {
	return m.watchErr
}

func (m *mockIngestService) LastRun(_ context.Context) (domain.IngestRun, error) {
	return m.run, m.lastErr
}

type mockSystemService struct {
	info   domain.SystemInfo
	videos []domain.SourceRef
	err    error
}

func (m *mockSystemService) Info(_ context.Context) domain.SystemInfo {
	return m.info
}

func (m *mockSystemService) Videos(_ context.Context) ([]domain.SourceRef, error) {
	return m.videos, m.err
}

type mockSettingsService struct {
	settings    *domain.AppSettings
	err         error
	validateErr error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.settings != nil {
		return m.settings, m.err
	}
	defaults := domain.DefaultAppSettings()
	return &defaults, m.err
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error { return m.err }

func (m *mockSettingsService) SetEmbeddingProvider(_ domain.AIProvider, _, _ string) error {
	return m.err
}

func (m *mockSettingsService) SetLLMProvider(_ domain.AIProvider, _, _ string) error {
	return m.err
}

func (m *mockSettingsService) SetStoreBackend(_ domain.StoreBackend) error { return m.err }

func (m *mockSettingsService) Validate() error {
	if m.validateErr != nil {
		return m.validateErr
	}
	return m.err
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) ValidateEmbeddingConfig() error { return m.err }

func (m *mockSettingsService) ValidateLLMConfig() error { return m.err }

// swapQueryService replaces the package query service for one test.
func swapQueryService(t *testing.T, svc driving.QueryService) {
	t.Helper()
	old := queryService
	queryService = svc
	t.Cleanup(func() { queryService = old })
}

// setupTestServices injects happy-path mocks into the package-level
// service variables and returns a cleanup restoring the originals.
func setupTestServices() func() {
	oldIngest := ingestService
	oldQuery := queryService
	oldSettings := settingsService
	oldSystem := systemService

	started := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	ingestService = &mockIngestService{
		stats: domain.IngestStats{Documents: 2, Chunks: 4, Duration: 120 * time.Millisecond},
		run: domain.IngestRun{
			ID:         "run-1",
			StartedAt:  started,
			FinishedAt: started.Add(2 * time.Second),
			Documents:  2,
			Chunks:     4,
			Success:    true,
		},
	}
	queryService = &mockQueryService{
		answer: domain.Answer{
			Response: "Cats purr when they are content.",
			Sources: []domain.SourceRef{
				{
					VideoTitle: "All About Cats",
					VideoURL:   "https://www.youtube.com/watch?v=cats123",
					Filename:   "cats.txt",
				},
			},
			Query:  "why do cats purr",
			Status: domain.StatusSuccess,
		},
		matches: []domain.Match{
			{
				ID:   "cats-0",
				Text: "Cats purr and chase mice around the garden.",
				Meta: domain.ChunkMeta{
					VideoTitle: "All About Cats",
					VideoURL:   "https://www.youtube.com/watch?v=cats123",
					Filename:   "cats.txt",
				},
				Similarity: 0.92,
			},
		},
	}
	settingsService = &mockSettingsService{}
	systemService = &mockSystemService{
		info: domain.SystemInfo{
			Status:         domain.SystemStatusReady,
			DocumentCount:  42,
			EmbeddingModel: "nomic-embed-text",
			LLMModel:       "llama-3.1-8b-instant",
		},
		videos: []domain.SourceRef{
			{
				VideoTitle: "All About Cats",
				VideoURL:   "https://www.youtube.com/watch?v=cats123",
				Filename:   "cats.txt",
			},
			{
				VideoTitle: "All About Dogs",
				VideoURL:   "https://www.youtube.com/watch?v=dogs456",
				Filename:   "dogs.txt",
			},
		},
	}

	return func() {
		ingestService = oldIngest
		queryService = oldQuery
		settingsService = oldSettings
		systemService = oldSystem
	}
}
