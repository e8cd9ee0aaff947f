package api

import (
	"context"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
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

// mockSystemService is a mock implementation of driving.SystemService.
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
