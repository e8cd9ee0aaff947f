package mcp

import (
	"context"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

// stubQuery records the last request it saw and returns canned data.
type stubQuery struct {
	answer  domain.Answer
	matches []domain.Match
	err     error

	question string
	topK     int
	query    string
	limit    int
}

func (s *stubQuery) Ask(_ context.Context, question string, topK int) (domain.Answer, error) {
	s.question, s.topK = question, topK
	return s.answer, s.err
}

func (s *stubQuery) Search(_ context.Context, query string, limit int) ([]domain.Match, error) {
	s.query, s.limit = query, limit
	return s.matches, s.err
}

// stubSystem returns canned pipeline state.
type stubSystem struct {
	info   domain.SystemInfo
	videos []domain.SourceRef
	err    error
}

func (s *stubSystem) Info(context.Context) domain.SystemInfo { return s.info }

func (s *stubSystem) Videos(context.Context) ([]domain.SourceRef, error) {
	return s.videos, s.err
}
