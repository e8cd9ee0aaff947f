package driving

import (
	"context"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

// QueryService answers questions against the ingested transcript corpus.
type QueryService interface {
	// Ask runs the full pipeline: embed the query, retrieve the k
	// nearest chunks, assemble context, generate an answer.
	// Every call returns a well-formed Answer; failures are reported
	// through its Status and Response fields, never as a panic.
	// The returned error mirrors Answer.Status for callers that want
	// to branch without inspecting the struct.
	Ask(ctx context.Context, query string, k int) (domain.Answer, error)

	// Search performs retrieval only: embed the query and return the
	// k nearest chunks with similarity scores, most similar first.
	Search(ctx context.Context, query string, k int) ([]domain.Match, error)
}
