package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

func TestHandleAsk(t *testing.T) {
	ctx := context.Background()

	query := &stubQuery{
		answer: domain.Answer{
			Response: "Cats purr when they are content.",
			Sources: []domain.SourceRef{{
				VideoTitle: "All About Cats",
				VideoURL:   "https://www.youtube.com/watch?v=cats123",
				Filename:   "cats.txt",
			}},
			Query:  "why do cats purr",
			Status: domain.StatusSuccess,
		},
	}
	server := newTestServer(t, &Ports{Query: query})

	_, out, err := server.handleAsk(ctx, nil, AskInput{Question: "why do cats purr", TopK: 5})
	require.NoError(t, err)

	assert.Equal(t, "why do cats purr", query.question)
	assert.Equal(t, 5, query.topK)
	assert.Equal(t, "Cats purr when they are content.", out.Answer)
	assert.Equal(t, "success", out.Status)
	require.Len(t, out.Sources, 1)
	assert.Equal(t, SourceOutput{
		Title:    "All About Cats",
		URL:      "https://www.youtube.com/watch?v=cats123",
		Filename: "cats.txt",
	}, out.Sources[0])
}

func TestHandleAsk_DegradedGenerationStillSucceeds(t *testing.T) {
	// Generation failures surface inside the answer text, not as tool
	// errors, so the assistant still sees the sources.
	query := &stubQuery{
		answer: domain.Answer{
			Response: "Error generating response: rate limited",
			Sources:  []domain.SourceRef{{VideoTitle: "All About Cats"}},
			Status:   domain.StatusSuccess,
		},
	}
	server := newTestServer(t, &Ports{Query: query})

	_, out, err := server.handleAsk(context.Background(), nil, AskInput{Question: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "success", out.Status)
	assert.Contains(t, out.Answer, "Error generating response")
	assert.Len(t, out.Sources, 1)
}

func TestHandleAsk_PipelineFailure(t *testing.T) {
	server := newTestServer(t, &Ports{Query: &stubQuery{err: domain.ErrEmptyStore}})

	_, _, err := server.handleAsk(context.Background(), nil, AskInput{Question: "anything"})
	assert.ErrorIs(t, err, domain.ErrEmptyStore)
}

func TestHandleSearch(t *testing.T) {
	query := &stubQuery{
		matches: []domain.Match{{
			ID:   "cats-0",
			Text: "Cats purr and chase mice around the garden.",
			Meta: domain.ChunkMeta{
				VideoTitle: "All About Cats",
				VideoURL:   "https://www.youtube.com/watch?v=cats123",
				Filename:   "cats.txt",
			},
			Similarity: 0.95,
		}},
	}
	server := newTestServer(t, &Ports{Query: query})

	_, out, err := server.handleSearch(context.Background(), nil, SearchInput{Query: "cats", Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, "cats", query.query)
	assert.Equal(t, 10, query.limit)
	assert.Equal(t, 1, out.Count)
	require.Len(t, out.Results, 1)
	assert.Equal(t, SearchResultOutput{
		Content:    "Cats purr and chase mice around the garden.",
		VideoTitle: "All About Cats",
		VideoURL:   "https://www.youtube.com/watch?v=cats123",
		Filename:   "cats.txt",
		Similarity: 0.95,
	}, out.Results[0])
}

func TestHandleSearch_NoMatches(t *testing.T) {
	server := newTestServer(t, &Ports{Query: &stubQuery{}})

	_, out, err := server.handleSearch(context.Background(), nil, SearchInput{Query: "anything"})
	require.NoError(t, err)
	assert.Zero(t, out.Count)
	assert.Empty(t, out.Results)
}

func TestHandleSearch_Failure(t *testing.T) {
	server := newTestServer(t, &Ports{Query: &stubQuery{err: errors.New("store offline")}})

	_, _, err := server.handleSearch(context.Background(), nil, SearchInput{Query: "anything"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store offline")
}
