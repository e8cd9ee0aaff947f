package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is what the ask tool accepts.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the ingested transcripts"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"number of chunks to retrieve (0 = configured default)"`
}

// AskOutput is what the ask tool returns.
type AskOutput struct {
	Answer  string         `json:"answer"`
	Sources []SourceOutput `json:"sources"`
	Status  string         `json:"status"`
}

// SourceOutput identifies a video an answer drew from.
type SourceOutput struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// SearchInput is what the search tool accepts.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to find transcript chunks"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (0 = configured default)"`
}

// SearchOutput is what the search tool returns.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single retrieved chunk.
type SearchResultOutput struct {
	Content    string  `json:"content"`
	VideoTitle string  `json:"video_title"`
	VideoURL   string  `json:"video_url"`
	Filename   string  `json:"filename"`
	Similarity float64 `json:"similarity"`
}

// registerTools exposes ask and search over the protocol.
func (s *Server) registerTools() {
	mcp.AddTool(s.inner, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using the ingested YouTube transcripts",
	}, s.handleAsk)

	mcp.AddTool(s.inner, &mcp.Tool{
		Name:        "search",
		Description: "Retrieve transcript chunks similar to a query, without generating an answer",
	}, s.handleSearch)
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Query.Ask(ctx, input.Question, input.TopK)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:  answer.Response,
		Sources: make([]SourceOutput, len(answer.Sources)),
		Status:  string(answer.Status),
	}

	for i, src := range answer.Sources {
		output.Sources[i] = SourceOutput{
			Title:    src.VideoTitle,
			URL:      src.VideoURL,
			Filename: src.Filename,
		}
	}

	return nil, output, nil
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	matches, err := s.ports.Query.Search(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(matches)),
		Count:   len(matches),
	}

	for i := range matches {
		output.Results[i] = SearchResultOutput{
			Content:    matches[i].Text,
			VideoTitle: matches[i].Meta.VideoTitle,
			VideoURL:   matches[i].Meta.VideoURL,
			Filename:   matches[i].Meta.Filename,
			Similarity: matches[i].Similarity,
		}
	}

	return nil, output, nil
}
