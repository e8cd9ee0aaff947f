package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Resources use a custom tuberag:// URI scheme.
const (
	videosURI     = "tuberag://videos"
	systemInfoURI = "tuberag://system-info"
)

func (s *Server) registerResources() {
	s.inner.AddResource(&mcp.Resource{
		URI:         videosURI,
		Name:        "videos",
		Description: "List of all ingested videos",
		MIMEType:    "application/json",
	}, s.handleVideosResource)

	s.inner.AddResource(&mcp.Resource{
		URI:         systemInfoURI,
		Name:        "system-info",
		Description: "Pipeline readiness, chunk count and configured models",
		MIMEType:    "application/json",
	}, s.handleSystemInfoResource)
}

// jsonResource marshals v into a single JSON resource payload.
func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// videoEntry is one element of the videos resource.
type videoEntry struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// handleVideosResource lists the ingested videos. Without a system service
// the list is simply empty.
func (s *Server) handleVideosResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	entries := []videoEntry{}
	if s.ports.System != nil {
		videos, err := s.ports.System.Videos(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing videos: %w", err)
		}
		for _, v := range videos {
			entries = append(entries, videoEntry{
				Title:    v.VideoTitle,
				URL:      v.VideoURL,
				Filename: v.Filename,
			})
		}
	}
	return jsonResource(req.Params.URI, entries)
}

// statusEntry is the wire shape of the system-info resource.
type statusEntry struct {
	Status         string `json:"status"`
	DocumentCount  int    `json:"document_count"`
	EmbeddingModel string `json:"embedding_model,omitempty"`
	LLMModel       string `json:"llm_model,omitempty"`
	Error          string `json:"error,omitempty"`
}

func (s *Server) handleSystemInfoResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if s.ports.System == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	info := s.ports.System.Info(ctx)
	return jsonResource(req.Params.URI, statusEntry{
		Status:         info.Status,
		DocumentCount:  info.DocumentCount,
		EmbeddingModel: info.EmbeddingModel,
		LLMModel:       info.LLMModel,
		Error:          info.Error,
	})
}
