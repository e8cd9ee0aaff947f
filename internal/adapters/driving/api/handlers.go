package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

// previewLimit caps chunk content length in search responses.
const previewLimit = 200

type queryRequest struct {
	Query    string `json:"query"`
	NResults int    `json:"n_results"`
}

type sourceInfo struct {
	VideoTitle string `json:"video_title"`
	VideoURL   string `json:"video_url"`
	Filename   string `json:"filename"`
}

type queryResponse struct {
	Response string       `json:"response"`
	Sources  []sourceInfo `json:"sources"`
	Query    string       `json:"query"`
	Status   string       `json:"status"`
}

type searchResult struct {
	Content         string  `json:"content"`
	VideoTitle      string  `json:"video_title"`
	VideoURL        string  `json:"video_url"`
	Filename        string  `json:"filename"`
	SimilarityScore float64 `json:"similarity_score"`
}

type searchResponse struct {
	Query        string         `json:"query"`
	Results      []searchResult `json:"results"`
	TotalResults int            `json:"total_results"`
}

type systemInfoResponse struct {
	Status         string `json:"status"`
	DocumentCount  int    `json:"document_count"`
	EmbeddingModel string `json:"embedding_model,omitempty"`
	LLMModel       string `json:"llm_model,omitempty"`
	Error          string `json:"error,omitempty"`
}

type videoInfo struct {
	VideoTitle string `json:"video_title"`
	VideoURL   string `json:"video_url"`
	Filename   string `json:"filename"`
}

type videosResponse struct {
	Videos     []videoInfo `json:"videos"`
	TotalCount int         `json:"total_count"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleHealth handles GET / requests.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := "healthy"
	if s.ports.Query == nil {
		status = "unhealthy"
	}
	sendJSON(w, http.StatusOK, healthResponse{
		Status:  status,
		Service: "YouTube RAG API",
	})
}

// handleQuery handles POST /query requests.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if s.ports.Query == nil {
		sendJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error: "pipeline not initialized; check server logs",
		})
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "Query cannot be empty"})
		return
	}

	answer, err := s.ports.Query.Ask(r.Context(), req.Query, req.NResults)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidQuery):
			sendJSON(w, http.StatusBadRequest, errorResponse{Error: "Query cannot be empty"})
			return
		case errors.Is(err, domain.ErrNotConfigured):
			sendJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
			return
		}
		// Other pipeline failures come back as a well-formed answer
		// with an error status; report that in the body.
	}

	sources := make([]sourceInfo, len(answer.Sources))
	for i, src := range answer.Sources {
		sources[i] = sourceInfo{
			VideoTitle: src.VideoTitle,
			VideoURL:   src.VideoURL,
			Filename:   src.Filename,
		}
	}

	sendJSON(w, http.StatusOK, queryResponse{
		Response: answer.Response,
		Sources:  sources,
		Query:    answer.Query,
		Status:   string(answer.Status),
	})
}

// handleSearch handles POST /search requests.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.ports.Query == nil {
		sendJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error: "pipeline not initialized; check server logs",
		})
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "Query cannot be empty"})
		return
	}

	matches, err := s.ports.Query.Search(r.Context(), req.Query, req.NResults)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyStore):
			// An empty corpus is not a search failure.
			matches = nil
		case errors.Is(err, domain.ErrInvalidQuery):
			sendJSON(w, http.StatusBadRequest, errorResponse{Error: "Query cannot be empty"})
			return
		case errors.Is(err, domain.ErrNotConfigured):
			sendJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
			return
		default:
			sendJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
	}

	results := make([]searchResult, len(matches))
	for i := range matches {
		results[i] = searchResult{
			Content:         truncate(matches[i].Text, previewLimit),
			VideoTitle:      matches[i].Meta.VideoTitle,
			VideoURL:        matches[i].Meta.VideoURL,
			Filename:        matches[i].Meta.Filename,
			SimilarityScore: matches[i].Similarity,
		}
	}

	sendJSON(w, http.StatusOK, searchResponse{
		Query:        req.Query,
		Results:      results,
		TotalResults: len(results),
	})
}

// handleSystemInfo handles GET /system-info requests.
func (s *Server) handleSystemInfo(w http.ResponseWriter, r *http.Request) {
	if s.ports.System == nil {
		sendJSON(w, http.StatusOK, systemInfoResponse{
			Status: domain.SystemStatusError,
			Error:  "pipeline not initialized",
		})
		return
	}

	info := s.ports.System.Info(r.Context())
	sendJSON(w, http.StatusOK, systemInfoResponse{
		Status:         info.Status,
		DocumentCount:  info.DocumentCount,
		EmbeddingModel: info.EmbeddingModel,
		LLMModel:       info.LLMModel,
		Error:          info.Error,
	})
}

// handleVideos handles GET /videos requests.
func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	if s.ports.System == nil {
		sendJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error: "pipeline not initialized",
		})
		return
	}

	videos, err := s.ports.System.Videos(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			sendJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
			return
		}
		sendJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	infos := make([]videoInfo, len(videos))
	for i, v := range videos {
		infos[i] = videoInfo{
			VideoTitle: v.VideoTitle,
			VideoURL:   v.VideoURL,
			Filename:   v.Filename,
		}
	}

	sendJSON(w, http.StatusOK, videosResponse{
		Videos:     infos,
		TotalCount: len(infos),
	})
}

// truncate shortens text to limit runes, appending "..." when cut.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

// sendJSON sends a JSON response with the given status code.
func sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck // response already committed
}
