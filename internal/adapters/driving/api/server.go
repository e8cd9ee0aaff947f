// Package api provides the HTTP API adapter for TubeRAG.
// It mirrors the CLI surface over JSON endpoints so web frontends can
// query the transcript pipeline.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/haldane-labs/tuberag/internal/core/ports/driving"
	"github.com/haldane-labs/tuberag/internal/logger"
)

// Ports aggregates the driving port interfaces the HTTP API serves.
type Ports struct {
	// Query answers questions and retrieves chunks.
	Query driving.QueryService

	// System reports pipeline status and ingested videos.
	System driving.SystemService
}

// Server serves the HTTP API.
type Server struct {
	ports  Ports
	router *mux.Router
}

// NewServer creates an HTTP API server with the given ports.
func NewServer(ports Ports) *Server {
	s := &Server{ports: ports}
	s.router = s.newRouter()
	return s
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server on addr.
// It blocks until the context is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// newRouter creates and configures the HTTP router.
func (s *Server) newRouter() *mux.Router {
	r := mux.NewRouter()

	// Apply middleware
	r.Use(loggingMiddleware)
	r.Use(corsMiddleware)

	// Register routes
	r.HandleFunc("/", s.handleHealth).Methods("GET")
	r.HandleFunc("/query", s.handleQuery).Methods("POST", "OPTIONS")
	r.HandleFunc("/search", s.handleSearch).Methods("POST", "OPTIONS")
	r.HandleFunc("/system-info", s.handleSystemInfo).Methods("GET")
	r.HandleFunc("/videos", s.handleVideos).Methods("GET")

	return r
}

// loggingMiddleware logs request details and latency.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("%s %s - %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// corsMiddleware adds CORS headers for development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
