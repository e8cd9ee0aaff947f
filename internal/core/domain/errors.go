package domain

import "errors"

// Sentinel errors the pipeline branches on. Adapters wrap their
// infrastructure failures around these so callers can match with
// errors.Is without knowing the backend.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotConfigured indicates the pipeline is missing a required
	// service (store, embedding provider, or generator credentials).
	// Serving queries is disabled; the process stays alive and
	// reports unhealthy.
	ErrNotConfigured = errors.New("pipeline not configured")

	// ErrInvalidQuery indicates an empty or whitespace-only query.
	// Surfaced before any provider is contacted.
	ErrInvalidQuery = errors.New("query must not be empty")

	// ErrEmbeddingUnavailable indicates the embedding provider is
	// unreachable or returned a malformed response.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the generation provider is
	// unreachable or rejected its configuration. Detected when
	// validating providers; at query time a failed generation call
	// degrades into the answer text instead of returning an error.
	ErrLLMUnavailable = errors.New("llm service unavailable")

	// ErrStoreUnavailable indicates the vector store cannot be reached
	// or is not initialised.
	ErrStoreUnavailable = errors.New("vector store unavailable")

	// ErrEmptyStore indicates a query against a store with no entries.
	ErrEmptyStore = errors.New("vector store is empty")

	// ErrDimensionMismatch indicates a vector whose dimensionality
	// differs from the store's fixed dimensionality.
	ErrDimensionMismatch = errors.New("embedding dimensions mismatch")

	// ErrNoTranscripts indicates ingestion found zero transcript files.
	// The store is left untouched.
	ErrNoTranscripts = errors.New("no transcripts found")

	// ErrIngestInProgress indicates an ingestion run is already active.
	ErrIngestInProgress = errors.New("ingestion already running")

	// ErrUnsupportedProvider indicates an unknown provider or store
	// backend name in configuration.
	ErrUnsupportedProvider = errors.New("unsupported provider")
)
