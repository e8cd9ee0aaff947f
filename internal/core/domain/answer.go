package domain

// Match is a single retrieval hit, produced per query and never persisted.
type Match struct {
	// ID is the stored chunk's identifier.
	ID string

	// Text is the chunk content.
	Text string

	// Meta is the chunk's source metadata.
	Meta ChunkMeta

	// Distance is the raw distance reported by the vector store,
	// ascending order means more similar.
	Distance float64

	// Similarity is 1 - Distance, valid for normalised cosine
	// distance in [0,1]. Set by the retriever, not the store.
	Similarity float64
}

// AnswerStatus distinguishes success from degraded or failed outcomes.
type AnswerStatus string

// Answer statuses.
const (
	// StatusSuccess means the pipeline ran to completion. A generation
	// failure still reports success with the error embedded in the
	// response text.
	StatusSuccess AnswerStatus = "success"

	// StatusError means the pipeline failed before generation.
	StatusError AnswerStatus = "error"
)

// Answer is the response object returned for every query.
// Every pipeline call produces a well-formed Answer; faults never
// escape the pipeline boundary.
type Answer struct {
	// Response is the generated answer text, or a human-readable
	// error description when Status is StatusError.
	Response string

	// Sources lists the distinct videos the answer drew from,
	// first-seen order. Empty on failure.
	Sources []SourceRef

	// Query echoes the original question.
	Query string

	// Status is StatusSuccess or StatusError.
	Status AnswerStatus
}

// QueryState tracks the pipeline's progress through a single query.
// Transitions are strictly sequential; StateFailed is reachable from
// every state after StateIdle.
type QueryState string

// Query pipeline states.
const (
	StateIdle              QueryState = "idle"
	StateEmbeddingQuery    QueryState = "embedding_query"
	StateRetrieving        QueryState = "retrieving"
	StateAssemblingContext QueryState = "assembling_context"
	StateGenerating        QueryState = "generating"
	StateDone              QueryState = "done"
	StateFailed            QueryState = "failed"
)

// String returns the string representation.
func (s QueryState) String() string {
	return string(s)
}

// SystemInfo reports pipeline readiness and configuration.
type SystemInfo struct {
	// Status is "ready" when the pipeline can serve queries,
	// "error" otherwise.
	Status string

	// DocumentCount is the number of stored chunks.
	DocumentCount int

	// EmbeddingModel is the configured embedding model name.
	EmbeddingModel string

	// LLMModel is the configured generation model name.
	LLMModel string

	// Error describes why the system is not ready. Empty when ready.
	Error string
}

// System statuses reported by SystemInfo.
const (
	SystemStatusReady = "ready"
	SystemStatusError = "error"
)
