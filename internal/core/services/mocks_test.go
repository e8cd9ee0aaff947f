package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/haldane-labs/tuberag/internal/core/domain"
	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
)

// --- Mock implementations ---
//
// The happy paths run against the real memory adapters; these mocks
// exist to script failures and to observe calls.

// mockEmbedder implements driven.EmbeddingService for testing.
// Vectors are selected by substring match on the input text, falling
// back to the fixed fallback vector.
type mockEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
	embedErr error
	batchErr error

	embedCalls int
	batchSizes []int

	// block, when non-nil, makes EmbedBatch wait until it is closed.
	// started is closed when the first EmbedBatch call arrives.
	block   chan struct{}
	started chan struct{}
	once    sync.Once
}

func (m *mockEmbedder) vectorFor(text string) []float32 {
	for key, vec := range m.vectors {
		if strings.Contains(text, key) {
			return vec
		}
	}
	return m.fallback
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.embedCalls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.started != nil {
		m.once.Do(func() { close(m.started) })
	}
	if m.block != nil {
		<-m.block
	}
	m.batchSizes = append(m.batchSizes, len(texts))
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = m.vectorFor(text)
	}
	return vectors, nil
}

func (m *mockEmbedder) Dimensions() int {
	return len(m.fallback)
}

func (m *mockEmbedder) ModelName() string {
	return "mock-embed"
}

func (m *mockEmbedder) Ping(_ context.Context) error {
	return nil
}

func (m *mockEmbedder) Close() error {
	return nil
}

// mockLLM implements driven.LLMService for testing. It records the
// last Chat call for assertions.
type mockLLM struct {
	response string
	chatErr  error

	chatCalls    int
	lastMessages []driven.ChatMessage
	lastOpts     driven.ChatOptions
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.chatCalls++
	m.lastMessages = messages
	m.lastOpts = opts
	if m.chatErr != nil {
		return "", m.chatErr
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string {
	return "mock-llm"
}

func (m *mockLLM) Ping(_ context.Context) error {
	return nil
}

func (m *mockLLM) Close() error {
	return nil
}

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
	loadErr error
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	prompt, ok := m.prompts[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt: %s", name)
	}
	return prompt, nil
}

func (m *mockPromptStore) Reload() {}

// testPrompts returns a prompt store with minimal answer templates.
func testPrompts() *mockPromptStore {
	return &mockPromptStore{prompts: map[string]string{
		driven.PromptAnswerSystem: "You answer questions about video transcripts.",
		driven.PromptAnswerUser:   "Context:\n%s\n\nQuestion: %s",
	}}
}

// mockSource implements driven.TranscriptSource for testing.
type mockSource struct {
	transcripts []domain.Transcript
	loadErr     error
	watchErr    error
	watchCh     chan driven.TranscriptChange
}

func (m *mockSource) Load(_ context.Context) ([]domain.Transcript, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.transcripts, nil
}

func (m *mockSource) Watch(_ context.Context) (<-chan driven.TranscriptChange, error) {
	if m.watchErr != nil {
		return nil, m.watchErr
	}
	if m.watchCh == nil {
		m.watchCh = make(chan driven.TranscriptChange, 16)
	}
	return m.watchCh, nil
}

func (m *mockSource) Close() error {
	return nil
}

// mockHistory implements driven.IngestHistoryStore for testing.
type mockHistory struct {
	mu        sync.Mutex
	runs      []domain.IngestRun
	recordErr error
}

func (m *mockHistory) RecordRun(_ context.Context, run domain.IngestRun) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return nil
}

func (m *mockHistory) LastRun(_ context.Context) (domain.IngestRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.runs) == 0 {
		return domain.IngestRun{}, domain.ErrNotFound
	}
	return m.runs[len(m.runs)-1], nil
}

func (m *mockHistory) ListRuns(_ context.Context, limit int) ([]domain.IngestRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	runs := make([]domain.IngestRun, 0, limit)
	for i := len(m.runs) - 1; i >= 0 && len(runs) < limit; i-- {
		runs = append(runs, m.runs[i])
	}
	return runs, nil
}

// runCount returns how many runs have been recorded.
func (m *mockHistory) runCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.runs)
}

// mockVectorStore implements driven.VectorStore with scriptable
// failures.
type mockVectorStore struct {
	replaceAllErr error
	queryErr      error
	countErr      error
	distinctErr   error

	replaced []domain.Chunk
}

func (m *mockVectorStore) ReplaceAll(_ context.Context, chunks []domain.Chunk) error {
	if m.replaceAllErr != nil {
		return m.replaceAllErr
	}
	m.replaced = chunks
	return nil
}

func (m *mockVectorStore) Query(_ context.Context, _ []float32, _ int) ([]domain.Match, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return nil, domain.ErrEmptyStore
}

func (m *mockVectorStore) Count(_ context.Context) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.replaced), nil
}

func (m *mockVectorStore) DistinctSources(_ context.Context) ([]domain.SourceRef, error) {
	if m.distinctErr != nil {
		return nil, m.distinctErr
	}
	return nil, nil
}

func (m *mockVectorStore) Close() error {
	return nil
}

// mockAIValidator implements driven.AIConfigValidator for testing.
type mockAIValidator struct {
	embedErr error
	llmErr   error
}

func (m *mockAIValidator) ValidateEmbedding(_ *domain.EmbeddingSettings) error {
	return m.embedErr
}

func (m *mockAIValidator) ValidateLLM(_ *domain.LLMSettings) error {
	return m.llmErr
}
