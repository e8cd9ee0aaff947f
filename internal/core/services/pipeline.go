package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/haldane-labs/tuberag/internal/core/domain"
	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
	"github.com/haldane-labs/tuberag/internal/core/ports/driving"
	"github.com/haldane-labs/tuberag/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.QueryService = (*PipelineService)(nil)

// Generation parameters. The near-zero temperature keeps answers close
// to the retrieved transcripts.
const (
	generationMaxTokens   = 1000
	generationTemperature = 0.1
)

// PipelineService runs the retrieval-augmented query pipeline:
// embed the query, retrieve the nearest chunks, assemble a context,
// and generate a grounded answer with source attributions.
//
// Every query moves through a fixed sequence of states. A failure in
// any state before generation produces an error answer; a failure
// during generation degrades into a visible message inside an
// otherwise successful answer, because at that point the retrieved
// sources are still worth returning.
type PipelineService struct {
	retriever *Retriever
	embedder  driven.EmbeddingService
	store     driven.VectorStore
	llm       driven.LLMService
	prompts   driven.PromptStore
	query     domain.QuerySettings
}

// NewPipelineService creates a query pipeline. Nil services are
// tolerated at construction; Ask and Search report ErrNotConfigured
// when a required service is missing.
func NewPipelineService(
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	llm driven.LLMService,
	prompts driven.PromptStore,
	query domain.QuerySettings,
) *PipelineService {
	s := &PipelineService{
		embedder: embedder,
		store:    store,
		llm:      llm,
		prompts:  prompts,
		query:    query,
	}
	if embedder != nil && store != nil {
		s.retriever = NewRetriever(embedder, store)
	}
	return s
}

// Ask answers a question using the ingested transcripts.
//
// The returned Answer is always well-formed: the query is echoed back,
// sources is never nil, and the response text carries either the
// generated answer or a readable error description. The returned error
// mirrors Answer.Status.
func (s *PipelineService) Ask(ctx context.Context, query string, k int) (answer domain.Answer, err error) {
	answer = domain.Answer{
		Query:   query,
		Sources: []domain.SourceRef{},
		Status:  domain.StatusError,
	}

	// A fault below must still yield a well-formed answer.
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Query pipeline panic: %v", r)
			err = fmt.Errorf("internal error: %v", r)
			answer.Status = domain.StatusError
			answer.Sources = []domain.SourceRef{}
			answer.Response = "Error processing your query: " + err.Error()
		}
	}()

	logger.Section("Query Pipeline")
	logger.Debug("Query: %q", query)

	state := domain.StateIdle
	step := func(next domain.QueryState) {
		logger.Debug("State: %s -> %s", state, next)
		state = next
	}

	// Validation happens before the pipeline starts; an empty query
	// never reaches a provider.
	if strings.TrimSpace(query) == "" {
		answer.Response = "Error processing your query: " + domain.ErrInvalidQuery.Error()
		return answer, domain.ErrInvalidQuery
	}

	if readyErr := s.ready(); readyErr != nil {
		return s.fail(answer, state, readyErr)
	}

	k = s.query.Clamp(k)
	logger.Debug("Retrieving up to %d chunks", k)

	// 1. Embed the query
	step(domain.StateEmbeddingQuery)
	vector, embedErr := s.retriever.EmbedQuery(ctx, query)
	if embedErr != nil {
		return s.fail(answer, state, embedErr)
	}

	// 2. Retrieve the nearest chunks
	step(domain.StateRetrieving)
	matches, queryErr := s.retriever.Nearest(ctx, vector, k)
	if queryErr != nil {
		return s.fail(answer, state, queryErr)
	}

	// 3. Assemble the generation context
	step(domain.StateAssemblingContext)
	contextText, sources := AssembleContext(matches)
	logger.Debug("Context: %d characters from %d sources", len(contextText), len(sources))

	// 4. Generate the answer
	step(domain.StateGenerating)
	response, genErr := s.generate(ctx, contextText, query)
	if genErr != nil {
		// Generation failures degrade: the caller still gets the
		// retrieved sources and a readable description of what
		// went wrong.
		logger.Warn("Generation failed: %v", genErr)
		answer.Response = "Error generating response: " + genErr.Error()
		answer.Sources = sources
		answer.Status = domain.StatusSuccess
		return answer, nil
	}

	step(domain.StateDone)
	answer.Response = response
	answer.Sources = sources
	answer.Status = domain.StatusSuccess
	return answer, nil
}

// Search embeds the query and returns the k nearest chunks without
// generating an answer.
func (s *PipelineService) Search(ctx context.Context, query string, k int) ([]domain.Match, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidQuery
	}
	if s.retriever == nil {
		return nil, fmt.Errorf("%w: embedding provider and vector store are required", domain.ErrNotConfigured)
	}

	logger.Section("Search")
	logger.Debug("Query: %q", query)

	return s.retriever.Retrieve(ctx, query, s.query.Clamp(k))
}

// ready reports whether every service a full query needs is present.
func (s *PipelineService) ready() error {
	switch {
	case s.store == nil:
		return fmt.Errorf("%w: no vector store", domain.ErrNotConfigured)
	case s.embedder == nil:
		return fmt.Errorf("%w: no embedding provider", domain.ErrNotConfigured)
	case s.llm == nil:
		return fmt.Errorf("%w: no generation provider", domain.ErrNotConfigured)
	case s.prompts == nil:
		return fmt.Errorf("%w: no prompt store", domain.ErrNotConfigured)
	}
	return nil
}

// fail finalises answer as an error response for err.
func (s *PipelineService) fail(answer domain.Answer, state domain.QueryState, err error) (domain.Answer, error) {
	logger.Warn("Query failed in state %s: %v", state, err)
	answer.Status = domain.StatusError
	answer.Sources = []domain.SourceRef{}
	answer.Response = "Error processing your query: " + err.Error()
	return answer, err
}

// generate renders the prompt templates and calls the LLM.
func (s *PipelineService) generate(ctx context.Context, contextText, question string) (string, error) {
	systemPrompt, err := s.prompts.Load(driven.PromptAnswerSystem)
	if err != nil {
		return "", fmt.Errorf("loading system prompt: %w", err)
	}
	userTemplate, err := s.prompts.Load(driven.PromptAnswerUser)
	if err != nil {
		return "", fmt.Errorf("loading user prompt: %w", err)
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(userTemplate, contextText, question)},
	}

	logger.Debug("Generating with %s", s.llm.ModelName())

	return s.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   generationMaxTokens,
		Temperature: generationTemperature,
	})
}
