// Package driven holds the secondary ports, the interfaces core
// services call out through. Adapters under internal/adapters/driven
// implement them; the services never touch infrastructure directly.
//
// The pipeline needs EmbeddingService, VectorStore, LLMService,
// TranscriptSource, PromptStore and ConfigStore to serve queries.
// IngestHistoryStore is optional: the memory and Milvus backends do
// not provide one, and run history is then simply not kept.
//
// Files here import the domain package and nothing else.
package driven
