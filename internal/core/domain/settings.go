package domain

// AIProvider identifies an AI service provider for embeddings or generation.
type AIProvider string

// Providers the AI factory can build adapters for.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API or any compatible endpoint.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderGroq is the Groq cloud API (OpenAI-compatible).
	AIProviderGroq AIProvider = "groq"
)

// providerTraits records what each provider needs and how it is shown.
var providerTraits = map[AIProvider]struct {
	description string
	needsKey    bool
	local       bool
}{
	AIProviderOllama: {description: "Ollama (local)", local: true},
	AIProviderOpenAI: {description: "OpenAI (cloud)", needsKey: true},
	AIProviderGroq:   {description: "Groq (cloud)", needsKey: true},
}

// IsValid reports whether p names a known provider.
func (p AIProvider) IsValid() bool {
	_, ok := providerTraits[p]
	return ok
}

// RequiresAPIKey reports whether the provider needs a key before use.
func (p AIProvider) RequiresAPIKey() bool {
	return providerTraits[p].needsKey
}

// IsLocal reports whether the provider runs on this machine.
func (p AIProvider) IsLocal() bool {
	return providerTraits[p].local
}

// String returns the provider name as stored in config.
func (p AIProvider) String() string {
	return string(p)
}

// Description is the label shown in the settings wizard.
func (p AIProvider) Description() string {
	t, ok := providerTraits[p]
	if !ok {
		return "Unknown"
	}
	return t.description
}

// StoreBackend identifies a vector store implementation.
type StoreBackend string

// Available vector store backends.
const (
	// StoreBackendSQLite persists chunks and vectors in a local SQLite file.
	StoreBackendSQLite StoreBackend = "sqlite"

	// StoreBackendMemory keeps everything in process memory.
	StoreBackendMemory StoreBackend = "memory"

	// StoreBackendMilvus stores vectors in a remote Milvus instance.
	StoreBackendMilvus StoreBackend = "milvus"
)

var backendTraits = map[StoreBackend]struct {
	description string
	persistent  bool
}{
	StoreBackendSQLite: {description: "SQLite (local file)", persistent: true},
	StoreBackendMemory: {description: "Memory (volatile)"},
	StoreBackendMilvus: {description: "Milvus (remote)", persistent: true},
}

// IsValid reports whether b names a known backend.
func (b StoreBackend) IsValid() bool {
	_, ok := backendTraits[b]
	return ok
}

// IsPersistent reports whether data survives a process restart.
func (b StoreBackend) IsPersistent() bool {
	return backendTraits[b].persistent
}

// String returns the backend name as stored in config.
func (b StoreBackend) String() string {
	return string(b)
}

// Description is the label shown in the settings wizard.
func (b StoreBackend) Description() string {
	t, ok := backendTraits[b]
	if !ok {
		return "Unknown"
	}
	return t.description
}

// providerReady reports whether a provider choice is usable: it must be a
// known provider, and cloud providers additionally need their API key.
func providerReady(p AIProvider, apiKey string) bool {
	return p.IsValid() && (!p.RequiresAPIKey() || apiKey != "")
}

// EmbeddingSettings selects the service that turns text into vectors.
// BaseURL only matters for Ollama and compatible endpoints, APIKey
// only for OpenAI.
type EmbeddingSettings struct {
	Provider AIProvider
	Model    string
	BaseURL  string
	APIKey   string
}

// IsConfigured reports whether embedding can run with these settings.
func (e EmbeddingSettings) IsConfigured() bool {
	return providerReady(e.Provider, e.APIKey)
}

// LLMSettings selects the service that generates answers. BaseURL only
// matters for Ollama and compatible endpoints, APIKey for Groq and
// OpenAI.
type LLMSettings struct {
	Provider AIProvider
	Model    string
	BaseURL  string
	APIKey   string
}

// IsConfigured reports whether generation can run with these settings.
func (l LLMSettings) IsConfigured() bool {
	return providerReady(l.Provider, l.APIKey)
}

// StoreSettings holds vector store configuration.
type StoreSettings struct {
	// Backend selects the store implementation.
	Backend StoreBackend

	// Path is the SQLite data directory. Empty means the default
	// location under the config directory.
	Path string

	// Address is the Milvus server address (host:port).
	Address string

	// Collection is the Milvus collection name.
	Collection string
}

// QuerySettings holds retrieval behaviour configuration.
type QuerySettings struct {
	// DefaultK is the number of chunks retrieved when the caller
	// does not specify one.
	DefaultK int

	// MaxK caps the number of chunks a caller may request.
	MaxK int
}

// Clamp bounds k to [1, MaxK], substituting DefaultK for k <= 0.
func (q QuerySettings) Clamp(k int) int {
	if k <= 0 {
		k = q.DefaultK
	}
	if q.MaxK > 0 && k > q.MaxK {
		k = q.MaxK
	}
	if k < 1 {
		k = 1
	}
	return k
}

// IngestSettings holds ingestion configuration.
type IngestSettings struct {
	// TranscriptsDir is the directory holding transcript files.
	TranscriptsDir string

	// ChunkSize is the target chunk length in characters.
	ChunkSize int

	// ChunkOverlap is the overlap between adjacent chunks in characters.
	ChunkOverlap int

	// EmbedRatePerSec limits embedding calls per second during
	// ingestion. Zero disables the limit.
	EmbedRatePerSec float64
}

// AppSettings is the full configuration tree, one field per section of
// the config file.
type AppSettings struct {
	Embedding EmbeddingSettings
	LLM       LLMSettings
	Store     StoreSettings
	Query     QuerySettings
	Ingest    IngestSettings
}

// DefaultAppSettings is the configuration a fresh install starts from.
// The generation API key is left empty; it is read from the
// environment or configuration at startup.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    "nomic-embed-text",
		},
		LLM: LLMSettings{
			Provider: AIProviderGroq,
			Model:    "llama-3.1-8b-instant",
		},
		Store: StoreSettings{
			Backend:    StoreBackendSQLite,
			Collection: "youtube_transcripts",
		},
		Query: QuerySettings{
			DefaultK: 5,
			MaxK:     10,
		},
		Ingest: IngestSettings{
			TranscriptsDir:  "transcripts",
			ChunkSize:       1000,
			ChunkOverlap:    200,
			EmbedRatePerSec: 10,
		},
	}
}

// AllEmbeddingProviders lists the providers usable for embeddings.
// Groq is absent: it serves generation only.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{AIProviderOllama, AIProviderOpenAI}
}

// AllLLMProviders returns providers that support answer generation.
func AllLLMProviders() []AIProvider {
	return []AIProvider{AIProviderGroq, AIProviderOllama, AIProviderOpenAI}
}

// AllStoreBackends returns all available vector store backends.
func AllStoreBackends() []StoreBackend {
	return []StoreBackend{StoreBackendSQLite, StoreBackendMemory, StoreBackendMilvus}
}

// DefaultEmbeddingModels maps each embedding provider to the model
// chosen when the user does not name one.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels maps each generation provider to the model chosen
// when the user does not name one.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderGroq:   "llama-3.1-8b-instant",
		AIProviderOllama: "llama3.2",
		AIProviderOpenAI: "gpt-4o-mini",
	}
}

// EmbeddingDimensions maps known model names to their vector widths.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
