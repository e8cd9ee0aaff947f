package driven

import "context"

// LLMService generates answer text. The pipeline sends one system
// message carrying the answering instructions and one user message
// carrying the assembled context plus the question.
//
// The Groq, Ollama and OpenAI adapters implement this interface.
type LLMService interface {
	// Chat sends a conversation to the model and returns the reply text.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName reports the model in use.
	ModelName() string

	// Ping makes a lightweight request to verify the service is
	// reachable. Run at startup before queries are served.
	Ping(ctx context.Context) error

	// Close releases any held connections.
	Close() error
}

// ChatMessage is one turn of a conversation. Role is "system", "user"
// or "assistant".
type ChatMessage struct {
	Role    string
	Content string
}

// ChatOptions bounds a generation request. Answer generation runs with
// the temperature near zero to keep replies close to the supplied
// context.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64
}
