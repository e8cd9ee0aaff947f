package driven

// PromptStore loads LLM prompt templates by name. Implementations may
// read them from files on disk or fall back to defaults embedded in
// the binary.
type PromptStore interface {
	// Load returns the template for name. A missing prompt yields an
	// error unless the implementation carries a default for it.
	Load(name string) (string, error)

	// Reload drops any cached prompts so edits on disk take effect.
	Reload()
}

// Names of the prompts the answer pipeline loads.
const (
	// PromptAnswerSystem fixes the generator's behaviour: answer from
	// the supplied context, say when the context is insufficient, and
	// attribute claims to source videos. No format placeholders.
	PromptAnswerSystem = "answer_system"

	// PromptAnswerUser wraps the assembled context and the question.
	// Two %s placeholders: context first, then question.
	PromptAnswerUser = "answer_user"
)
