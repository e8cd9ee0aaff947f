package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/haldane-labs/tuberag/internal/core/ports/driven"
)

var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore reads generation prompts from user-editable files under
// the config directory. Missing files fall back to the embedded
// defaults, and the defaults are written out on first use so users
// have something to edit.
type PromptStore struct {
	mu   sync.RWMutex
	dir  string
	once sync.Once
	err  error

	cache map[string]string
}

// defaultPrompts seeds the prompt directory and backs it up when a
// file cannot be read.
var defaultPrompts = map[string]string{
	driven.PromptAnswerSystem: `You are an AI assistant that answers questions about YouTube video transcripts.
Use the provided context from video transcripts to answer the user's question accurately and comprehensively.

Guidelines:
1. Base your answer primarily on the provided context
2. If the context doesn't contain enough information, acknowledge this
3. When referencing information, mention which video it came from
4. Provide clear, well-structured answers
5. Include relevant video titles and URLs when helpful`,

	driven.PromptAnswerUser: `Context from YouTube videos:
%s

Question: %s

Please provide a comprehensive answer based on the video transcripts above.`,
}

const promptsReadme = `# tuberag prompts

Answer generation reads its templates from this directory.

  answer_system.txt  instructions given to the model
  answer_user.txt    wraps the retrieved context and the question

Edit a file to change behaviour; changes apply on the next command or
after a server restart. answer_user.txt must keep its two %s
placeholders in order: the assembled transcript context, then the
question. answer_system.txt takes no placeholders.
`

// NewPromptStore creates a prompt store rooted at promptDir. An empty
// promptDir selects <config dir>/prompts. No I/O happens until the
// first Load.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		configDir, err := DefaultConfigDir()
		if err != nil {
			return nil, fmt.Errorf("get config directory: %w", err)
		}
		promptDir = filepath.Join(configDir, "prompts")
	}
	return &PromptStore{
		dir:   promptDir,
		cache: map[string]string{},
	}, nil
}

// Load returns the prompt template called name. The first call seeds
// the prompt directory; later calls serve from cache. When the file
// cannot be read the embedded default answers instead.
func (s *PromptStore) Load(name string) (string, error) {
	if err := s.ensure(); err != nil {
		return s.fallback(name, fmt.Errorf("prompt store init failed: %w", err))
	}

	if prompt, ok := s.cached(name); ok {
		return prompt, nil
	}

	raw, err := os.ReadFile(s.promptPath(name))
	if err != nil {
		return s.fallback(name, fmt.Errorf("load prompt %q: %w", name, err))
	}
	prompt := strings.TrimSpace(string(raw))

	s.mu.Lock()
	s.cache[name] = prompt
	s.mu.Unlock()
	return prompt, nil
}

// Reload drops the cache so edited files are picked up.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = map[string]string{}
	s.mu.Unlock()
}

// Dir reports where the prompt files are read from.
func (s *PromptStore) Dir() string {
	return s.dir
}

func (s *PromptStore) ensure() error {
	s.once.Do(func() { s.err = s.seed() })
	return s.err
}

// seed writes the default prompt files and a README so users can find
// and edit them. Existing files are left alone.
func (s *PromptStore) seed() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create prompt directory: %w", err)
	}

	for name, content := range defaultPrompts {
		path := s.promptPath(name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			return fmt.Errorf("seed prompt %q: %w", name, err)
		}
	}

	readme := filepath.Join(s.dir, "README.md")
	if _, err := os.Stat(readme); os.IsNotExist(err) {
		return os.WriteFile(readme, []byte(promptsReadme), 0600)
	}
	return nil
}

// fallback serves the embedded default when disk access fails; cause
// surfaces only for unknown prompt names.
func (s *PromptStore) fallback(name string, cause error) (string, error) {
	if prompt, ok := defaultPrompts[name]; ok {
		return prompt, nil
	}
	return "", cause
}

func (s *PromptStore) cached(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prompt, ok := s.cache[name]
	return prompt, ok
}

func (s *PromptStore) promptPath(name string) string {
	return filepath.Join(s.dir, name+".txt")
}
