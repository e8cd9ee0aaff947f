package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure AI providers, the vector store, and other options.

Use subcommands to configure specific settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	Long:  `Configure the provider used to embed transcript chunks and queries.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigure(cmd, configureEmbedding)
	},
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure generation provider",
	Long:  `Configure the LLM provider used to generate answers.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigure(cmd, configureLLM)
	},
}

var settingsStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Configure vector store backend",
	Long:  `Configure the backend used to persist chunks and their embeddings.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigure(cmd, configureStore)
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsWizardCmd,
		settingsEmbeddingCmd, settingsLLMCmd, settingsStoreCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	s, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	printProvider(cmd, "Embedding", s.Embedding.Provider,
		s.Embedding.Model, s.Embedding.BaseURL, s.Embedding.APIKey,
		s.Embedding.IsConfigured())
	printProvider(cmd, "LLM", s.LLM.Provider,
		s.LLM.Model, s.LLM.BaseURL, s.LLM.APIKey,
		s.LLM.IsConfigured())

	cmd.Println("[Store]")
	cmd.Printf("  Backend: %s\n", s.Store.Backend.Description())
	switch s.Store.Backend {
	case domain.StoreBackendSQLite:
		path := s.Store.Path
		if path == "" {
			path = "(default)"
		}
		cmd.Printf("  Path: %s\n", path)
	case domain.StoreBackendMilvus:
		cmd.Printf("  Address: %s\n", s.Store.Address)
		cmd.Printf("  Collection: %s\n", s.Store.Collection)
	}
	cmd.Println()

	cmd.Println("[Query]")
	cmd.Printf("  Default top K: %d\n", s.Query.DefaultK)
	cmd.Printf("  Max top K: %d\n", s.Query.MaxK)
	cmd.Println()

	cmd.Println("[Ingest]")
	cmd.Printf("  Transcripts dir: %s\n", s.Ingest.TranscriptsDir)
	cmd.Printf("  Chunk size: %d\n", s.Ingest.ChunkSize)
	cmd.Printf("  Chunk overlap: %d\n", s.Ingest.ChunkOverlap)
	if s.Ingest.EmbedRatePerSec > 0 {
		cmd.Printf("  Embed rate: %.0f/s\n", s.Ingest.EmbedRatePerSec)
	} else {
		cmd.Println("  Embed rate: unlimited")
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'tuberag settings wizard' to fix configuration issues.")
		return nil
	}
	cmd.Println("Configuration is valid.")
	return nil
}

// printProvider renders one provider section of the settings listing.
func printProvider(cmd *cobra.Command, heading string, provider domain.AIProvider,
	model, baseURL, apiKey string, configured bool,
) {
	cmd.Printf("[%s]\n", heading)
	cmd.Printf("  Provider: %s\n", provider.Description())
	cmd.Printf("  Model: %s\n", model)
	if provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if provider.RequiresAPIKey() {
		key := "(not set)"
		if apiKey != "" {
			key = maskKey(apiKey)
		}
		cmd.Printf("  API Key: %s\n", key)
	}
	if configured {
		cmd.Println("  Status: configured")
	} else {
		cmd.Println("  Status: not configured")
	}
	cmd.Println()
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("TubeRAG Settings Wizard")
	cmd.Println("=======================")
	cmd.Println()

	p := newPrompter()
	steps := []struct {
		title string
		blurb string
		run   func(*cobra.Command, *prompter) error
	}{
		{"Configure Embedding Provider",
			"Transcript chunks and queries are embedded with this provider.",
			configureEmbedding},
		{"Configure Generation Provider",
			"Answers are generated with this provider.",
			configureLLM},
		{"Configure Vector Store",
			"Chunks and embeddings are persisted in this backend.",
			configureStore},
	}

	for i, step := range steps {
		title := fmt.Sprintf("Step %d: %s", i+1, step.title)
		cmd.Println(title)
		cmd.Println(strings.Repeat("-", len(title)))
		cmd.Println(step.blurb)
		cmd.Println()
		if err := step.run(cmd, p); err != nil {
			return err
		}
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		return nil
	}
	cmd.Println("All settings are valid and saved.")
	return nil
}

// runConfigure guards a single configuration step behind the service check.
func runConfigure(cmd *cobra.Command, step func(*cobra.Command, *prompter) error) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return step(cmd, newPrompter())
}

// providerDialog parameterises the embedding and generation flows, which
// differ only in catalog and save hooks.
type providerDialog struct {
	title    string
	noun     string
	choices  []domain.AIProvider
	defaults map[domain.AIProvider]string
	save     func(domain.AIProvider, string, string) error
	check    func() error
}

func (d providerDialog) run(cmd *cobra.Command, p *prompter) error {
	cmd.Printf("Select %s Provider\n", d.title)
	for i, prov := range d.choices {
		cmd.Printf("  %d. %s\n", i+1, prov.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	prov := d.choices[p.choice(len(d.choices), 1)-1]

	model := d.defaults[prov]
	cmd.Printf("Enter model name [%s]: ", model)
	if entered := p.line(); entered != "" {
		model = entered
	}

	var apiKey string
	if prov.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = p.password()
		cmd.Println()
	}

	if err := d.save(prov, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure %s provider: %w", d.noun, err)
	}

	// A bad model name or dead endpoint should surface now, not at the
	// first ingest.
	cmd.Print("Validating configuration... ")
	if err := d.check(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("%s configuration validation failed: %w", d.noun, err)
	}
	cmd.Println("OK")

	cmd.Printf("%s provider configured: %s (%s)\n\n", d.title, prov.Description(), model)
	return nil
}

func configureEmbedding(cmd *cobra.Command, p *prompter) error {
	return providerDialog{
		title:    "Embedding",
		noun:     "embedding",
		choices:  domain.AllEmbeddingProviders(),
		defaults: domain.DefaultEmbeddingModels(),
		save:     settingsService.SetEmbeddingProvider,
		check:    settingsService.ValidateEmbeddingConfig,
	}.run(cmd, p)
}

func configureLLM(cmd *cobra.Command, p *prompter) error {
	return providerDialog{
		title:    "Generation",
		noun:     "generation",
		choices:  domain.AllLLMProviders(),
		defaults: domain.DefaultLLMModels(),
		save:     settingsService.SetLLMProvider,
		check:    settingsService.ValidateLLMConfig,
	}.run(cmd, p)
}

func configureStore(cmd *cobra.Command, p *prompter) error {
	cmd.Println("Select Store Backend")
	backends := domain.AllStoreBackends()
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	backend := backends[p.choice(len(backends), 1)-1]

	if err := settingsService.SetStoreBackend(backend); err != nil {
		return fmt.Errorf("failed to configure store backend: %w", err)
	}

	cmd.Printf("Store backend configured: %s\n\n", backend.Description())
	return nil
}

// prompter reads interactive answers from stdin.
type prompter struct {
	in *bufio.Reader
}

func newPrompter() *prompter {
	return &prompter{in: bufio.NewReader(os.Stdin)}
}

//nolint:errcheck // interactive input, EOF just ends the answer
func (p *prompter) line() string {
	s, _ := p.in.ReadString('\n')
	return strings.TrimSpace(s)
}

// choice reads a 1-based menu selection.
func (p *prompter) choice(max, def int) int {
	return clampChoice(p.line(), max, def)
}

// password reads without echo when stdin is a terminal, falling back to a
// plain line otherwise.
func (p *prompter) password() string {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		if b, err := term.ReadPassword(fd); err == nil {
			return string(b)
		}
	}
	return p.line()
}

// clampChoice maps menu input to a 1-based index, falling back to def for
// empty, unparseable or out-of-range input.
func clampChoice(input string, max, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > max {
		return def
	}
	return n
}

// maskKey shows just enough of an API key to recognise it.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
