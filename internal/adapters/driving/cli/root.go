// Package cli implements the command-line interface.
// Commands are thin adapters over the driving ports; wiring happens
// in cmd/tuberag.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/haldane-labs/tuberag/internal/core/ports/driving"
	"github.com/haldane-labs/tuberag/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	ingestService   driving.IngestOrchestrator
	queryService    driving.QueryService
	settingsService driving.SettingsService
	systemService   driving.SystemService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "tuberag",
	Short: "Ask questions about your YouTube transcripts",
	Long: `Tuberag is a retrieval-augmented question answering tool for
YouTube video transcripts.

Point it at a directory of transcript files, ingest them into a vector
store, then ask questions; answers are generated from the most relevant
transcript passages and cite the videos they came from.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,

	// main prints the returned error once.
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Services bundles everything the commands need.
type Services struct {
	Ingest   driving.IngestOrchestrator
	Query    driving.QueryService
	Settings driving.SettingsService
	System   driving.SystemService
}

// SetServices injects the service implementations. Call before Execute.
func SetServices(s Services) {
	ingestService = s.Ingest
	queryService = s.Query
	settingsService = s.Settings
	systemService = s.System
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context.
// Long-running commands (serve, mcp serve) stop when it is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
