package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show pipeline status and corpus statistics",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, _ []string) error {
	if systemService == nil {
		return errors.New("system service not configured")
	}

	info := systemService.Info(cmd.Context())

	cmd.Println("System Info")
	cmd.Println("===========")
	cmd.Printf("  Status: %s\n", info.Status)
	if info.Error != "" {
		cmd.Printf("  Error: %s\n", info.Error)
	}
	cmd.Printf("  Chunks: %d\n", info.DocumentCount)
	cmd.Printf("  Embedding model: %s\n", valueOrUnset(info.EmbeddingModel))
	cmd.Printf("  LLM model: %s\n", valueOrUnset(info.LLMModel))

	if ingestService != nil {
		if run, err := ingestService.LastRun(cmd.Context()); err == nil {
			cmd.Println()
			cmd.Println("Last Ingestion")
			cmd.Println("==============")
			cmd.Printf("  Finished: %s\n", run.FinishedAt.Format(time.RFC3339))
			if run.Success {
				cmd.Printf("  Result: ok (%d transcripts, %d chunks)\n", run.Documents, run.Chunks)
			} else {
				cmd.Printf("  Result: failed (%s)\n", run.Error)
			}
		} else if !errors.Is(err, domain.ErrNotFound) {
			cmd.Printf("\nLast ingestion unavailable: %v\n", err)
		}
	}

	return nil
}

func valueOrUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}
