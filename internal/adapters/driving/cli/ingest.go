package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

var ingestWatch bool

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Rebuild the vector store from the transcript directory",
	Long: `Loads every transcript file, chunks and embeds the content, then
replaces the vector store contents in one operation.

There is no incremental mode: each run rebuilds the whole collection,
so removed or edited transcripts never leave stale chunks behind.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "keep running and rebuild on transcript changes")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := cmd.Context()

	cmd.Println("Ingesting transcripts...")
	stats, err := ingestService.Rebuild(ctx)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoTranscripts):
			return fmt.Errorf("no transcript files found; add .txt transcripts and retry: %w", err)
		case errors.Is(err, domain.ErrIngestInProgress):
			return fmt.Errorf("another ingestion is already running: %w", err)
		default:
			return fmt.Errorf("ingestion failed: %w", err)
		}
	}

	cmd.Printf("Ingested %d transcripts (%d chunks) in %s\n",
		stats.Documents, stats.Chunks, stats.Duration.Round(time.Millisecond))

	if !ingestWatch {
		return nil
	}

	cmd.Println("Watching for transcript changes. Press Ctrl+C to stop.")
	return ingestService.WatchAndRebuild(ctx)
}
