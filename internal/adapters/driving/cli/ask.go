package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

var askTopK int

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the ingested transcripts",
	Long: `Answers a question using the ingested video transcripts.

The question is embedded, the closest transcript chunks are retrieved,
and an answer is generated from them. The videos the answer draws on
are listed underneath it.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top", "k", 0, "number of chunks to retrieve (0 = default)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	answer, err := queryService.Ask(cmd.Context(), args[0], askTopK)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyStore) {
			return fmt.Errorf("the store is empty; run 'tuberag ingest' first: %w", err)
		}
		return fmt.Errorf("query failed: %w", err)
	}

	cmd.Println(answer.Response)

	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, source := range answer.Sources {
			title := source.VideoTitle
			if title == "" {
				title = source.Filename
			}
			cmd.Printf("  - %s", title)
			if source.VideoURL != "" {
				cmd.Printf(" (%s)", source.VideoURL)
			}
			cmd.Println()
		}
	}

	return nil
}
