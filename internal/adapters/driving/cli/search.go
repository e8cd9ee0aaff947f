package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find transcript chunks similar to a query",
	Long: `Performs semantic search over the ingested transcript chunks
without generating an answer. Useful for inspecting what the ask
command would retrieve.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var (
	searchLimit int
	searchJSON  bool
)

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 = default)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	matches, err := queryService.Search(cmd.Context(), args[0], searchLimit)
	if errors.Is(err, domain.ErrEmptyStore) {
		return fmt.Errorf("the store is empty; run 'tuberag ingest' first: %w", err)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(matches, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printMatches(cmd, matches)
	return nil
}

func printMatches(cmd *cobra.Command, matches []domain.Match) {
	if len(matches) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, match := range matches {
		title := match.Meta.VideoTitle
		if title == "" {
			title = match.Meta.Filename
		}

		cmd.Printf("  [%d] %s (similarity %.3f)\n", i+1, title, match.Similarity)
		if match.Meta.VideoURL != "" {
			cmd.Printf("      URL: %s\n", match.Meta.VideoURL)
		}
		cmd.Printf("      %s\n", preview(match.Text, 200))
		cmd.Println()
	}
}

// preview truncates text for display, appending "..." when cut.
func preview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
