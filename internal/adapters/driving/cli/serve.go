package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haldane-labs/tuberag/internal/adapters/driving/api"
	"github.com/haldane-labs/tuberag/internal/logger"
)

var (
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the HTTP API with query, search, and status endpoints.

Endpoints:
  GET  /            health check
  POST /query       answer a question
  POST /search      retrieve similar chunks
  GET  /system-info pipeline status
  GET  /videos      ingested videos

With --watch, the transcript directory is watched and the store is
rebuilt whenever transcripts change.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8000, "port to listen on")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "rebuild the store on transcript changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if queryService == nil || systemService == nil {
		return errors.New("query and system services not configured")
	}

	ctx := cmd.Context()

	if serveWatch {
		if ingestService == nil {
			return errors.New("ingest service not configured")
		}
		go func() {
			if err := ingestService.WatchAndRebuild(ctx); err != nil && !errors.Is(err, ctx.Err()) {
				logger.Error("Transcript watcher stopped: %v", err)
			}
		}()
	}

	server := api.NewServer(api.Ports{
		Query:  queryService,
		System: systemService,
	})

	addr := fmt.Sprintf(":%d", servePort)
	cmd.Printf("API server listening on http://localhost%s\n", addr)
	return server.Run(ctx, addr)
}
