package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haldane-labs/tuberag/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose the pipeline over the Model Context Protocol",
	Long: `Serve the ask and search operations to MCP clients such as Claude
Desktop, so an AI assistant can answer questions from your ingested
transcripts.

Without flags the server speaks JSON-RPC over stdio, which is what
desktop assistants expect. Pass --port to listen on HTTP instead, for
example to poke at the server with the MCP Inspector.

Examples:
  tuberag mcp serve
  tuberag mcp serve --port 8080

A matching claude_desktop_config.json entry looks like:
  {
    "mcpServers": {
      "tuberag": {"command": "/path/to/tuberag", "args": ["mcp", "serve"]}
    }
  }`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	RunE:  runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Query:  queryService,
		System: systemService,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}
	return server.Run(cmd.Context())
}
