// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"os/signal"
	"syscall"

	"github.com/harperreed/fitness/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to read your fitness dashboards through
a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "fitness": {
        "command": "fitness",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  get_current_stats   Current snapshot with a one-line summary
  get_dashboard       One dashboard view (1-4)
  simulate_update     Randomize activity fields

AVAILABLE RESOURCES:

  fitness://stats/current   Current snapshot
  fitness://dashboards      All four dashboard views`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(statsSvc)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
