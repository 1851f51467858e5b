package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grcdash/fbk/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP stdio server for AI tooling integration",
	Long: `Start an MCP (Model Context Protocol) server on stdio.

This lets MCP-capable AI tools query and manage feedback natively.
Configure with:

  {
    "mcpServers": {
      "fbk": { "command": "fbk", "args": ["mcp"] }
    }
  }

Available tools: fbk_list_feedback, fbk_get_feedback, fbk_submit_feedback,
fbk_vote, fbk_analytics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := mcp.NewServer(getClient())
		return srv.ServeStdio(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
