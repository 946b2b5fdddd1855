package commands

import (
	"os"

	"shiplate/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the report as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Info().Msg("MCP Server starting Stdio loop")
		server := mcp.NewServer(os.Stdin, os.Stdout, mcp.Options{
			Version:      Version,
			TopLateLimit: cfg.TopLate,
		})
		return server.Serve()
	},
}
