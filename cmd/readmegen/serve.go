package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	readmegenmcp "github.com/gorewood/readmegen/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run readmegen as a Model Context Protocol (MCP) server over stdio, so an
agent can list sections and templates and render READMEs from answers.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "readmegen": {
        "command": "readmegen",
        "args": ["serve"]
      }
    }
  }

Available tools: sections, templates, render`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			newPrinter(cmd).Stderr("readmegen %s serving MCP on stdio\n", buildVersion())
			server := readmegenmcp.NewServer(buildVersion(), cfg, newTemplateStore(cfg))
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
