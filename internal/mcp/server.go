// Package mcp provides a Model Context Protocol server for readmegen.
// Agents can inspect the section catalog and templates, and render a README
// from a complete set of answers without an interactive terminal.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/readmegen/internal/config"
	"github.com/gorewood/readmegen/internal/template"
)

// NewServer creates an MCP server with all readmegen tools registered.
func NewServer(version string, cfg *config.Config, templates *template.Store) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "readmegen",
		Version: version,
	}, nil)
	registerTools(server, cfg, templates)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that add files.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

func registerTools(server *mcp.Server, cfg *config.Config, templates *template.Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "sections",
		Description: "List the README sections in catalog order with their labels and the question asked for each. The toc section is generated from the others and takes no answer.",
		Annotations: readOnlyAnnotations(),
	}, handleSections(cfg))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "templates",
		Description: "List the section templates visible to readmegen, where each comes from, and which source it overrides.",
		Annotations: readOnlyAnnotations(),
	}, handleTemplates(templates))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render",
		Description: "Render a README from an ordered list of sections and one answer per section. Returns Markdown and HTML; with write=true also writes them (and the zip bundle) to the output folder.",
		Annotations: writeAnnotations(),
	}, handleRender(cfg, templates))
}
