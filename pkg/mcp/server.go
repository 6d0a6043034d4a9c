// Package mcp exposes quill's survey tooling over the Model Context
// Protocol so editors and agents can validate, inspect and step through
// surveys without shelling out to the CLI.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates a new MCP server with quill tools registered.
func NewServer(version string) *server.MCPServer {
	s := server.NewMCPServer(
		"quill",
		version,
		server.WithToolCapabilities(true),
	)

	s.AddTool(
		mcp.NewTool("survey/validate",
			mcp.WithDescription("Validate a quill survey YAML file"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to the survey YAML file")),
		),
		HandleValidate,
	)

	s.AddTool(
		mcp.NewTool("survey/schema",
			mcp.WithDescription("Export the quill survey JSON Schema"),
		),
		HandleSchema,
	)

	s.AddTool(
		mcp.NewTool("survey/graph",
			mcp.WithDescription("Derive the flow graph of a survey"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to the survey YAML file")),
			mcp.WithString("format", mcp.Description("Output format: json, mermaid, or ascii (default json)")),
		),
		HandleGraph,
	)

	s.AddTool(
		mcp.NewTool("survey/next",
			mcp.WithDescription("Resolve the next question given a current question and an answer snapshot"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to the survey YAML file")),
			mcp.WithString("current", mcp.Required(), mcp.Description("Serial of the question just answered")),
			mcp.WithObject("answers", mcp.Description("Answer snapshot: question serial to answer value")),
		),
		HandleNext,
	)

	s.AddTool(
		mcp.NewTool("survey/test",
			mcp.WithDescription("Run flow scenarios from a flow-test YAML file"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to the flow-test YAML file")),
		),
		HandleTest,
	)

	return s
}
