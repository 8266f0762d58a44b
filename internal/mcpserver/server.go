// Package mcpserver exposes the live token document to MCP clients.
//
// It is a thin composition root: tools read from a tokens.Holder and
// render through package emit, so answers match the built artifacts.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agentic-research/lumiere/internal/emit"
	"github.com/agentic-research/lumiere/internal/tokens"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with every tool registered.
func New(docs *tokens.Holder) *server.MCPServer {
	s := server.NewMCPServer(
		"lumiere",
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions("Read Lumière design tokens and render them as css, js, d.ts or json artifacts."),
	)

	h := &handlers{docs: docs}
	s.AddTool(listCategoriesTool(), h.listCategories)
	s.AddTool(getCategoryTool(), h.getCategory)
	s.AddTool(renderArtifactTool(), h.renderArtifact)
	return s
}

// Serve runs the server over stdio until the client disconnects.
func Serve(docs *tokens.Holder) error {
	return server.ServeStdio(New(docs))
}

func listCategoriesTool() mcp.Tool {
	return mcp.NewTool("list_categories",
		mcp.WithDescription("List token category names in document order."),
	)
}

func getCategoryTool() mcp.Tool {
	return mcp.NewTool("get_category",
		mcp.WithDescription("Return the tokens of one category as an ordered list of name/value pairs."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Category name, e.g. lumiere or spacing.")),
	)
}

func renderArtifactTool() mcp.Tool {
	names := make([]string, 0, len(emit.Formats()))
	for _, f := range emit.Formats() {
		names = append(names, string(f))
	}
	return mcp.NewTool("render_artifact",
		mcp.WithDescription("Render the token document in one artifact format."),
		mcp.WithString("format", mcp.Required(), mcp.Enum(names...), mcp.Description("Artifact format.")),
	)
}

type handlers struct {
	docs *tokens.Holder
}

func (h *handlers) listCategories(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(strings.Join(h.docs.Current().Names(), "\n")), nil
}

func (h *handlers) getCategory(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, ok := h.docs.Current().Category(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown category %q", name)), nil
	}
	out, err := json.MarshalIndent(c.Tokens, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal category: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (h *handlers) renderArtifact(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("format")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	f, err := emit.ParseFormat(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a, err := emit.Render(f, h.docs.Current())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(a.Body)), nil
}
