package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/agentic-research/lumiere/api"
	"github.com/agentic-research/lumiere/internal/emit"
	"github.com/agentic-research/lumiere/internal/tokens"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestNew(t *testing.T) {
	require.NotNil(t, New(tokens.NewHolder(tokens.Default())))
}

func TestToolDefinitions(t *testing.T) {
	assert.Equal(t, "list_categories", listCategoriesTool().Name)
	assert.Equal(t, "get_category", getCategoryTool().Name)
	assert.Contains(t, getCategoryTool().InputSchema.Required, "name")

	render := renderArtifactTool()
	assert.Equal(t, "render_artifact", render.Name)
	assert.Contains(t, render.InputSchema.Required, "format")
}

func TestListCategories(t *testing.T) {
	h := &handlers{docs: tokens.NewHolder(tokens.Default())}
	res, err := h.listCategories(context.Background(), call(nil))
	require.NoError(t, err)
	assert.Equal(t, "lumiere\nfonts\nfontSizes\nspacing", text(t, res))
}

func TestGetCategory(t *testing.T) {
	h := &handlers{docs: tokens.NewHolder(tokens.Default())}

	res, err := h.getCategory(context.Background(), call(map[string]any{"name": "fonts"}))
	require.NoError(t, err)
	var toks []api.Token
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &toks))
	assert.Equal(t, "heading", toks[0].Name)

	res, err = h.getCategory(context.Background(), call(map[string]any{"name": "shadows"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.getCategory(context.Background(), call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestRenderArtifact(t *testing.T) {
	doc := tokens.Default()
	h := &handlers{docs: tokens.NewHolder(doc)}

	res, err := h.renderArtifact(context.Background(), call(map[string]any{"format": "css"}))
	require.NoError(t, err)
	assert.Equal(t, string(emit.Stylesheet(doc)), text(t, res))

	res, err = h.renderArtifact(context.Background(), call(map[string]any{"format": "d.ts"}))
	require.NoError(t, err)
	assert.Equal(t, string(emit.DeclarationSource()), text(t, res))

	res, err = h.renderArtifact(context.Background(), call(map[string]any{"format": "scss"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
