package syntax

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCSS(t *testing.T, src string) *sitter.Node {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(css.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(src))
	require.NoError(t, err)
	return tree.RootNode()
}

func TestFirstError(t *testing.T) {
	assert.Nil(t, FirstError(parseCSS(t, ":root {\n  --lumiere-navy: #1B1F3B;\n}\n")))
	assert.Nil(t, FirstError(nil))

	n := FirstError(parseCSS(t, ":root {\n  --lumiere-navy: #1B1F3B;\n"))
	require.NotNil(t, n)
	assert.True(t, n.IsError() || n.IsMissing())
}
