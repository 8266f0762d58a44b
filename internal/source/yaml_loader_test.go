package source

import (
	"context"
	"testing"

	"github.com/agentic-research/lumiere/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLLoader_YAML(t *testing.T) {
	src := `
spacing:
  xs: 4px
  sm: 8px
fonts:
  body: "Open Sans, sans-serif"
`
	rec, err := NewYAMLLoader().Load(context.Background(), "tokens.yaml", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"spacing", "fonts"}, (&api.Document{Categories: rec.Categories}).Names())
	assert.Equal(t, []api.Token{{Name: "xs", Value: "4px"}, {Name: "sm", Value: "8px"}}, rec.Categories[0].Tokens)
}

func TestYAMLLoader_JSONKeepsOrder(t *testing.T) {
	src := `{"lumiere": {"navy": "#1B1F3B", "gold": "#C9A96E"}, "fonts": {}}`
	rec, err := NewYAMLLoader().Load(context.Background(), "tokens.json", []byte(src))
	require.NoError(t, err)
	require.Len(t, rec.Categories, 2)
	assert.Equal(t, "navy", rec.Categories[0].Tokens[0].Name)
	assert.Equal(t, "gold", rec.Categories[0].Tokens[1].Name)
	assert.Empty(t, rec.Categories[1].Tokens)
}

func TestYAMLLoader_Empty(t *testing.T) {
	rec, err := NewYAMLLoader().Load(context.Background(), "empty.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, rec.Categories)
}

func TestYAMLLoader_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{"number", "spacing:\n  sm: 8\n", "token spacing.sm must be a string"},
		{"list root", "- a\n- b\n", "root must be a mapping"},
		{"scalar category", "navy: '#1B1F3B'\n", `category "navy" must be a mapping`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewYAMLLoader().Load(context.Background(), "bad.yaml", []byte(tt.src))
			var se *Error
			require.ErrorAs(t, err, &se)
			assert.Contains(t, se.Message, tt.wantMsg)
		})
	}
}
