package source

import (
	"context"
	"testing"

	"github.com/agentic-research/lumiere/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mirrors tokens/src/typography.js in the component library.
const typographyJS = `module.exports = {
  fonts: {
    heading: 'Playfair Display, serif',
    body: 'Open Sans, sans-serif',
    accent: 'Open Sans, sans-serif'
  },
  fontSizes: {
    xs: '0.75rem',
    base: '1rem', 
    '2xl': '1.5rem'
  }
};
`

func TestJSLoader_CommonJS(t *testing.T) {
	rec, err := NewJSLoader().Load(context.Background(), "typography.js", []byte(typographyJS))
	require.NoError(t, err)

	assert.Equal(t, "typography.js", rec.Origin)
	require.Len(t, rec.Categories, 2)
	assert.Equal(t, api.Category{Name: "fonts", Tokens: []api.Token{
		{Name: "heading", Value: "Playfair Display, serif"},
		{Name: "body", Value: "Open Sans, sans-serif"},
		{Name: "accent", Value: "Open Sans, sans-serif"},
	}}, rec.Categories[0])
	assert.Equal(t, []api.Token{
		{Name: "xs", Value: "0.75rem"},
		{Name: "base", Value: "1rem"},
		{Name: "2xl", Value: "1.5rem"},
	}, rec.Categories[1].Tokens)
}

func TestJSLoader_ExportForms(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"export default", `export default { spacing: { sm: "8px" } };`},
		{"export const", `export const spacing = { spacing: { sm: "8px" } };`},
		{"template literal", "module.exports = { spacing: { sm: `8px` } };"},
		{"comments", "module.exports = {\n  // spacing scale\n  spacing: { sm: '8px' /* small */ },\n};"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := NewJSLoader().Load(context.Background(), "s.js", []byte(tt.src))
			require.NoError(t, err)
			require.Len(t, rec.Categories, 1)
			assert.Equal(t, []api.Token{{Name: "sm", Value: "8px"}}, rec.Categories[0].Tokens)
		})
	}
}

func TestJSLoader_Escapes(t *testing.T) {
	tests := []struct {
		name string
		lit  string
		want string
	}{
		{"quotes", `'It\'s "fine"'`, `It's "fine"`},
		{"unicode", `'Lumi\u00e8re'`, "Lumière"},
		{"hex", `'\x41'`, "A"},
		{"control", `'x\ry\tz\b\f\v'`, "x\ry\tz\b\f\v"},
		{"code point", `'\u{1F600}'`, "\U0001F600"},
		{"surrogate pair", `'\uD83D\uDE00'`, "\U0001F600"},
		{"lone surrogate", `'\uD83Dx'`, "\uFFFDx"},
		{"identity", `'\e900'`, "e900"},
		{"line continuation", "'a\\\nb'", "ab"},
		{"crlf continuation", "'a\\\r\nb'", "ab"},
		{"legacy octal", `'\101\0'`, "A\x00"},
		{"octal stops at three digits", `'\1011'`, "A1"},
		{"line separator", `'\u2028'`, "\u2028"},
		{"template plain", "`a\\u0041`", "aA"},
		{"template newline", "`a\r\nb`", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "module.exports = { fonts: { v: " + tt.lit + " } };"
			rec, err := NewJSLoader().Load(context.Background(), "f.js", []byte(src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Categories[0].Tokens[0].Value)
		})
	}
}

func TestJSLoader_EscapedKeys(t *testing.T) {
	src := `module.exports = { 'spac\u0069ng': { '\x73m': '8px' } };`
	rec, err := NewJSLoader().Load(context.Background(), "s.js", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, "spacing", rec.Categories[0].Name)
	assert.Equal(t, []api.Token{{Name: "sm", Value: "8px"}}, rec.Categories[0].Tokens)
}

func TestUnquoteJS_Invalid(t *testing.T) {
	for _, lit := range []string{
		`'\x4'`,
		`'\u12'`,
		`'\u{110000}'`,
		`'\u{}'`,
		"`\\101`",
		"`\\8`",
		`'`,
	} {
		_, err := unquoteJS(lit)
		assert.Error(t, err, lit)
	}
}

func TestJSLoader_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
		line    int
	}{
		{"no export", `const x = { a: { b: 'c' } };`, "no exported object literal", 0},
		{"number value", "module.exports = {\n  spacing: { sm: 8 }\n};", "token value must be a string, got number", 2},
		{"flat category", `module.exports = { navy: '#1B1F3B' };`, `category "navy" must be an object literal`, 1},
		{"substitution", "module.exports = { s: { a: `${x}px` } };", "template substitutions", 1},
		{"spread", `module.exports = { ...base };`, "unsupported object member spread_element", 1},
		{"syntax", `module.exports = { a: { b: 'c' `, "syntax error", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJSLoader().Load(context.Background(), "bad.js", []byte(tt.src))
			var se *Error
			require.ErrorAs(t, err, &se)
			assert.Contains(t, se.Message, tt.wantMsg)
			if tt.line > 0 {
				assert.Equal(t, tt.line, se.Line)
			}
		})
	}
}
