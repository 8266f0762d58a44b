package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentic-research/lumiere/internal/config"
	"github.com/agentic-research/lumiere/internal/emit"
	"github.com/agentic-research/lumiere/internal/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// run executes the command tree with args and returns its stdout.
func run(t *testing.T, cfg config.Config, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(cfg, zap.NewNop())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func defaults() config.Config {
	return config.Config{OutDir: "dist", Addr: "127.0.0.1:0"}
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestBuild_BuiltinDocument(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, defaults(), "build", "--out", dir)
	require.NoError(t, err)

	doc := tokens.Default()
	for _, f := range emit.Formats() {
		body, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(f.BuildPath())))
		require.NoError(t, err, f)
		want, err := emit.Render(f, doc)
		require.NoError(t, err)
		assert.Equal(t, string(want.Body), string(body), f)
		assert.Contains(t, out, f.BuildPath())
	}
	assert.Contains(t, out, "Built 4 artifacts")
}

func TestBuild_OutFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := defaults()
	cfg.OutDir = filepath.Join(dir, "site")

	_, err := run(t, cfg, "build")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "site", "css", "tokens.css"))
}

func TestBuild_FromSources(t *testing.T) {
	src := t.TempDir()
	colors := writeFile(t, src, "colors.yaml", "lumiere:\n  navy: \"#000080\"\n")
	spacing := writeFile(t, src, "spacing.hcl", "spacing = {\n  sm = \"8px\"\n}\n")
	dir := t.TempDir()

	_, err := run(t, defaults(), "build", "--out", dir, "--source", colors, "--source", spacing)
	require.NoError(t, err)

	css, err := os.ReadFile(filepath.Join(dir, "css", "tokens.css"))
	require.NoError(t, err)
	assert.Equal(t, ":root {\n  --lumiere-navy: #000080;\n}\n", string(css))

	js, err := os.ReadFile(filepath.Join(dir, "json", "tokens.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"lumiere\": {\n    \"navy\": \"#000080\"\n  },\n  \"spacing\": {\n    \"sm\": \"8px\"\n  }\n}\n", string(js))
}

func TestBuild_JSSourceEscapes(t *testing.T) {
	src := t.TempDir()
	colors := writeFile(t, src, "colors.cjs",
		`module.exports = { lumiere: { a: 'Lumi\u00e8re', b: '\x41', d: '\u{1F600}' } };`)
	dir := t.TempDir()

	_, err := run(t, defaults(), "build", "--out", dir, "--source", colors)
	require.NoError(t, err)

	js, err := os.ReadFile(filepath.Join(dir, "json", "tokens.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"lumiere\": {\n    \"a\": \"Lumière\",\n    \"b\": \"A\",\n    \"d\": \"\U0001F600\"\n  }\n}\n", string(js))
}

func TestBuild_SameSourceTwice(t *testing.T) {
	src := t.TempDir()
	spacing := writeFile(t, src, "spacing.yaml", "spacing:\n  sm: 8px\n")
	dir := t.TempDir()

	_, err := run(t, defaults(), "build", "--out", dir,
		"--source", src+string(filepath.Separator)+"."+string(filepath.Separator)+"spacing.yaml",
		"--source", spacing)
	require.NoError(t, err)
}

func TestBuild_CategoryCollision(t *testing.T) {
	src := t.TempDir()
	a := writeFile(t, src, "a.yaml", "spacing:\n  sm: 8px\n")
	b := writeFile(t, src, "b.yaml", "spacing:\n  md: 16px\n")

	_, err := run(t, defaults(), "build", "--out", t.TempDir(), "--source", a, "--source", b)
	var collision *tokens.CollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, "spacing", collision.Category)
}

func TestBuild_WatchWithoutSources(t *testing.T) {
	_, err := run(t, defaults(), "build", "--out", t.TempDir(), "--watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch needs")
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, defaults(), "build", "--out", dir)
	require.NoError(t, err)

	out, err := run(t, defaults(), "verify", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "are current")

	css := filepath.Join(dir, "css", "tokens.css")
	require.NoError(t, os.WriteFile(css, []byte(":root {\n  --lumiere-navy: red;\n}\n"), 0o644))
	out, err = run(t, defaults(), "verify", "--out", dir)
	require.Error(t, err)
	assert.Contains(t, out, "css/tokens.css: stale")

	require.NoError(t, os.WriteFile(css, []byte(":root {\n"), 0o644))
	out, err = run(t, defaults(), "verify", "--out", dir)
	require.Error(t, err)
	assert.Contains(t, out, "css/tokens.css:")
}

func TestVerify_LintWarningsAreAdvisory(t *testing.T) {
	src := t.TempDir()
	colors := writeFile(t, src, "colors.yaml", "lumiere:\n  odd: \"#12345\"\n")
	dir := t.TempDir()

	_, err := run(t, defaults(), "build", "--out", dir, "--source", colors)
	require.NoError(t, err)
	out, err := run(t, defaults(), "verify", "--out", dir, "--source", colors)
	require.Error(t, err, "missing declared categories fail the contract check")
	assert.Contains(t, out, "warning: css/tokens.css: line 2: --lumiere-odd")
}

func TestVerify_MissingArtifacts(t *testing.T) {
	out, err := run(t, defaults(), "verify", "--out", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 problem(s)")
	assert.Contains(t, out, "json/tokens.json")
}

func TestCheckJSON(t *testing.T) {
	doc := tokens.Default()
	require.NoError(t, checkJSON(emit.JSONDocument(doc), doc))

	err := checkJSON([]byte(`{"lumiere":{},"fonts":{},"fontSizes":{},"spacing":{}}`), doc)
	require.Error(t, err)

	err = checkJSON([]byte(`["lumiere"]`), doc)
	require.Error(t, err)
}

func TestQuery(t *testing.T) {
	out, err := run(t, defaults(), "query", "$.lumiere.navy")
	require.NoError(t, err)
	assert.Equal(t, "\"#1B1F3B\"\n", out)

	out, err = run(t, defaults(), "query", "$.fonts.body")
	require.NoError(t, err)
	assert.Equal(t, "\"Open Sans, sans-serif\"\n", out)

	_, err = run(t, defaults(), "query", "$.shadows")
	require.Error(t, err)

	_, err = run(t, defaults(), "query", "$[")
	require.Error(t, err)
}

func TestOpenPrefs(t *testing.T) {
	store, closeStore, err := openPrefs("")
	require.NoError(t, err)
	require.NotNil(t, store)
	closeStore()

	store, closeStore, err = openPrefs(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), "lumiere-theme", "dark"))
	closeStore()
}
