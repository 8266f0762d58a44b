// Package source loads design-token source records.
//
// A Record is one source of categories: a built-in Go value (see Builtin)
// or a file parsed by one of the registered loaders. Records carry their
// categories in source order; the aggregator relies on that order.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/agentic-research/lumiere/api"
	"github.com/bmatcuk/doublestar/v4"
)

// Record is a single token source: an origin label plus the categories it
// defines, in source order.
type Record struct {
	// Origin names where the record came from (a file path or "builtin:<name>").
	Origin     string
	Categories []api.Category
}

// Error is a positioned source error. Line and Column are 1-based; zero
// means the position is unknown.
type Error struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
}

// Loader parses one source file into a Record.
type Loader interface {
	Load(ctx context.Context, path string, src []byte) (Record, error)
}

var loaders = map[string]Loader{
	".js":   NewJSLoader(),
	".cjs":  NewJSLoader(),
	".mjs":  NewJSLoader(),
	".hcl":  NewHCLLoader(),
	".yaml": NewYAMLLoader(),
	".yml":  NewYAMLLoader(),
	".json": NewYAMLLoader(),
}

// LoaderFor returns the loader registered for the file's extension.
func LoaderFor(path string) (Loader, bool) {
	l, ok := loaders[strings.ToLower(filepath.Ext(path))]
	return l, ok
}

// Extensions lists the file extensions a loader is registered for.
func Extensions() []string {
	exts := make([]string, 0, len(loaders))
	for ext := range loaders {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// LoadFile reads and parses a single source file.
func LoadFile(ctx context.Context, path string) (Record, error) {
	l, ok := LoaderFor(path)
	if !ok {
		return Record{}, &Error{Path: path, Message: fmt.Sprintf("no loader for %q files", filepath.Ext(path))}
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("read source: %w", err)
	}
	if !utf8.Valid(src) {
		return Record{}, &Error{Path: path, Message: "source is not valid UTF-8"}
	}
	return l.Load(ctx, path, src)
}

// LoadFiles loads each path in order.
func LoadFiles(ctx context.Context, paths []string) ([]Record, error) {
	records := make([]Record, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := LoadFile(ctx, p)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Discover expands doublestar patterns relative to root. Matches are
// de-duplicated and sorted so discovery order is stable across runs.
func Discover(root string, patterns []string) ([]string, error) {
	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if _, ok := LoaderFor(m); !ok {
				continue
			}
			p := filepath.Join(root, filepath.FromSlash(m))
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	slices.Sort(out)
	return out, nil
}

// Resolve returns the records a build should use: explicit paths in the
// order given, then glob matches, or the built-in records when neither
// is set. A file named more than once, by any spelling of its path, is
// loaded once at its first position.
func Resolve(ctx context.Context, root string, paths, globs []string) ([]Record, error) {
	if len(paths) == 0 && len(globs) == 0 {
		return Builtin(), nil
	}
	var all []string
	seen := make(map[string]bool)
	add := func(p string) {
		key := p
		if abs, err := filepath.Abs(p); err == nil {
			key = abs
		}
		if !seen[key] {
			seen[key] = true
			all = append(all, filepath.Clean(p))
		}
	}
	for _, p := range paths {
		add(p)
	}
	if len(globs) > 0 {
		found, err := Discover(root, globs)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no token sources matched %v", globs)
	}
	return LoadFiles(ctx, all)
}

// setToken inserts or overwrites a token. An overwritten token keeps its
// original position, matching object-literal semantics in the JS sources.
func setToken(tokens []api.Token, name, value string) []api.Token {
	for i := range tokens {
		if tokens[i].Name == name {
			tokens[i].Value = value
			return tokens
		}
	}
	return append(tokens, api.Token{Name: name, Value: value})
}

// setCategory is setToken for categories within one record.
func setCategory(cats []api.Category, c api.Category) []api.Category {
	for i := range cats {
		if cats[i].Name == c.Name {
			cats[i].Tokens = c.Tokens
			return cats
		}
	}
	return append(cats, c)
}
