package api

import (
	"fmt"
	"slices"
)

// Well-known category names.
const (
	CategoryColors    = "lumiere"
	CategoryFonts     = "fonts"
	CategoryFontSizes = "fontSizes"
	CategorySpacing   = "spacing"
)

// DeclarationVersion identifies the published shape of the type
// declaration artifact. Bump it whenever DeclaredCategories changes.
const DeclarationVersion = 1

// DeclaredCategories are the categories the declaration artifact promises
// to consumers, in declaration order. The list is hand-maintained and is
// never derived from a live document.
var DeclaredCategories = []string{
	CategoryColors,
	CategoryFonts,
	CategoryFontSizes,
	CategorySpacing,
}

// ShapeError reports why a parsed document is not assignable to the
// declared shape.
type ShapeError struct {
	Category string
	Token    string
	Reason   string
}

func (e *ShapeError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s.%s: %s", e.Category, e.Token, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Reason)
}

// Conforms checks a generically decoded document (as produced by a JSON
// parser) against the declared shape: every declared category must be
// present and be a mapping of strings to strings. Extra categories are
// allowed, as they would be for a structural type.
func Conforms(doc map[string]any) error {
	for _, name := range DeclaredCategories {
		raw, ok := doc[name]
		if !ok {
			return &ShapeError{Category: name, Reason: "missing category"}
		}
		if err := conformsRecord(name, raw); err != nil {
			return err
		}
	}
	for name, raw := range doc {
		if slices.Contains(DeclaredCategories, name) {
			continue
		}
		if _, ok := raw.(map[string]any); !ok {
			return &ShapeError{Category: name, Reason: fmt.Sprintf("expected object, got %T", raw)}
		}
	}
	return nil
}

func conformsRecord(category string, raw any) error {
	rec, ok := raw.(map[string]any)
	if !ok {
		return &ShapeError{Category: category, Reason: fmt.Sprintf("expected object, got %T", raw)}
	}
	for k, v := range rec {
		if _, ok := v.(string); !ok {
			return &ShapeError{Category: category, Token: k, Reason: fmt.Sprintf("expected string, got %T", v)}
		}
	}
	return nil
}
