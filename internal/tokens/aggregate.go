// Package tokens merges source records into the unified token document.
package tokens

import (
	"fmt"

	"github.com/agentic-research/lumiere/api"
	"github.com/agentic-research/lumiere/internal/source"
)

// CollisionError reports a category defined by more than one record.
type CollisionError struct {
	Category string
	First    string
	Second   string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("category %q defined by both %s and %s", e.Category, e.First, e.Second)
}

// Aggregate returns the union of the records' categories, in record order.
// Records must be disjoint: a category defined twice is a CollisionError
// rather than a silent overwrite. Token names and values are not validated.
func Aggregate(records ...source.Record) (*api.Document, error) {
	doc := &api.Document{}
	origin := make(map[string]string)
	for _, rec := range records {
		for _, c := range rec.Categories {
			if first, dup := origin[c.Name]; dup {
				return nil, &CollisionError{Category: c.Name, First: first, Second: rec.Origin}
			}
			origin[c.Name] = rec.Origin
			doc.Categories = append(doc.Categories, api.Category{
				Name:   c.Name,
				Tokens: append([]api.Token(nil), c.Tokens...),
			})
		}
	}
	return doc, nil
}

// Default aggregates the built-in records.
func Default() *api.Document {
	doc, err := Aggregate(source.Builtin()...)
	if err != nil {
		// Built-in records are disjoint; TestDefault guards this.
		panic(err)
	}
	return doc
}
