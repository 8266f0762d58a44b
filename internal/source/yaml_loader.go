package source

import (
	"context"
	"fmt"

	"github.com/agentic-research/lumiere/api"
	"gopkg.in/yaml.v3"
)

// YAMLLoader reads token records from YAML or JSON documents whose root is
// a mapping of category name to a mapping of string tokens. Decoding goes
// through yaml.Node so mapping order survives.
type YAMLLoader struct{}

func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{}
}

// Load implements Loader.
func (l *YAMLLoader) Load(_ context.Context, path string, src []byte) (Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return Record{}, &Error{Path: path, Message: err.Error()}
	}

	rec := Record{Origin: path}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return rec, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return Record{}, yamlError(path, root, "root must be a mapping of categories")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if v.Kind != yaml.MappingNode {
			return Record{}, yamlError(path, v, fmt.Sprintf("category %q must be a mapping", k.Value))
		}
		cat := api.Category{Name: k.Value}
		for j := 0; j+1 < len(v.Content); j += 2 {
			tk, tv := v.Content[j], v.Content[j+1]
			if tv.Kind != yaml.ScalarNode || tv.Tag != "!!str" {
				return Record{}, yamlError(path, tv, fmt.Sprintf("token %s.%s must be a string", k.Value, tk.Value))
			}
			cat.Tokens = setToken(cat.Tokens, tk.Value, tv.Value)
		}
		rec.Categories = setCategory(rec.Categories, cat)
	}
	return rec, nil
}

func yamlError(path string, n *yaml.Node, msg string) *Error {
	return &Error{Path: path, Line: n.Line, Column: n.Column, Message: msg}
}
