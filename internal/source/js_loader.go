package source

import (
	"context"
	"fmt"

	"github.com/agentic-research/lumiere/api"
	"github.com/agentic-research/lumiere/internal/syntax"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// JSLoader reads token records from JavaScript modules. The exported value
// must be an object literal of object literals of strings, exported as
// `module.exports = {...}`, `export default {...}` or `export const x = {...}`.
type JSLoader struct{}

func NewJSLoader() *JSLoader {
	return &JSLoader{}
}

// Load implements Loader.
func (l *JSLoader) Load(ctx context.Context, path string, src []byte) (Record, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return Record{}, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return Record{}, nodeError(path, syntax.FirstError(root), "syntax error")
	}

	obj := exportedObject(root, src)
	if obj == nil {
		return Record{}, &Error{Path: path, Message: "no exported object literal"}
	}

	rec := Record{Origin: path}
	err = eachPair(path, obj, src, func(name string, value *sitter.Node) error {
		if value.Type() != "object" {
			return nodeError(path, value, fmt.Sprintf("category %q must be an object literal, got %s", name, value.Type()))
		}
		cat := api.Category{Name: name}
		err := eachPair(path, value, src, func(token string, v *sitter.Node) error {
			s, err := stringLiteral(path, v, src)
			if err != nil {
				return err
			}
			cat.Tokens = setToken(cat.Tokens, token, s)
			return nil
		})
		if err != nil {
			return err
		}
		rec.Categories = setCategory(rec.Categories, cat)
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// exportedObject finds the first module-level exported object literal.
func exportedObject(root *sitter.Node, src []byte) *sitter.Node {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		switch stmt.Type() {
		case "expression_statement":
			expr := stmt.NamedChild(0)
			if expr == nil || expr.Type() != "assignment_expression" {
				continue
			}
			left := expr.ChildByFieldName("left")
			right := expr.ChildByFieldName("right")
			if left != nil && right != nil && left.Content(src) == "module.exports" && right.Type() == "object" {
				return right
			}
		case "export_statement":
			if v := stmt.ChildByFieldName("value"); v != nil && v.Type() == "object" {
				return v
			}
			decl := stmt.ChildByFieldName("declaration")
			if decl == nil {
				continue
			}
			for j := 0; j < int(decl.NamedChildCount()); j++ {
				d := decl.NamedChild(j)
				if d.Type() != "variable_declarator" {
					continue
				}
				if v := d.ChildByFieldName("value"); v != nil && v.Type() == "object" {
					return v
				}
			}
		}
	}
	return nil
}

// eachPair calls fn for every key/value pair of an object literal, in
// source order. Spreads, methods and shorthand properties are rejected.
func eachPair(path string, obj *sitter.Node, src []byte, fn func(key string, value *sitter.Node) error) error {
	for i := 0; i < int(obj.NamedChildCount()); i++ {
		child := obj.NamedChild(i)
		switch child.Type() {
		case "comment":
			continue
		case "pair":
		default:
			return nodeError(path, child, fmt.Sprintf("unsupported object member %s", child.Type()))
		}

		keyNode := child.ChildByFieldName("key")
		value := child.ChildByFieldName("value")
		if keyNode == nil || value == nil {
			return nodeError(path, child, "incomplete pair")
		}

		var key string
		switch keyNode.Type() {
		case "property_identifier", "number":
			key = keyNode.Content(src)
		case "string":
			k, err := unquoteJS(keyNode.Content(src))
			if err != nil {
				return nodeError(path, keyNode, err.Error())
			}
			key = k
		default:
			return nodeError(path, keyNode, fmt.Sprintf("unsupported key %s", keyNode.Type()))
		}

		if err := fn(key, value); err != nil {
			return err
		}
	}
	return nil
}

func stringLiteral(path string, n *sitter.Node, src []byte) (string, error) {
	switch n.Type() {
	case "string":
		return literalValue(path, n, src)
	case "template_string":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if n.NamedChild(i).Type() == "template_substitution" {
				return "", nodeError(path, n, "template substitutions are not allowed in token values")
			}
		}
		return literalValue(path, n, src)
	default:
		return "", nodeError(path, n, fmt.Sprintf("token value must be a string, got %s", n.Type()))
	}
}

func literalValue(path string, n *sitter.Node, src []byte) (string, error) {
	v, err := unquoteJS(n.Content(src))
	if err != nil {
		return "", nodeError(path, n, err.Error())
	}
	return v, nil
}

func nodeError(path string, n *sitter.Node, msg string) *Error {
	if n == nil {
		return &Error{Path: path, Message: msg}
	}
	p := n.StartPoint()
	return &Error{Path: path, Line: int(p.Row) + 1, Column: int(p.Column) + 1, Message: msg}
}
