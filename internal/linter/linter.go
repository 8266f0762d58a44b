// Package linter reports suspicious token values in a rendered
// stylesheet. Findings are advisory; the build never rejects a value.
package linter

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"
)

type Diagnostic struct {
	Property string
	Message  string
	Line     uint32
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %s", d.Line+1, d.Property, d.Message)
}

// declarations matches every custom property with its value nodes.
const declarations = `
	(declaration
		(property_name) @prop
	) @decl
`

// Lint checks a stylesheet produced by the css emitter.
func Lint(stylesheet []byte) ([]Diagnostic, error) {
	lang := css.GetLanguage()
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)
	tree, err := parser.ParseCtx(context.Background(), nil, stylesheet)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	q, err := sitter.NewQuery([]byte(declarations), lang)
	if err != nil {
		return nil, err
	}
	defer q.Close()
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, tree.RootNode())

	var diags []Diagnostic
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		var prop string
		var decl *sitter.Node
		for _, c := range m.Captures {
			switch q.CaptureNameForId(c.Index) {
			case "prop":
				prop = c.Node.Content(stylesheet)
			case "decl":
				decl = c.Node
			}
		}
		if decl == nil {
			continue
		}
		diags = append(diags, checkDeclaration(prop, decl, stylesheet)...)
	}
	return diags, nil
}

func checkDeclaration(prop string, decl *sitter.Node, src []byte) []Diagnostic {
	var diags []Diagnostic
	values := 0
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		v := decl.NamedChild(i)
		if v.Type() == "property_name" {
			continue
		}
		values++
		if v.Type() != "color_value" {
			continue
		}
		hex := strings.TrimPrefix(v.Content(src), "#")
		switch len(hex) {
		case 3, 4, 6, 8:
		default:
			diags = append(diags, Diagnostic{
				Property: prop,
				Message:  fmt.Sprintf("hex color #%s has %d digits, want 3, 4, 6 or 8", hex, len(hex)),
				Line:     v.StartPoint().Row,
			})
		}
	}
	if values == 0 {
		diags = append(diags, Diagnostic{
			Property: prop,
			Message:  "empty value",
			Line:     decl.StartPoint().Row,
		})
	}
	return diags
}
