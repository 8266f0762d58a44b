package source

import (
	"context"
	"fmt"
	"slices"

	"github.com/agentic-research/lumiere/api"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// HCLLoader reads token records from HCL. Each top-level attribute is a
// category whose value is an object of string tokens:
//
//	spacing = {
//	  sm    = "8px"
//	  "2xl" = "48px"
//	}
type HCLLoader struct{}

func NewHCLLoader() *HCLLoader {
	return &HCLLoader{}
}

// Load implements Loader.
func (l *HCLLoader) Load(_ context.Context, path string, src []byte) (Record, error) {
	file, diags := hclsyntax.ParseConfig(src, path, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return Record{}, diagError(path, diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return Record{}, &Error{Path: path, Message: "unexpected HCL body"}
	}
	if len(body.Blocks) > 0 {
		b := body.Blocks[0]
		return Record{}, rangeError(path, b.DefRange(), fmt.Sprintf("blocks are not supported (found %q)", b.Type))
	}

	// Attributes come back as a map; restore source order.
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, a := range body.Attributes {
		attrs = append(attrs, a)
	}
	slices.SortFunc(attrs, func(a, b *hclsyntax.Attribute) int {
		return a.SrcRange.Start.Byte - b.SrcRange.Start.Byte
	})

	rec := Record{Origin: path}
	for _, a := range attrs {
		obj, ok := a.Expr.(*hclsyntax.ObjectConsExpr)
		if !ok {
			return Record{}, rangeError(path, a.Expr.Range(), fmt.Sprintf("category %q must be an object", a.Name))
		}
		cat := api.Category{Name: a.Name}
		for _, item := range obj.Items {
			key, err := stringValue(path, item.KeyExpr, "token name")
			if err != nil {
				return Record{}, err
			}
			val, err := stringValue(path, item.ValueExpr, "token value")
			if err != nil {
				return Record{}, err
			}
			cat.Tokens = setToken(cat.Tokens, key, val)
		}
		rec.Categories = append(rec.Categories, cat)
	}
	return rec, nil
}

func stringValue(path string, expr hcl.Expression, what string) (string, error) {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diagError(path, diags)
	}
	if v.IsNull() || !v.IsKnown() || v.Type() != cty.String {
		return "", rangeError(path, expr.Range(), fmt.Sprintf("%s must be a string, got %s", what, v.Type().FriendlyName()))
	}
	return v.AsString(), nil
}

func diagError(path string, diags hcl.Diagnostics) *Error {
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		msg := d.Summary
		if d.Detail != "" {
			msg += ": " + d.Detail
		}
		if d.Subject != nil {
			return rangeError(path, *d.Subject, msg)
		}
		return &Error{Path: path, Message: msg}
	}
	return &Error{Path: path, Message: diags.Error()}
}

func rangeError(path string, r hcl.Range, msg string) *Error {
	return &Error{Path: path, Line: r.Start.Line, Column: r.Start.Column, Message: msg}
}
