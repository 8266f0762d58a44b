// Package emit turns a token document into artifact text.
//
// Every function here is pure: the same document always yields the same
// bytes. Writing the result somewhere is the job of an artifact.Sink.
package emit

import (
	"bytes"
	"fmt"

	"github.com/agentic-research/lumiere/api"
)

// ModuleExport is the name of the constant the module artifact exports.
const ModuleExport = "lumiereTokens"

// CSSVarPrefix prefixes every custom property in the stylesheet artifact.
const CSSVarPrefix = "--lumiere-"

// Artifact is one rendered representation of a document.
type Artifact struct {
	Format Format
	// Name is a build path relative to the output root, or a download
	// filename.
	Name        string
	ContentType string
	Body        []byte
}

// Render produces the artifact for f, named by its build path.
func Render(f Format, doc *api.Document) (Artifact, error) {
	var body []byte
	switch f {
	case CSS:
		body = Stylesheet(doc)
	case Module:
		body = ModuleSource(doc)
	case Declaration:
		body = DeclarationSource()
	case JSON:
		body = JSONDocument(doc)
	default:
		return Artifact{}, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
	return Artifact{Format: f, Name: f.BuildPath(), ContentType: f.ContentType(), Body: body}, nil
}

// RenderDownload produces a downloadable artifact named lumiere.tokens.<ext>.
func RenderDownload(f Format, doc *api.Document) (Artifact, error) {
	if !f.Downloadable() {
		return Artifact{}, fmt.Errorf("%w: %q is not downloadable", ErrUnknownFormat, string(f))
	}
	a, err := Render(f, doc)
	if err != nil {
		return Artifact{}, err
	}
	a.Name = f.DownloadName()
	return a, nil
}

// RenderAll renders every format in build order.
func RenderAll(doc *api.Document) []Artifact {
	out := make([]Artifact, 0, len(formats))
	for _, f := range Formats() {
		a, _ := Render(f, doc) // Formats only lists known formats
		out = append(out, a)
	}
	return out
}

// Stylesheet renders the color category as custom properties on :root.
// Only the "lumiere" category is read; when it is missing or empty the
// block has an empty body.
func Stylesheet(doc *api.Document) []byte {
	var buf bytes.Buffer
	buf.WriteString(":root {\n")
	if c, ok := doc.Category(api.CategoryColors); ok {
		for _, t := range c.Tokens {
			fmt.Fprintf(&buf, "  %s%s: %s;\n", CSSVarPrefix, t.Name, t.Value)
		}
	}
	buf.WriteString("}\n")
	return buf.Bytes()
}

// ModuleSource renders an ES module binding the whole document to
// ModuleExport, using the same layout as JSONDocument.
func ModuleSource(doc *api.Document) []byte {
	var buf bytes.Buffer
	buf.WriteString("export const " + ModuleExport + " = ")
	writeDocument(&buf, doc)
	buf.WriteString(";\n")
	return buf.Bytes()
}

const declarationSource = `export declare const lumiereTokens: {
  lumiere: Record<string, string>;
  fonts: Record<string, string>;
  fontSizes: Record<string, string>;
  spacing: Record<string, string>;
};
`

// DeclarationSource returns the hand-authored type declaration for the
// module artifact. It is a fixed contract (see api.DeclaredCategories) and
// deliberately ignores the document.
func DeclarationSource() []byte {
	return []byte(declarationSource)
}

// JSONDocument renders the document as two-space indented JSON with keys
// in document order and a trailing newline.
func JSONDocument(doc *api.Document) []byte {
	var buf bytes.Buffer
	writeDocument(&buf, doc)
	buf.WriteByte('\n')
	return buf.Bytes()
}
