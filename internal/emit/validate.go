package emit

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentic-research/lumiere/internal/syntax"
	"github.com/ohler55/ojg/oj"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ValidationError contains structured information about a syntax error
// in an artifact.
type ValidationError struct {
	Name    string
	Line    uint32 // 0-indexed
	Column  uint32 // 0-indexed
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Name, e.Line+1, e.Column+1, e.Message)
}

// Validate parses an artifact body and returns a *ValidationError if it is
// not syntactically valid for its format. The format is taken from the
// name's suffix; unknown suffixes pass through.
func Validate(name string, body []byte) error {
	if strings.HasSuffix(name, ".json") {
		if _, err := oj.Parse(body); err != nil {
			return &ValidationError{Name: name, Message: err.Error()}
		}
		return nil
	}

	lang := languageFor(name)
	if lang == nil {
		return nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, body)
	if err != nil {
		return fmt.Errorf("tree-sitter parse failed for %s: %w", name, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return fmt.Errorf("tree-sitter returned nil root for %s", name)
	}
	if !root.HasError() {
		return nil
	}

	if errNode := syntax.FirstError(root); errNode != nil {
		return &ValidationError{
			Name:    name,
			Line:    errNode.StartPoint().Row,
			Column:  errNode.StartPoint().Column,
			Message: "syntax error in AST",
		}
	}
	return &ValidationError{Name: name, Message: "AST contains errors"}
}

// languageFor maps artifact names to tree-sitter grammars. ".d.ts" must be
// checked before ".js"-style suffixes.
func languageFor(name string) *sitter.Language {
	switch {
	case strings.HasSuffix(name, ".d.ts"), strings.HasSuffix(name, ".ts"):
		return typescript.GetLanguage()
	case strings.HasSuffix(name, ".js"), strings.HasSuffix(name, ".mjs"):
		return javascript.GetLanguage()
	case strings.HasSuffix(name, ".css"):
		return css.GetLanguage()
	default:
		return nil
	}
}
