// Package syntax holds tree-sitter helpers shared by the source loaders
// and the artifact validators.
package syntax

import sitter "github.com/smacker/go-tree-sitter"

// FirstError returns the first ERROR or MISSING node in document order,
// or nil when the tree is clean.
func FirstError(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if !child.HasError() && !child.IsMissing() {
			continue
		}
		if found := FirstError(child); found != nil {
			return found
		}
	}
	return nil
}
