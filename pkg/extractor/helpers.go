package extractor

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// childNodes collects all children of a node, anonymous tokens included.
func childNodes(node *ts.Node) []*ts.Node {
	count := node.ChildCount()
	children := make([]*ts.Node, 0, count)
	for i := uint(0); i < count; i++ {
		children = append(children, node.Child(i))
	}
	return children
}

// findChild returns the first child whose kind is one of kinds, or nil.
func findChild(node *ts.Node, kinds ...string) *ts.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		for _, kind := range kinds {
			if child.Kind() == kind {
				return child
			}
		}
	}
	return nil
}

// isPublic reports whether a node carries a visibility modifier. Restricted
// forms like pub(crate) count as public; only final reachability from public
// modules decides inclusion.
func isPublic(node *ts.Node) bool {
	return findChild(node, "visibility_modifier") != nil
}

// declarationList returns the braced declaration list of a mod or trait
// item, nil for declarations without a body (`mod foo;`).
func declarationList(node *ts.Node) *ts.Node {
	return findChild(node, "declaration_list")
}

// extractAttributes collects the attribute items immediately preceding a
// node, in source order.
func extractAttributes(node *ts.Node, source []byte) []string {
	var items []string
	for current := node.PrevSibling(); current != nil; current = current.PrevSibling() {
		if current.Kind() != "attribute_item" {
			break
		}
		items = append(items, current.Utf8Text(source))
	}

	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items
}

// extractName returns the identifier of an item node.
func extractName(node *ts.Node, source []byte) (string, error) {
	name := findChild(node, "identifier", "type_identifier")
	if name == nil {
		return "", NewMalformed("failed to extract name from %s node", node.Kind())
	}
	return name.Utf8Text(source), nil
}
