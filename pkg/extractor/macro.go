// Exported macro rendering.
package extractor

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

const macroExportAttribute = "#[macro_export]"

// macroSourceCode renders a macro_rules! definition carrying #[macro_export]
// as doc comment, the export attribute and a `;`-terminated header.
//
// Returns "" (no error) for macros without the export attribute; they are
// not part of the public API.
func macroSourceCode(node *ts.Node, source []byte) (string, error) {
	var rendered strings.Builder

	rendered.WriteString(extractOuterDocComments(node, source))

	exported := false
	for sibling := node.PrevSibling(); sibling != nil; sibling = sibling.PrevSibling() {
		kind := sibling.Kind()
		if kind == "line_comment" || kind == "block_comment" {
			continue
		}
		if kind != "attribute_item" {
			break
		}
		if sibling.Utf8Text(source) == macroExportAttribute {
			exported = true
			rendered.WriteString(macroExportAttribute)
			rendered.WriteString("\n")
			break
		}
	}
	if !exported {
		return "", nil
	}

	brace := findChild(node, "{")
	if brace == nil {
		return "", NewMalformed("failed to find macro body")
	}

	header := string(source[node.StartByte():brace.StartByte()])
	rendered.WriteString(strings.TrimRight(header, " \t\n"))
	rendered.WriteString(";")

	return rendered.String(), nil
}
