// Doc comment collection.
//
// The Rust grammar marks doc comments with dedicated child nodes: a
// line_comment or block_comment node is a doc comment when it carries both a
// marker child (outer_doc_comment_marker / inner_doc_comment_marker) and a
// doc_comment child.
package extractor

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

type docCommentMarker string

const (
	outerMarker docCommentMarker = "outer_doc_comment_marker"
	innerMarker docCommentMarker = "inner_doc_comment_marker"
)

func isDocComment(node *ts.Node, marker docCommentMarker) bool {
	return findChild(node, string(marker)) != nil && findChild(node, "doc_comment") != nil
}

// extractOuterDocComments collects the outer doc comment (`///` lines or a
// single `/** */` block) immediately preceding a node, skipping any attribute
// items in between. A regular comment stops collection.
func extractOuterDocComments(node *ts.Node, source []byte) string {
	previous := node.PrevSibling()
	if previous == nil {
		return ""
	}

	previous = skipPrecedingAttributes(previous)

	if previous.Kind() == "block_comment" && isDocComment(previous, outerMarker) {
		return withTrailingNewline(previous.Utf8Text(source))
	}

	return extractPrecedingLineDocComments(previous, source)
}

func skipPrecedingAttributes(node *ts.Node) *ts.Node {
	for node.Kind() == "attribute_item" {
		prev := node.PrevSibling()
		if prev == nil {
			break
		}
		node = prev
	}
	return node
}

func extractPrecedingLineDocComments(node *ts.Node, source []byte) string {
	var lines []string

	for node != nil && node.Kind() == "line_comment" {
		if !isDocComment(node, outerMarker) {
			break
		}
		lines = append(lines, withTrailingNewline(node.Utf8Text(source)))
		node = node.PrevSibling()
	}

	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return strings.Join(lines, "")
}

// extractInnerDocComments collects the `//!` comment at the top of a file or
// module block, stopping at the first node that is neither a doc comment nor
// a block delimiter.
func extractInnerDocComments(node *ts.Node, source []byte) string {
	var doc strings.Builder
	for _, child := range childNodes(node) {
		if child.Kind() == "line_comment" {
			if !isDocComment(child, innerMarker) {
				break
			}
			doc.WriteString(withTrailingNewline(child.Utf8Text(source)))
			continue
		}
		if !isBlockDelimiter(child) {
			break
		}
	}
	return doc.String()
}

func isBlockDelimiter(node *ts.Node) bool {
	kind := node.Kind()
	return kind == "{" || kind == "}"
}

func withTrailingNewline(text string) string {
	if strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}
