// Symbol signature rendering.
package extractor

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// symbolSourceCode renders the display source of a symbol node: outer doc
// comment, then preceding attributes, then the declaration itself.
//
// Function bodies are replaced by `;`; traits are re-rendered with each
// method reduced to its signature; structs and enums keep their verbatim
// source.
func symbolSourceCode(node *ts.Node, source []byte) (string, error) {
	var rendered strings.Builder

	rendered.WriteString(extractOuterDocComments(node, source))

	if attributes := extractAttributes(node, source); len(attributes) > 0 {
		rendered.WriteString(strings.Join(attributes, "\n"))
		rendered.WriteString("\n")
	}

	switch node.Kind() {
	case "function_item", "function_signature_item":
		signature, err := functionSignature(node, source)
		if err != nil {
			return "", err
		}
		rendered.WriteString(signature)

	case "trait_item":
		traitSource, err := traitSourceCode(node, source)
		if err != nil {
			return "", err
		}
		rendered.WriteString(traitSource)

	default:
		rendered.WriteString(node.Utf8Text(source))
	}

	return rendered.String(), nil
}

// functionSignature truncates a function item at its body block.
//
// function_signature_item nodes (body-less trait methods) already end with
// `;` and are emitted verbatim.
func functionSignature(node *ts.Node, source []byte) (string, error) {
	block := findChild(node, "block")
	if block == nil {
		if node.Kind() == "function_signature_item" {
			return node.Utf8Text(source), nil
		}
		return "", NewMalformed("failed to find function block")
	}

	header := string(source[node.StartByte():block.StartByte()])
	return strings.TrimRight(header, " \t\n") + ";", nil
}

// traitSourceCode re-renders a trait with each method reduced to its
// signature, indented one level.
func traitSourceCode(node *ts.Node, source []byte) (string, error) {
	decls := declarationList(node)
	if decls == nil {
		return "", NewMalformed("failed to find trait declaration list")
	}

	var trait strings.Builder
	trait.WriteString(string(source[node.StartByte():decls.StartByte()]))
	trait.WriteString("{\n")

	for _, method := range childNodes(decls) {
		kind := method.Kind()
		if kind != "function_item" && kind != "function_signature_item" {
			continue
		}
		methodSource, err := symbolSourceCode(method, source)
		if err != nil {
			return "", err
		}
		for _, line := range strings.Split(methodSource, "\n") {
			trait.WriteString("    ")
			trait.WriteString(line)
			trait.WriteString("\n")
		}
	}

	trait.WriteString("}")
	return trait.String(), nil
}
