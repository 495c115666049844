package extractor

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/crateapi/pkg/parser"
)

// ParseFile parses a single Rust source file into its FileModel.
//
// The returned model owns copies of all rendered text; the tree-sitter tree
// is closed before returning.
func ParseFile(source []byte, manager *parser.Manager) (*FileModel, error) {
	tree, err := manager.Parse(source)
	if err != nil {
		return nil, NewParseFailure("failed to parse source file: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	items, err := extractItems(root, source)
	if err != nil {
		return nil, err
	}

	return &FileModel{
		InnerDoc: extractInnerDocComments(root, source),
		Items:    items,
	}, nil
}

// extractItems walks the children of a file or module-block node and
// collects the items the adapter recognises, preserving source order.
func extractItems(node *ts.Node, source []byte) ([]FileItem, error) {
	var items []FileItem

	for _, child := range childNodes(node) {
		switch child.Kind() {
		case "function_item", "struct_item", "enum_item", "trait_item":
			if !isPublic(child) {
				continue
			}
			name, err := extractName(child, source)
			if err != nil {
				return nil, err
			}
			sourceCode, err := symbolSourceCode(child, source)
			if err != nil {
				return nil, err
			}
			items = append(items, SymbolDef{Symbol: Symbol{
				Name:       name,
				SourceCode: sourceCode,
			}})

		case "macro_definition":
			sourceCode, err := macroSourceCode(child, source)
			if err != nil {
				return nil, err
			}
			if sourceCode == "" {
				continue
			}
			name, err := extractName(child, source)
			if err != nil {
				return nil, err
			}
			items = append(items, SymbolDef{Symbol: Symbol{
				Name:       name,
				SourceCode: sourceCode,
			}})

		case "use_declaration":
			reexports, err := extractReexports(child, source)
			if err != nil {
				return nil, err
			}
			for _, reexport := range reexports {
				items = append(items, reexport)
			}

		case "mod_item":
			name, err := extractName(child, source)
			if err != nil {
				return nil, err
			}
			public := isPublic(child)

			if decls := declarationList(child); decls != nil {
				// Module block (`mod foo { ... }`). Private blocks are kept:
				// they may still be traversed during re-export resolution.
				content, err := extractItems(decls, source)
				if err != nil {
					return nil, err
				}
				items = append(items, InlineModule{
					Name:     name,
					IsPublic: public,
					Doc:      extractInnerDocComments(decls, source),
					Items:    content,
				})
			} else {
				// Module declaration (`mod foo;`).
				items = append(items, ExternalModule{
					Name:         name,
					IsReexported: public,
				})
			}
		}
	}

	return items, nil
}
