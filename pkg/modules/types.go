// Package modules walks a crate's source tree into module directories and
// flattens them into the flat module list consumed by symbol resolution.
package modules

import (
	"github.com/gnana997/crateapi/pkg/extractor"
)

// Directory is a module directory like `src` (with `src/lib.rs`) or
// `src/submodule` (with `src/submodule/mod.rs`).
type Directory struct {
	// QualifiedName is "" for the crate root, "submodule" for
	// `src/submodule/mod.rs`, "submodule::grandchild" for a nested scope.
	QualifiedName string

	// IsPublic records whether the parent re-exports this directory. The
	// root directory is always public.
	IsPublic bool

	// Entry is the parsed entry point (`src/lib.rs`, `src/submodule/mod.rs`).
	Entry *extractor.FileModel

	// InternalFiles maps bare module names to sibling files the entry
	// reached via `mod name;` declarations that resolved to a flat file.
	InternalFiles map[string]*extractor.FileModel
}

// Module is one flattened module: all nesting (inline blocks, sibling
// files) has been hoisted into distinct modules with dotted paths.
type Module struct {
	QualifiedName string
	IsPublic      bool
	Doc           string

	// Items holds only SymbolDef and Reexport entries, in source order.
	Items []extractor.FileItem
}

// joinPath joins a parent qualified name with a child segment.
func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "::" + name
}
