// Package extractor turns single Rust source files into structural file
// models: the symbols they define, the re-exports they declare, and the
// module declarations they contain.
//
// The package owns the shared Symbol type and the ExtractionError taxonomy
// used by every later pipeline stage.
package extractor

// Symbol is a publicly visible item together with its rendered declaration.
//
// SourceCode is self-contained display text: outer doc comment, attributes
// and the signature (function bodies replaced by `;`, structs and enums kept
// verbatim).
type Symbol struct {
	Name       string
	SourceCode string
}

// ImportType identifies the shape of a re-export.
type ImportType string

const (
	// ImportSimple is a direct re-export (e.g. `pub use submodule::Foo;`)
	ImportSimple ImportType = "simple"
	// ImportWildcard fans out over a module (e.g. `pub use submodule::*;`)
	ImportWildcard ImportType = "wildcard"
	// ImportAliased renames a single item (e.g. `pub use submodule::Foo as Bar;`)
	ImportAliased ImportType = "aliased"
)

// FileItem is one top-level item recognised by the adapter. It is a closed
// sum: SymbolDef, Reexport, InlineModule and ExternalModule are the only
// implementations.
type FileItem interface {
	fileItem()
}

// SymbolDef is a public symbol definition.
type SymbolDef struct {
	Symbol Symbol
}

// Reexport is a `pub use` declaration. SourcePath is the colon-separated
// path as written (raw-identifier markers stripped); Alias is set only when
// Kind is ImportAliased.
type Reexport struct {
	SourcePath string
	Kind       ImportType
	Alias      string
}

// InlineModule is a module block (`mod foo { ... }`). Private blocks are
// retained with IsPublic=false because they may still participate in
// re-export resolution.
type InlineModule struct {
	Name     string
	IsPublic bool
	Doc      string
	Items    []FileItem
}

// ExternalModule is a module declaration (`mod foo;`) resolved against the
// filesystem by the module collector.
type ExternalModule struct {
	Name         string
	IsReexported bool
}

func (SymbolDef) fileItem()      {}
func (Reexport) fileItem()       {}
func (InlineModule) fileItem()   {}
func (ExternalModule) fileItem() {}

// FileModel is the structural model of a single parsed source file.
//
// Items preserve source order. InnerDoc holds the file-level `//!` comment,
// empty when absent.
type FileModel struct {
	InnerDoc string
	Items    []FileItem
}
