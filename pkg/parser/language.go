package parser

import (
	"path/filepath"
	"strings"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

// LanguagePointer returns the raw tree-sitter grammar pointer for Rust.
//
// Hosts embedding several extractors use this to initialise their own
// parsers; Manager uses it internally.
func LanguagePointer() unsafe.Pointer {
	return ts_rust.Language()
}

// Language returns the tree-sitter language for Rust.
func Language() *ts.Language {
	return ts.NewLanguage(LanguagePointer())
}

// IsRustFile checks if a file path represents a Rust source file.
func IsRustFile(filePath string) bool {
	return strings.ToLower(filepath.Ext(filePath)) == ".rs"
}
