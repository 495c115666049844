// Package resolver matches symbol references with their declarations and
// computes the public module paths at which each symbol is visible.
package resolver

import (
	"strings"

	"github.com/gnana997/crateapi/pkg/extractor"
)

// ResolvedSymbol is a symbol together with the qualified names of the
// modules where it appears. Modules is duplicate-free and keeps
// first-insertion order.
type ResolvedSymbol struct {
	Symbol  extractor.Symbol
	Modules []string
}

// Resolution is the output of the resolution stage.
type Resolution struct {
	// Symbols lists every symbol that survived the visibility filter, in
	// declaration-table insertion order.
	Symbols []*ResolvedSymbol

	// Docs maps qualified module names to their inner doc comments.
	Docs map[string]string
}

// Reference is a normalised re-export: SourcePath carries no crate::,
// super:: or self:: qualifiers.
type Reference struct {
	SourcePath        string
	ReferencingModule string
	Kind              extractor.ImportType
	Alias             string
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "::" + name
}

func lastSegment(path string) string {
	if idx := strings.LastIndex(path, "::"); idx >= 0 {
		return path[idx+2:]
	}
	return path
}

// parentPath returns everything before the final segment, "" for
// single-segment paths.
func parentPath(path string) string {
	if idx := strings.LastIndex(path, "::"); idx >= 0 {
		return path[:idx]
	}
	return ""
}
