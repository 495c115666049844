// Re-export extraction from use declarations.
package extractor

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

const rawIdentifierPrefix = "r#"

// extractReexports converts a `pub use` declaration into Reexport items.
//
// Supported shapes:
//
//	pub use a::b;          → one simple re-export of a::b
//	pub use a::b as c;     → one aliased re-export of a::b under c
//	pub use a::{b, c};     → one simple re-export per listed name
//	pub use a::*;          → one wildcard re-export of module a
//	pub use extern_crate;  → one simple re-export of the bare crate name
//
// Private `use` declarations yield nothing. A use declaration matching none
// of the shapes is Malformed.
func extractReexports(useDecl *ts.Node, source []byte) ([]Reexport, error) {
	if !isPublic(useDecl) {
		return nil, nil
	}

	var (
		reexports []Reexport
		err       error
	)
	switch {
	case findChild(useDecl, "scoped_identifier") != nil:
		reexports, err = extractSingleReexport(findChild(useDecl, "scoped_identifier"), source)
	case findChild(useDecl, "use_as_clause") != nil:
		reexports, err = extractRenamedReexport(findChild(useDecl, "use_as_clause"), source)
	case findChild(useDecl, "scoped_use_list") != nil:
		reexports, err = extractMultiReexports(findChild(useDecl, "scoped_use_list"), source)
	case findChild(useDecl, "use_wildcard") != nil:
		reexports, err = extractWildcardReexport(findChild(useDecl, "use_wildcard"), source)
	case findChild(useDecl, "identifier") != nil:
		reexports = []Reexport{{
			SourcePath: findChild(useDecl, "identifier").Utf8Text(source),
			Kind:       ImportSimple,
		}}
	default:
		return nil, NewMalformed("failed to find symbol reexport: %s", useDecl.Utf8Text(source))
	}
	if err != nil {
		return nil, err
	}

	return normalizeRawIdentifiers(reexports), nil
}

func extractSingleReexport(scoped *ts.Node, source []byte) ([]Reexport, error) {
	return []Reexport{{
		SourcePath: scoped.Utf8Text(source),
		Kind:       ImportSimple,
	}}, nil
}

func extractRenamedReexport(useAs *ts.Node, source []byte) ([]Reexport, error) {
	children := childNodes(useAs)
	if len(children) == 0 {
		return nil, NewMalformed("empty use_as clause")
	}

	sourcePath := children[0].Utf8Text(source)

	var alias string
	for _, child := range children[1:] {
		if child.Kind() == "identifier" {
			alias = child.Utf8Text(source)
		}
	}
	if alias == "" {
		return nil, NewMalformed("no alias found in use_as clause")
	}

	return []Reexport{{
		SourcePath: sourcePath,
		Kind:       ImportAliased,
		Alias:      alias,
	}}, nil
}

func extractMultiReexports(scopedList *ts.Node, source []byte) ([]Reexport, error) {
	children := childNodes(scopedList)
	if len(children) == 0 {
		return nil, NewMalformed("empty scoped use list")
	}

	pathPrefix := children[0].Utf8Text(source)

	useList := findChild(scopedList, "use_list")
	if useList == nil {
		return nil, NewMalformed("no use list found")
	}

	var reexports []Reexport
	for _, item := range childNodes(useList) {
		if item.Kind() != "identifier" {
			continue
		}
		reexports = append(reexports, Reexport{
			SourcePath: pathPrefix + "::" + item.Utf8Text(source),
			Kind:       ImportSimple,
		})
	}
	return reexports, nil
}

func extractWildcardReexport(wildcard *ts.Node, source []byte) ([]Reexport, error) {
	modulePath := findChild(wildcard, "identifier", "scoped_identifier")
	if modulePath == nil {
		return nil, NewMalformed("failed to find module path in wildcard import: %s",
			wildcard.Utf8Text(source))
	}

	return []Reexport{{
		SourcePath: modulePath.Utf8Text(source),
		Kind:       ImportWildcard,
	}}, nil
}

// normalizeRawIdentifiers strips the r# raw-identifier marker from every
// path segment and alias.
func normalizeRawIdentifiers(reexports []Reexport) []Reexport {
	for i := range reexports {
		segments := strings.Split(reexports[i].SourcePath, "::")
		for j := range segments {
			segments[j] = strings.TrimPrefix(segments[j], rawIdentifierPrefix)
		}
		reexports[i].SourcePath = strings.Join(segments, "::")
		reexports[i].Alias = strings.TrimPrefix(reexports[i].Alias, rawIdentifierPrefix)
	}
	return reexports
}
