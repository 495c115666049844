// Package namespace groups resolved symbols into the final package-prefixed
// namespace list.
package namespace

import (
	"sort"
	"strings"

	"github.com/gnana997/crateapi/pkg/extractor"
	"github.com/gnana997/crateapi/pkg/resolver"
)

// Namespace is one publicly reachable module path together with the symbols
// visible at it.
type Namespace struct {
	// Name is the package-prefixed qualified path, e.g. "my_crate" or
	// "my_crate::formatting".
	Name string

	// Doc is the module's inner doc comment, empty when absent.
	Doc string

	// Symbols keep insertion order, which tracks the source order of the
	// originating modules.
	Symbols []extractor.Symbol
}

// Construct groups each resolved symbol under every module path it is
// visible at. The package name has hyphens replaced with underscores; no
// other transform is applied.
//
// Namespaces are ordered by ::-depth ascending, then lexicographically.
func Construct(resolution *resolver.Resolution, packageName string) []Namespace {
	packageName = strings.ReplaceAll(packageName, "-", "_")

	byName := make(map[string]*Namespace)
	var names []string

	for _, resolved := range resolution.Symbols {
		for _, modulePath := range resolved.Modules {
			name := packageName
			if modulePath != "" {
				name = packageName + "::" + modulePath
			}

			ns, ok := byName[name]
			if !ok {
				ns = &Namespace{
					Name: name,
					Doc:  resolution.Docs[modulePath],
				}
				byName[name] = ns
				names = append(names, name)
			}
			ns.Symbols = append(ns.Symbols, resolved.Symbol)
		}
	}

	namespaces := make([]Namespace, 0, len(names))
	for _, name := range names {
		namespaces = append(namespaces, *byName[name])
	}

	sort.SliceStable(namespaces, func(i, j int) bool {
		depthI := strings.Count(namespaces[i].Name, "::")
		depthJ := strings.Count(namespaces[j].Name, "::")
		if depthI != depthJ {
			return depthI < depthJ
		}
		return namespaces[i].Name < namespaces[j].Name
	})
	return namespaces
}
