package resolver

import (
	"regexp"
	"strings"

	"github.com/gnana997/crateapi/pkg/extractor"
	"github.com/gnana997/crateapi/pkg/modules"
)

// Resolve matches references against declarations across all modules,
// public and private alike, and filters the result down to the public
// module paths.
//
// Resolution traverses private modules freely; only the final intersection
// with the public set decides what survives. References that reach outside
// the crate are not errors: they become synthetic `pub use …;` symbols
// visible at the referencing module.
func Resolve(allModules []*modules.Module) (*Resolution, error) {
	r := &resolver{
		modulesByName: make(map[string]*modules.Module, len(allModules)),
		table:         make(map[string]*ResolvedSymbol),
		public:        map[string]bool{"": true},
	}

	for _, module := range allModules {
		if _, seen := r.modulesByName[module.QualifiedName]; !seen {
			r.modulesByName[module.QualifiedName] = module
			r.moduleOrder = append(r.moduleOrder, module.QualifiedName)
		}
		if module.IsPublic {
			r.public[module.QualifiedName] = true
		}
	}

	if err := r.seedDeclarations(allModules); err != nil {
		return nil, err
	}

	for _, ref := range r.refs {
		guard := make(map[string]bool)
		if _, err := r.resolveReference(ref, guard); err != nil {
			return nil, err
		}
	}

	return &Resolution{
		Symbols: r.filterToPublic(),
		Docs:    r.collectDocs(),
	}, nil
}

type resolver struct {
	modulesByName map[string]*modules.Module
	moduleOrder   []string

	// table is the declaration table keyed by fully qualified path; order
	// tracks insertion so the output is deterministic.
	table map[string]*ResolvedSymbol
	order []string

	refs   []Reference
	public map[string]bool
}

// seedDeclarations walks every module, inserting symbol definitions into
// the declaration table and recording normalised references.
func (r *resolver) seedDeclarations(allModules []*modules.Module) error {
	for _, module := range allModules {
		for _, item := range module.Items {
			switch item := item.(type) {
			case extractor.SymbolDef:
				r.insert(joinPath(module.QualifiedName, item.Symbol.Name), &ResolvedSymbol{
					Symbol:  item.Symbol,
					Modules: []string{module.QualifiedName},
				})

			case extractor.Reexport:
				normalised, err := normaliseReference(item.SourcePath, module.QualifiedName)
				if err != nil {
					return err
				}
				r.refs = append(r.refs, Reference{
					SourcePath:        normalised,
					ReferencingModule: module.QualifiedName,
					Kind:              item.Kind,
					Alias:             item.Alias,
				})
			}
		}
	}
	return nil
}

// normaliseReference rewrites path qualifiers relative to the current
// module: crate:: becomes absolute, self:: the module itself, super:: its
// parent. super:: from the crate root is malformed.
func normaliseReference(path, currentModule string) (string, error) {
	if rest, ok := strings.CutPrefix(path, "crate::"); ok {
		return rest, nil
	}
	if rest, ok := strings.CutPrefix(path, "super::"); ok {
		if currentModule == "" {
			return "", extractor.NewMalformed("cannot use super from the root module")
		}
		return joinPath(parentPath(currentModule), rest), nil
	}
	if rest, ok := strings.CutPrefix(path, "self::"); ok {
		return joinPath(currentModule, rest), nil
	}
	return path, nil
}

// resolveReference resolves one reference depth-first. The guard set breaks
// reference cycles: a (host, path, kind, alias) reference already being
// resolved contributes nothing further.
//
// It returns the declaration-table entries the reference contributed, which
// chained resolution uses to follow multi-level re-exports.
func (r *resolver) resolveReference(ref Reference, guard map[string]bool) ([]*ResolvedSymbol, error) {
	key := guardKey(ref)
	if guard[key] {
		return nil, nil
	}
	guard[key] = true

	switch ref.Kind {
	case extractor.ImportWildcard:
		return r.resolveWildcard(ref, guard)
	case extractor.ImportAliased:
		return r.resolveAliased(ref, guard)
	default:
		return r.resolveSimple(ref, guard)
	}
}

func (r *resolver) resolveSimple(ref Reference, guard map[string]bool) ([]*ResolvedSymbol, error) {
	found, err := r.lookupDeclarations(ref, guard)
	if err != nil {
		return nil, err
	}
	if len(found) > 0 {
		for _, entry := range found {
			addModule(entry, ref.ReferencingModule)
		}
		return found, nil
	}

	// Nothing in the crate matches: likely a dependency. Surface the
	// reference itself as a pass-through declaration.
	entry := r.ensureEntry(
		r.syntheticKey(ref),
		extractor.Symbol{
			Name:       lastSegment(ref.SourcePath),
			SourceCode: "pub use " + ref.SourcePath + ";",
		},
		ref.ReferencingModule,
	)
	return []*ResolvedSymbol{entry}, nil
}

func (r *resolver) resolveWildcard(ref Reference, guard map[string]bool) ([]*ResolvedSymbol, error) {
	host := ref.ReferencingModule
	target := r.qualifyModulePath(ref.SourcePath, host)

	module, ok := r.modulesByName[target]
	if !ok {
		// Wildcard into an unresolved module, e.g. a dependency crate.
		entry := r.ensureEntry(
			r.syntheticKey(ref),
			extractor.Symbol{
				Name:       lastSegment(ref.SourcePath),
				SourceCode: "pub use " + ref.SourcePath + "::*;",
			},
			host,
		)
		return []*ResolvedSymbol{entry}, nil
	}

	var contributions []*ResolvedSymbol
	for _, item := range module.Items {
		switch item := item.(type) {
		case extractor.SymbolDef:
			entry := r.ensureEntry(joinPath(host, item.Symbol.Name), item.Symbol, host)
			contributions = append(contributions, entry)

		case extractor.Reexport:
			normalised, err := normaliseReference(item.SourcePath, module.QualifiedName)
			if err != nil {
				return nil, err
			}
			nested, err := r.resolveReference(Reference{
				SourcePath:        normalised,
				ReferencingModule: module.QualifiedName,
				Kind:              item.Kind,
				Alias:             item.Alias,
			}, guard)
			if err != nil {
				return nil, err
			}
			for _, entry := range nested {
				addModule(entry, host)
				contributions = append(contributions, entry)
			}
		}
	}
	return contributions, nil
}

func (r *resolver) resolveAliased(ref Reference, guard map[string]bool) ([]*ResolvedSymbol, error) {
	host := ref.ReferencingModule
	aliasKey := joinPath(host, ref.Alias)
	if existing, ok := r.table[aliasKey]; ok {
		// The same (alias, host) pair resolves once.
		return []*ResolvedSymbol{existing}, nil
	}

	found, err := r.lookupDeclarations(ref, guard)
	if err != nil {
		return nil, err
	}

	var sourceCode string
	if len(found) == 0 {
		sourceCode = "pub use " + ref.SourcePath + " as " + ref.Alias + ";"
	} else {
		underlying := found[0]
		if r.chainIsPublic(underlying, host) {
			sourceCode = "pub use " + ref.SourcePath + " as " + ref.Alias + ";"
		} else {
			sourceCode = substituteName(underlying.Symbol.SourceCode, underlying.Symbol.Name, ref.Alias)
		}
	}

	// Aliases are fresh symbols visible only at the host; they never extend
	// the original declaration's module list.
	entry := &ResolvedSymbol{
		Symbol: extractor.Symbol{
			Name:       ref.Alias,
			SourceCode: sourceCode,
		},
		Modules: []string{host},
	}
	r.insert(aliasKey, entry)
	return []*ResolvedSymbol{entry}, nil
}

// lookupDeclarations finds the declarations a path refers to without
// extending their module lists.
//
// Lookup order: the path as written, the path relative to the host, then
// chains through other re-exporters whose module matches the path's parent.
func (r *resolver) lookupDeclarations(ref Reference, guard map[string]bool) ([]*ResolvedSymbol, error) {
	src := ref.SourcePath
	host := ref.ReferencingModule

	if entry, ok := r.table[src]; ok {
		return []*ResolvedSymbol{entry}, nil
	}
	if host != "" {
		if entry, ok := r.table[joinPath(host, src)]; ok {
			return []*ResolvedSymbol{entry}, nil
		}
	}

	parent := parentPath(src)
	if parent == "" {
		return nil, nil
	}
	want := lastSegment(src)

	candidates := map[string]bool{parent: true}
	if host != "" {
		candidates[joinPath(host, parent)] = true
	}

	var found []*ResolvedSymbol
	for _, other := range r.refs {
		if !candidates[other.ReferencingModule] {
			continue
		}
		switch other.Kind {
		case extractor.ImportSimple:
			if lastSegment(other.SourcePath) != want {
				continue
			}
		case extractor.ImportAliased:
			if other.Alias != want {
				continue
			}
		}

		contributions, err := r.resolveReference(other, guard)
		if err != nil {
			return nil, err
		}
		for _, entry := range contributions {
			if entry.Symbol.Name == want {
				found = append(found, entry)
			}
		}
	}
	return found, nil
}

// qualifyModulePath resolves a wildcard's module path: unqualified single
// segments are host-relative, paths with :: are absolute. Either form falls
// back to the other when only that one names an existing module.
func (r *resolver) qualifyModulePath(src, host string) string {
	relative := joinPath(host, src)
	if strings.Contains(src, "::") {
		if _, ok := r.modulesByName[src]; ok {
			return src
		}
		return relative
	}
	if _, ok := r.modulesByName[relative]; ok {
		return relative
	}
	return src
}

func (r *resolver) chainIsPublic(underlying *ResolvedSymbol, host string) bool {
	if !r.public[host] {
		return false
	}
	for _, module := range underlying.Modules {
		if !r.public[module] {
			return false
		}
	}
	return true
}

// syntheticKey keys pass-through declarations: per host when the host is a
// real module, by bare path at the crate root.
func (r *resolver) syntheticKey(ref Reference) string {
	if ref.ReferencingModule == "" {
		return ref.SourcePath
	}
	return joinPath(ref.ReferencingModule, lastSegment(ref.SourcePath))
}

// insert adds a fresh entry to the declaration table, tracking insertion
// order. Existing entries are left untouched.
func (r *resolver) insert(key string, entry *ResolvedSymbol) {
	if _, ok := r.table[key]; ok {
		return
	}
	r.table[key] = entry
	r.order = append(r.order, key)
}

// ensureEntry inserts a copy of symbol at key visible at host, or extends
// the module list of the entry already there.
func (r *resolver) ensureEntry(key string, symbol extractor.Symbol, host string) *ResolvedSymbol {
	if existing, ok := r.table[key]; ok {
		addModule(existing, host)
		return existing
	}
	entry := &ResolvedSymbol{
		Symbol:  symbol,
		Modules: []string{host},
	}
	r.insert(key, entry)
	return entry
}

func addModule(entry *ResolvedSymbol, module string) {
	for _, existing := range entry.Modules {
		if existing == module {
			return
		}
	}
	entry.Modules = append(entry.Modules, module)
}

// filterToPublic intersects every entry's module list with the public set
// and drops entries left with no public module.
func (r *resolver) filterToPublic() []*ResolvedSymbol {
	var symbols []*ResolvedSymbol
	for _, key := range r.order {
		entry := r.table[key]
		var visible []string
		for _, module := range entry.Modules {
			if r.public[module] {
				visible = append(visible, module)
			}
		}
		if len(visible) == 0 {
			continue
		}
		entry.Modules = visible
		symbols = append(symbols, entry)
	}
	return symbols
}

func (r *resolver) collectDocs() map[string]string {
	docs := make(map[string]string)
	for _, name := range r.moduleOrder {
		if doc := r.modulesByName[name].Doc; doc != "" {
			docs[name] = doc
		}
	}
	return docs
}

func guardKey(ref Reference) string {
	return ref.ReferencingModule + "|" + ref.SourcePath + "|" + string(ref.Kind) + "|" + ref.Alias
}

// substituteName replaces word-boundary occurrences of a symbol's name in
// its rendered source.
func substituteName(sourceCode, name, alias string) string {
	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	return pattern.ReplaceAllString(sourceCode, alias)
}
