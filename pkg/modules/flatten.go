package modules

import (
	"github.com/gnana997/crateapi/pkg/extractor"
)

// Flatten converts every directory of the forest into flat modules and
// concatenates the results. Every qualified name is unique across the whole
// output because the collector assigns each directory a distinct prefix and
// inline nesting is hoisted with dotted paths.
func Flatten(directories []*Directory) ([]*Module, error) {
	var modules []*Module
	for _, directory := range directories {
		flattened, err := directory.ExtractModules()
		if err != nil {
			return nil, err
		}
		modules = append(modules, flattened...)
	}
	return modules, nil
}

// ExtractModules flattens one directory: first the entry's own module, then
// one module per inline block reached transitively, then one per internal
// sibling file.
func (d *Directory) ExtractModules() ([]*Module, error) {
	return extractModulesFromItems(
		d.QualifiedName,
		d.IsPublic,
		d.Entry.InnerDoc,
		d.Entry.Items,
		d.InternalFiles,
	)
}

func extractModulesFromItems(
	moduleName string,
	isPublic bool,
	doc string,
	items []extractor.FileItem,
	internalFiles map[string]*extractor.FileModel,
) ([]*Module, error) {
	root := &Module{
		QualifiedName: moduleName,
		IsPublic:      isPublic,
		Doc:           doc,
	}

	var blockModules, fileModules []*Module
	for _, item := range items {
		switch item := item.(type) {
		case extractor.InlineModule:
			nested, err := extractModulesFromItems(
				joinPath(moduleName, item.Name),
				item.IsPublic,
				item.Doc,
				item.Items,
				nil,
			)
			if err != nil {
				return nil, err
			}
			blockModules = append(blockModules, nested...)

		case extractor.ExternalModule:
			// A declaration whose file the collector did not deliver (e.g.
			// a repeated reference broken by the cycle guard) is skipped.
			file, ok := internalFiles[item.Name]
			if !ok {
				continue
			}
			nested, err := extractModulesFromItems(
				joinPath(moduleName, item.Name),
				item.IsReexported,
				file.InnerDoc,
				file.Items,
				nil,
			)
			if err != nil {
				return nil, err
			}
			fileModules = append(fileModules, nested...)

		case extractor.SymbolDef, extractor.Reexport:
			root.Items = append(root.Items, item)
		}
	}

	result := append([]*Module{root}, blockModules...)
	return append(result, fileModules...), nil
}
