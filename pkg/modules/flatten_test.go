package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/crateapi/pkg/extractor"
)

func stubSymbol(name string) extractor.Symbol {
	return extractor.Symbol{
		Name:       name,
		SourceCode: "pub fn " + name + "() {}",
	}
}

func moduleByName(mods []*Module, name string) *Module {
	for _, module := range mods {
		if module.QualifiedName == name {
			return module
		}
	}
	return nil
}

func TestExtractModules_Name(t *testing.T) {
	directory := &Directory{
		QualifiedName: "src",
		IsPublic:      true,
		Entry:         &extractor.FileModel{},
	}

	mods, err := directory.ExtractModules()
	require.NoError(t, err)

	require.Len(t, mods, 1)
	assert.Equal(t, "src", mods[0].QualifiedName)
}

func TestExtractModules_DocComment(t *testing.T) {
	directory := &Directory{
		QualifiedName: "",
		IsPublic:      true,
		Entry:         &extractor.FileModel{InnerDoc: "This is a doc comment"},
	}

	mods, err := directory.ExtractModules()
	require.NoError(t, err)

	require.Len(t, mods, 1)
	assert.Equal(t, "This is a doc comment", mods[0].Doc)
}

func TestExtractModules_Symbol(t *testing.T) {
	symbol := stubSymbol("test")
	directory := &Directory{
		QualifiedName: "",
		IsPublic:      true,
		Entry: &extractor.FileModel{
			Items: []extractor.FileItem{extractor.SymbolDef{Symbol: symbol}},
		},
	}

	mods, err := directory.ExtractModules()
	require.NoError(t, err)

	require.Len(t, mods, 1)
	require.Len(t, mods[0].Items, 1)
	assert.Equal(t, extractor.SymbolDef{Symbol: symbol}, mods[0].Items[0])
}

func TestExtractModules_SymbolReexport(t *testing.T) {
	symbol := stubSymbol("test")
	directory := &Directory{
		QualifiedName: "",
		IsPublic:      true,
		Entry: &extractor.FileModel{
			Items: []extractor.FileItem{
				extractor.ExternalModule{Name: "submodule", IsReexported: false},
				extractor.Reexport{SourcePath: "submodule::test", Kind: extractor.ImportSimple},
			},
		},
		InternalFiles: map[string]*extractor.FileModel{
			"submodule": {Items: []extractor.FileItem{extractor.SymbolDef{Symbol: symbol}}},
		},
	}

	mods, err := directory.ExtractModules()
	require.NoError(t, err)

	require.Len(t, mods, 2)
	root := mods[0]
	require.Len(t, root.Items, 1)
	reexport, ok := root.Items[0].(extractor.Reexport)
	require.True(t, ok)
	assert.Equal(t, "submodule::test", reexport.SourcePath)

	submodule := mods[1]
	assert.Equal(t, "submodule", submodule.QualifiedName)
	assert.False(t, submodule.IsPublic)
	require.Len(t, submodule.Items, 1)
}

func TestExtractModules_PublicModuleBlock(t *testing.T) {
	symbol := stubSymbol("test")
	directory := &Directory{
		QualifiedName: "",
		IsPublic:      true,
		Entry: &extractor.FileModel{
			Items: []extractor.FileItem{extractor.InlineModule{
				Name:     "public_mod",
				IsPublic: true,
				Items:    []extractor.FileItem{extractor.SymbolDef{Symbol: symbol}},
			}},
		},
	}

	mods, err := directory.ExtractModules()
	require.NoError(t, err)

	require.Len(t, mods, 2)
	submodule := mods[1]
	assert.Equal(t, "public_mod", submodule.QualifiedName)
	assert.True(t, submodule.IsPublic)
	require.Len(t, submodule.Items, 1)
}

func TestExtractModules_PrivateModuleBlockRetained(t *testing.T) {
	directory := &Directory{
		QualifiedName: "",
		IsPublic:      true,
		Entry: &extractor.FileModel{
			Items: []extractor.FileItem{extractor.InlineModule{
				Name:     "private_mod",
				IsPublic: false,
				Items:    []extractor.FileItem{extractor.SymbolDef{Symbol: stubSymbol("test")}},
			}},
		},
	}

	mods, err := directory.ExtractModules()
	require.NoError(t, err)

	require.Len(t, mods, 2)
	assert.Equal(t, "private_mod", mods[1].QualifiedName)
	assert.False(t, mods[1].IsPublic)
	assert.Len(t, mods[1].Items, 1)
}

func TestExtractModules_NestedModuleBlocks(t *testing.T) {
	symbol := stubSymbol("test")
	directory := &Directory{
		QualifiedName: "",
		IsPublic:      true,
		Entry: &extractor.FileModel{
			Items: []extractor.FileItem{extractor.InlineModule{
				Name:     "parent",
				IsPublic: true,
				Items: []extractor.FileItem{extractor.InlineModule{
					Name:     "child",
					IsPublic: true,
					Items:    []extractor.FileItem{extractor.SymbolDef{Symbol: symbol}},
				}},
			}},
		},
	}

	mods, err := directory.ExtractModules()
	require.NoError(t, err)

	require.Len(t, mods, 3)
	assert.Equal(t, "", mods[0].QualifiedName)
	assert.Equal(t, "parent", mods[1].QualifiedName)
	assert.Equal(t, "parent::child", mods[2].QualifiedName)
	require.Len(t, mods[2].Items, 1)
}

func TestExtractModules_ModuleBlockInnerDoc(t *testing.T) {
	directory := &Directory{
		QualifiedName: "",
		IsPublic:      true,
		Entry: &extractor.FileModel{
			Items: []extractor.FileItem{extractor.InlineModule{
				Name:     "inner",
				IsPublic: true,
				Doc:      "//! Inner docs\n",
			}},
		},
	}

	mods, err := directory.ExtractModules()
	require.NoError(t, err)

	require.Len(t, mods, 2)
	assert.Equal(t, "//! Inner docs\n", mods[1].Doc)
}

func TestExtractModules_ImportedButNotReexported(t *testing.T) {
	directory := &Directory{
		QualifiedName: "",
		IsPublic:      true,
		Entry: &extractor.FileModel{
			Items: []extractor.FileItem{
				extractor.ExternalModule{Name: "submodule", IsReexported: false},
			},
		},
		InternalFiles: map[string]*extractor.FileModel{
			"submodule": {Items: []extractor.FileItem{
				extractor.SymbolDef{Symbol: stubSymbol("test")},
			}},
		},
	}

	mods, err := directory.ExtractModules()
	require.NoError(t, err)

	require.Len(t, mods, 2)
	assert.True(t, mods[0].IsPublic)
	assert.Empty(t, mods[0].Items)
	assert.False(t, mods[1].IsPublic)
}

func TestExtractModules_MissingInternalFileSkipped(t *testing.T) {
	directory := &Directory{
		QualifiedName: "",
		IsPublic:      true,
		Entry: &extractor.FileModel{
			Items: []extractor.FileItem{
				extractor.ExternalModule{Name: "missing_module", IsReexported: true},
			},
		},
	}

	mods, err := directory.ExtractModules()
	require.NoError(t, err)

	require.Len(t, mods, 1)
	assert.Empty(t, mods[0].Items)
}

func TestExtractModules_QualifiedNamesForNestedDirectory(t *testing.T) {
	directory := &Directory{
		QualifiedName: "outer::inner",
		IsPublic:      true,
		Entry: &extractor.FileModel{
			Items: []extractor.FileItem{
				extractor.ExternalModule{Name: "leaf", IsReexported: true},
			},
		},
		InternalFiles: map[string]*extractor.FileModel{
			"leaf": {Items: []extractor.FileItem{
				extractor.SymbolDef{Symbol: stubSymbol("test")},
			}},
		},
	}

	mods, err := directory.ExtractModules()
	require.NoError(t, err)

	require.Len(t, mods, 2)
	assert.Equal(t, "outer::inner::leaf", mods[1].QualifiedName)
}

func TestFlatten_ConcatenatesDirectories(t *testing.T) {
	directories := []*Directory{
		{QualifiedName: "", IsPublic: true, Entry: &extractor.FileModel{}},
		{QualifiedName: "module", IsPublic: true, Entry: &extractor.FileModel{
			Items: []extractor.FileItem{extractor.SymbolDef{Symbol: stubSymbol("test")}},
		}},
	}

	mods, err := Flatten(directories)
	require.NoError(t, err)

	require.Len(t, mods, 2)
	require.NotNil(t, moduleByName(mods, ""))
	module := moduleByName(mods, "module")
	require.NotNil(t, module)
	assert.Len(t, module.Items, 1)
}
