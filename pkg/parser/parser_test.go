package parser

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	manager := NewManager(nil, 0)
	defer manager.Close()

	tree, err := manager.Parse([]byte("pub fn answer() -> i32 { 42 }"))
	require.NoError(t, err)
	defer tree.Close()

	root := tree.RootNode()
	assert.Equal(t, "source_file", root.Kind())
	assert.False(t, root.HasError())
}

func TestParse_InvalidSyntax(t *testing.T) {
	manager := NewManager(nil, 0)
	defer manager.Close()

	// Partial trees are still returned; parsing never hard-fails on bad input.
	tree, err := manager.Parse([]byte("echo 'Hello, World!'"))
	require.NoError(t, err)
	defer tree.Close()

	assert.True(t, tree.RootNode().HasError())
}

func TestParse_Concurrent(t *testing.T) {
	manager := NewManager(nil, 4)
	defer manager.Close()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tree, err := manager.Parse([]byte("pub struct Foo;"))
			if assert.NoError(t, err) {
				tree.Close()
			}
		}()
	}
	wg.Wait()
}

func TestIsRustFile(t *testing.T) {
	assert.True(t, IsRustFile("src/lib.rs"))
	assert.True(t, IsRustFile("src/LIB.RS"))
	assert.False(t, IsRustFile("src/lib.go"))
	assert.False(t, IsRustFile("Cargo.toml"))
}

func TestLanguage(t *testing.T) {
	assert.NotNil(t, Language())
	assert.NotNil(t, LanguagePointer())
}
