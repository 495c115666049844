package parser

import (
	"fmt"
	"log/slog"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// Manager manages tree-sitter parsers for the Rust grammar with lazy
// initialization and thread-safe concurrent access.
//
// Memory Management:
// - Parsers in the pool are created lazily on first use, up to the pool size
// - Manager owns parser instances and must be closed via Close()
// - Callers own Tree instances and must call tree.Close() after use
//
// Thread Safety:
// - Multiple goroutines can parse simultaneously; each Parse call borrows a
//   parser from the pool for its duration
//
// Example:
//
//	manager := parser.NewManager(nil, 0)
//	defer manager.Close()
//
//	tree, err := manager.Parse([]byte("pub fn answer() -> i32 { 42 }"))
//	if err != nil {
//	    return err
//	}
//	defer tree.Close()
type Manager struct {
	pool *parserPool

	// mutex guards stats
	mutex sync.Mutex

	logger *slog.Logger

	stats struct {
		parsesCalled int
	}
}

// NewManager creates a new Manager instance.
//
// poolSize of 0 picks a CPU-based default. The returned manager must be
// closed via Close() to free resources. A nil logger falls back to
// slog.Default().
func NewManager(logger *slog.Logger, poolSize int) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		pool:   newParserPool(getPoolSize(poolSize), logger),
		logger: logger,
	}
}

// Parse parses Rust source code.
//
// Returns a Tree that MUST be closed by the caller via tree.Close() to avoid
// memory leaks. Returns an error when the underlying parser yields no tree at
// all; a tree containing ERROR nodes is still returned, as partial trees are
// useful.
func (m *Manager) Parse(source []byte) (*ts.Tree, error) {
	m.mutex.Lock()
	m.stats.parsesCalled++
	m.mutex.Unlock()

	parser, err := m.pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}

	tree := parser.Parse(source, nil)
	m.pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree")
	}

	if tree.RootNode().HasError() {
		m.logger.Warn("parse tree contains errors")
	}

	return tree, nil
}

// Close releases all parser resources.
//
// MUST be called when the Manager is no longer needed. After Close(), the
// Manager cannot be used.
func (m *Manager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.logger.Debug("closing parser manager",
		"parsers_created", m.pool.getCreatedCount(),
		"parses_called", m.stats.parsesCalled)

	m.pool.close()
	return nil
}
