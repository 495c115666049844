// Package crateapi extracts the public API surface of a Rust crate.
//
// Given a crate's entry-point source file, it parses the module tree with
// tree-sitter, resolves re-exports (wildcards, aliases, multi-level chains,
// pass-through private modules) and produces one namespace per publicly
// reachable module path, each listing the symbols visible there with their
// rendered signatures and doc comments.
package crateapi

import (
	"log/slog"

	"github.com/gnana997/crateapi/pkg/modules"
	"github.com/gnana997/crateapi/pkg/namespace"
	"github.com/gnana997/crateapi/pkg/parser"
	"github.com/gnana997/crateapi/pkg/resolver"
)

// BuildPublicAPI runs the full extraction pipeline: module-directory
// collection, flattening, symbol resolution and namespace assembly.
//
// The parser manager is borrowed for the duration of the call. The pipeline
// is fail-fast: the first error aborts the extraction and no partial result
// is returned. A nil logger falls back to slog.Default().
func BuildPublicAPI(
	entryPoint string,
	packageName string,
	manager *parser.Manager,
	logger *slog.Logger,
) ([]namespace.Namespace, error) {
	if logger == nil {
		logger = slog.Default()
	}

	collector, err := modules.NewCollector(manager, logger, modules.DefaultCollectorConfig())
	if err != nil {
		return nil, err
	}
	defer collector.Close()

	directories, err := collector.Collect(entryPoint)
	if err != nil {
		return nil, err
	}

	flattened, err := modules.Flatten(directories)
	if err != nil {
		return nil, err
	}

	resolution, err := resolver.Resolve(flattened)
	if err != nil {
		return nil, err
	}

	namespaces := namespace.Construct(resolution, packageName)

	logger.Debug("extracted public api",
		"package", packageName,
		"directories", len(directories),
		"modules", len(flattened),
		"symbols", len(resolution.Symbols),
		"namespaces", len(namespaces))
	return namespaces, nil
}
