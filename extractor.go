package crateapi

import (
	"log/slog"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/crateapi/pkg/crate"
	"github.com/gnana997/crateapi/pkg/namespace"
	"github.com/gnana997/crateapi/pkg/parser"
)

// Extractor is the interface a host driver consumes: grammar discovery,
// crate metadata, public-API extraction and dependency location.
//
// The value carries no mutable state; the parser manager is passed
// explicitly so hosts control parser lifetime and concurrency (one manager
// per parallel extraction).
type Extractor struct {
	logger *slog.Logger
}

// New creates an Extractor. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// GetParserLanguage returns the tree-sitter grammar the host should
// initialise parsers with.
func (e *Extractor) GetParserLanguage() *ts.Language {
	return parser.Language()
}

// GetLibraryMetadata reads the crate manifest and README under packageRoot.
func (e *Extractor) GetLibraryMetadata(packageRoot string) (*crate.Metadata, error) {
	return crate.ExtractMetadata(packageRoot)
}

// ExtractPublicAPI extracts the crate's public API surface.
func (e *Extractor) ExtractPublicAPI(
	metadata *crate.Metadata,
	manager *parser.Manager,
) ([]namespace.Namespace, error) {
	return BuildPublicAPI(metadata.EntryPoint, metadata.Name, manager, e.logger)
}

// ResolveDependencyPath locates the source root of a named dependency of
// the crate at dependantPath.
func (e *Extractor) ResolveDependencyPath(dependencyName, dependantPath string) (string, error) {
	return crate.ResolveDependencyPath(dependencyName, dependantPath)
}
