package modules

import (
	"log/slog"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/crateapi/pkg/extractor"
	"github.com/gnana997/crateapi/pkg/parser"
	"github.com/gnana997/crateapi/pkg/util"
)

// CollectorConfig controls Collector behavior.
type CollectorConfig struct {
	// ParseCacheSize bounds the LRU cache of parsed file models. A file
	// referenced from several places in one traversal is parsed once.
	ParseCacheSize int
}

// DefaultCollectorConfig returns recommended defaults.
func DefaultCollectorConfig() CollectorConfig {
	return CollectorConfig{ParseCacheSize: 256}
}

// Collector traverses a crate's source files starting at the entry point and
// assembles the module-directory forest.
//
// Not safe for concurrent use: the parser handle is borrowed for the
// duration of each Collect call. Close() must be called to release mapped
// source files once the extraction result has been materialised.
type Collector struct {
	manager *parser.Manager
	reader  *util.SourceReader
	cache   *lru.Cache[string, *extractor.FileModel]
	logger  *slog.Logger
}

// NewCollector creates a collector. A nil logger falls back to slog.Default().
func NewCollector(manager *parser.Manager, logger *slog.Logger, config CollectorConfig) (*Collector, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if config.ParseCacheSize <= 0 {
		config.ParseCacheSize = DefaultCollectorConfig().ParseCacheSize
	}

	cache, err := lru.New[string, *extractor.FileModel](config.ParseCacheSize)
	if err != nil {
		return nil, err
	}

	return &Collector{
		manager: manager,
		reader:  util.NewSourceReader(logger),
		cache:   cache,
		logger:  logger,
	}, nil
}

// Close releases the mapped source files.
func (c *Collector) Close() error {
	return c.reader.Close()
}

// Collect walks the source tree rooted at entryPoint and returns the
// directory forest, root first.
//
// Cycles among `mod name;` declarations terminate: a file already seen in
// the current traversal is not revisited, and the repeated reference is
// silently ignored.
func (c *Collector) Collect(entryPoint string) ([]*Directory, error) {
	visited := make(map[string]bool)
	return c.collectDirectories(entryPoint, filepath.Dir(entryPoint), true, "", visited)
}

// moduleLocation is the result of the two-phase lookup for one `mod name;`
// declaration.
type moduleLocation struct {
	path string
	// dir is set when the module opens a new directory scope; empty for
	// flat sibling files.
	dir string
}

func (c *Collector) collectDirectories(
	entryPath string,
	directoryPath string,
	isPublic bool,
	namespacePrefix string,
	visited map[string]bool,
) ([]*Directory, error) {
	entryKey := canonicalKey(entryPath)
	if visited[entryKey] {
		return nil, nil
	}
	visited[entryKey] = true

	entryModel, err := c.parseFileAt(entryPath)
	if err != nil {
		return nil, err
	}

	internalFiles := make(map[string]*extractor.FileModel)
	var importedDirectories []*Directory
	for _, item := range entryModel.Items {
		moduleImport, ok := item.(extractor.ExternalModule)
		if !ok {
			continue
		}

		location, err := c.locateModule(entryPath, directoryPath, moduleImport.Name)
		if err != nil {
			return nil, err
		}

		if location.dir == "" {
			fileKey := canonicalKey(location.path)
			if visited[fileKey] {
				continue
			}
			visited[fileKey] = true

			file, err := c.parseFileAt(location.path)
			if err != nil {
				return nil, err
			}
			internalFiles[moduleImport.Name] = file
			continue
		}

		directories, err := c.collectDirectories(
			location.path,
			location.dir,
			moduleImport.IsReexported,
			joinPath(namespacePrefix, moduleImport.Name),
			visited,
		)
		if err != nil {
			return nil, err
		}
		importedDirectories = append(importedDirectories, directories...)
	}

	root := &Directory{
		QualifiedName: namespacePrefix,
		IsPublic:      isPublic,
		Entry:         entryModel,
		InternalFiles: internalFiles,
	}
	return append([]*Directory{root}, importedDirectories...), nil
}

// locateModule resolves a `mod name;` declaration against the current
// directory using two-phase lookup:
//
//  1. New-style file `./name.rs`. If a sibling directory `./name/` also
//     exists, the file is the entry point of that directory scope; otherwise
//     it is a flat sibling file.
//  2. Legacy-style directory `./name/mod.rs`, a nested scope rooted at
//     `./name/`.
func (c *Collector) locateModule(currentFile, directoryPath, moduleName string) (moduleLocation, error) {
	rsPath := filepath.Join(directoryPath, moduleName+".rs")
	if fileExists(rsPath) {
		moduleDir := filepath.Join(directoryPath, moduleName)
		if dirExists(moduleDir) {
			return moduleLocation{path: rsPath, dir: moduleDir}, nil
		}
		return moduleLocation{path: rsPath}, nil
	}

	modRsPath := filepath.Join(directoryPath, moduleName, "mod.rs")
	if fileExists(modRsPath) {
		return moduleLocation{path: modRsPath, dir: filepath.Join(directoryPath, moduleName)}, nil
	}

	return moduleLocation{}, extractor.NewMalformed(
		"could not find module %s from %s", moduleName, currentFile)
}

func (c *Collector) parseFileAt(path string) (*extractor.FileModel, error) {
	key := canonicalKey(path)
	if model, ok := c.cache.Get(key); ok {
		return model, nil
	}

	source, err := c.reader.ReadFile(path)
	if err != nil {
		return nil, extractor.NewIoError(err)
	}

	model, err := extractor.ParseFile(source, c.manager)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, model)
	c.logger.Debug("parsed source file", "path", path, "items", len(model.Items))
	return model, nil
}

// canonicalKey normalises a path for visited-set and cache membership.
// Symbolic links are resolved so that a directory reached through a link is
// recognised as already visited.
func canonicalKey(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
