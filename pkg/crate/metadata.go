// Package crate reads crate-level metadata: the Cargo.toml manifest, the
// README, and dependency source locations via the cargo metadata tool.
package crate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
)

const defaultLibPath = "src/lib.rs"

// Metadata describes a crate: everything a host needs before extracting its
// public API.
type Metadata struct {
	Name string

	// Version is empty when the manifest has no version field or defers it
	// to the workspace (`version.workspace = true`).
	Version string

	// Documentation holds the README contents, empty when the crate has
	// no README.
	Documentation string

	// EntryPoint is the crate's library entry file, `src/lib.rs` unless
	// overridden by `[lib] path`.
	EntryPoint string
}

// MetadataError reports a failure reading crate metadata.
type MetadataError struct {
	// MissingManifest is true when Cargo.toml could not be read at all, as
	// opposed to being unparseable.
	MissingManifest bool
	Message         string
	Err             error
}

func (e *MetadataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

type cargoManifest struct {
	Package packageSection `toml:"package"`
	Lib     *libSection    `toml:"lib"`
}

type packageSection struct {
	Name string `toml:"name"`

	// Version is either a plain string or a `{ workspace = true }` table.
	Version any `toml:"version"`
}

type libSection struct {
	Path string `toml:"path"`
}

// ExtractMetadata reads Cargo.toml and the README under packageRoot.
//
// A missing README is not an error; Documentation is simply empty.
func ExtractMetadata(packageRoot string) (*Metadata, error) {
	manifestPath := filepath.Join(packageRoot, "Cargo.toml")
	manifestContent, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, &MetadataError{
			MissingManifest: true,
			Message:         "missing manifest " + manifestPath,
			Err:             err,
		}
	}

	var manifest cargoManifest
	if err := toml.Unmarshal(manifestContent, &manifest); err != nil {
		return nil, &MetadataError{Message: "malformed manifest " + manifestPath, Err: err}
	}
	if manifest.Package.Name == "" {
		return nil, &MetadataError{Message: "manifest " + manifestPath + " has no package name"}
	}

	entryPoint := filepath.Join(packageRoot, filepath.FromSlash(defaultLibPath))
	if manifest.Lib != nil && manifest.Lib.Path != "" {
		entryPoint = filepath.Join(packageRoot, filepath.FromSlash(manifest.Lib.Path))
	}

	return &Metadata{
		Name:          manifest.Package.Name,
		Version:       manifestVersion(manifest.Package.Version),
		Documentation: readDocumentation(packageRoot),
		EntryPoint:    entryPoint,
	}, nil
}

// manifestVersion flattens the version field: plain strings pass through;
// workspace-deferred tables and absent fields map to "".
func manifestVersion(field any) string {
	if version, ok := field.(string); ok {
		return version
	}
	return ""
}

// readDocumentation returns the crate's README contents. The conventional
// README.md wins; otherwise the lexicographically first README.* match is
// used.
func readDocumentation(packageRoot string) string {
	matches, err := doublestar.Glob(os.DirFS(packageRoot), "README*")
	if err != nil || len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)

	chosen := matches[0]
	for _, match := range matches {
		if match == "README.md" {
			chosen = match
			break
		}
	}

	content, err := os.ReadFile(filepath.Join(packageRoot, chosen))
	if err != nil {
		return ""
	}
	return string(content)
}
