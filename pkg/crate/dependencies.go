package crate

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
)

// DependencyError reports a failure locating a dependency's source root.
type DependencyError struct {
	// Missing is true when the metadata tool ran but the named dependency
	// is not part of the dependency graph.
	Missing    bool
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	if e.Missing {
		return fmt.Sprintf("missing dependency %s", e.Dependency)
	}
	return fmt.Sprintf("retrieving metadata for dependency %s: %v", e.Dependency, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

type cargoMetadataOutput struct {
	Packages []cargoPackage `json:"packages"`
}

type cargoPackage struct {
	Name         string `json:"name"`
	ManifestPath string `json:"manifest_path"`
}

// ResolveDependencyPath locates the source root of a named dependency of
// the crate at dependantPath by running `cargo metadata`.
func ResolveDependencyPath(dependencyName, dependantPath string) (string, error) {
	manifestPath := filepath.Join(dependantPath, "Cargo.toml")
	output, err := exec.Command(
		"cargo", "metadata",
		"--format-version", "1",
		"--manifest-path", manifestPath,
	).Output()
	if err != nil {
		return "", &DependencyError{Dependency: dependencyName, Err: err}
	}

	return dependencyRootFromMetadata(output, dependencyName)
}

// dependencyRootFromMetadata finds the named package in cargo metadata JSON
// and returns the directory containing its manifest.
func dependencyRootFromMetadata(metadataJSON []byte, dependencyName string) (string, error) {
	var metadata cargoMetadataOutput
	if err := json.Unmarshal(metadataJSON, &metadata); err != nil {
		return "", &DependencyError{Dependency: dependencyName, Err: err}
	}

	for _, pkg := range metadata.Packages {
		if pkg.Name == dependencyName {
			return filepath.Dir(pkg.ManifestPath), nil
		}
	}
	return "", &DependencyError{Missing: true, Dependency: dependencyName}
}
