// Package core provides the shared types consumed by the search engine and
// implemented by registry clients.
package core

import "context"

// Manifest is the registry's published metadata for one package: its name
// plus a record for every published version. Immutable once fetched.
type Manifest struct {
	Name     string
	Versions map[string]VersionRecord
	DistTags map[string]string
}

// VersionRecord describes a single published version of a package.
type VersionRecord struct {
	Version              string
	Dependencies         map[string]string
	OptionalDependencies map[string]string
	PeerDependencies     map[string]string
	Deprecated           string
	License              string
}

// VersionNumbers returns every published version string in the manifest.
func (m *Manifest) VersionNumbers() []string {
	numbers := make([]string, 0, len(m.Versions))
	for num := range m.Versions {
		numbers = append(numbers, num)
	}
	return numbers
}

// Registry fetches package manifests from a registry metadata API.
type Registry interface {
	// FetchManifest retrieves the full manifest for a package.
	FetchManifest(ctx context.Context, name string) (*Manifest, error)

	// RegistryURL returns a human-facing URL for a package version.
	RegistryURL(name, version string) string
}
