// Package ports defines the core interfaces for the application.
package ports

import "go.hermetik.dev/hermetik/internal/core/domain"

// Registry is the read-only artifact catalog. Implementations are immutable
// after construction and safe for concurrent use.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type Registry interface {
	// Lookup returns the version record for the given artifact and version.
	Lookup(artifact, version string) (domain.VersionRecord, error)

	// LatestVersion returns the stored latest version for the artifact.
	// This is catalog data, not the maximum of the version keys.
	LatestVersion(artifact string) (string, error)

	// ListVersions returns all known versions for the artifact, ascending.
	ListVersions(artifact string) ([]string, error)

	// ListPlatforms returns the platforms published for one version.
	ListPlatforms(artifact, version string) ([]domain.PlatformKey, error)

	// Artifacts returns the catalog entries, keyed by name.
	Artifacts() map[string]domain.Artifact
}
