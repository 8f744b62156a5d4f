package ports

import "go.hermetik.dev/hermetik/internal/core/domain"

// SourceResolver turns a resolve request into a verified source location by
// applying the offline -> vendor -> mirror -> default priority chain.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type SourceResolver interface {
	// Resolve is deterministic for a fixed registry, environment, and
	// request. Its only side effect is a vendor-path existence check.
	Resolve(req domain.ResolveRequest, env domain.EnvironmentConfig) (domain.ResolvedSource, error)
}

// CompatibilityValidator screens a selected artifact set against the
// compatibility matrix. Output is advisory.
type CompatibilityValidator interface {
	// Validate returns one warning per selected artifact whose version is
	// outside the allowed set for the selected base version. An empty slice
	// means the combination is known good or unknown to the matrix.
	Validate(selection map[string]string) []domain.CompatWarning
}
