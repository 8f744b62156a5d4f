// Package resolve implements the ports.SourceResolver port: the
// offline -> vendor -> mirror -> default priority chain.
package resolve

import (
	"os"
	"strings"

	"go.hermetik.dev/hermetik/internal/core/domain"
	"go.hermetik.dev/hermetik/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver combines the registry with the session environment to produce
// verified source locations. It holds no mutable state and is safe for
// concurrent use.
type Resolver struct {
	registry ports.Registry
}

// NewResolver creates a Resolver over the given registry.
func NewResolver(registry ports.Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve applies the priority chain. The order is a hard invariant: offline
// never falls through to the network, and vendor wins over mirror even when
// the network is allowed. Changing it changes the air-gap guarantees.
func (r *Resolver) Resolve(req domain.ResolveRequest, env domain.EnvironmentConfig) (domain.ResolvedSource, error) {
	rec, err := r.registry.Lookup(req.Artifact, req.Version)
	if err != nil {
		return domain.ResolvedSource{}, err
	}

	pa, ok := rec.Platforms[req.Platform]
	if !ok {
		return domain.ResolvedSource{}, r.unknownPlatform(req)
	}

	expected := pa.Digest
	if pa.IsSourceBuild() {
		// No binary digest exists yet; verification happens post-build.
		expected = ""
	}

	if env.Offline {
		return r.resolveOffline(req, env, expected, pa)
	}

	if env.VendorDir != "" {
		path := domain.VendorPath(env.VendorDir, req.Artifact, req.Version, req.Platform, req.DefaultFilename)
		if fileExists(path) {
			return localSource(path, expected, req.DefaultFilename, pa), nil
		}
	}

	if env.MirrorBase != "" {
		url := domain.MirrorURL(env.MirrorBase, req.Artifact, req.Version, req.Platform, req.DefaultFilename)
		return remoteSource(url, expected, req.DefaultFilename, pa), nil
	}

	return remoteSource(req.DefaultLocation, expected, req.DefaultFilename, pa), nil
}

// resolveOffline serves the request from the vendor directory or fails.
// No fallback: the network is never touched in offline mode.
func (r *Resolver) resolveOffline(
	req domain.ResolveRequest,
	env domain.EnvironmentConfig,
	expected string,
	pa domain.PlatformArtifact,
) (domain.ResolvedSource, error) {
	if env.VendorDir == "" {
		err := domain.WithField(domain.ErrVendorDirUnset, "artifact", req.Artifact)
		err = zerr.With(err, "version", req.Version)
		return domain.ResolvedSource{}, zerr.With(err, "platform", string(req.Platform))
	}

	path := domain.VendorPath(env.VendorDir, req.Artifact, req.Version, req.Platform, req.DefaultFilename)
	if !fileExists(path) {
		err := domain.WithField(domain.ErrOfflineViolation, "artifact", req.Artifact)
		err = zerr.With(err, "version", req.Version)
		err = zerr.With(err, "platform", string(req.Platform))
		return domain.ResolvedSource{}, zerr.With(err, "vendor_path", path)
	}

	return localSource(path, expected, req.DefaultFilename, pa), nil
}

// unknownPlatform enumerates what the catalog does have, so a typo in a
// request is diagnosable from the error alone.
func (r *Resolver) unknownPlatform(req domain.ResolveRequest) error {
	msg := "no " + string(req.Platform) + " build"
	if platforms, perr := r.registry.ListPlatforms(req.Artifact, req.Version); perr == nil {
		names := make([]string, len(platforms))
		for i, p := range platforms {
			names[i] = string(p)
		}
		msg += ", available platforms: " + strings.Join(names, ", ")
	}
	if versions, verr := r.registry.ListVersions(req.Artifact); verr == nil {
		msg += ", available versions: " + strings.Join(versions, ", ")
	}

	err := zerr.With(zerr.Wrap(domain.ErrUnknownArtifact, msg), "artifact", req.Artifact)
	err = zerr.With(err, "version", req.Version)
	return zerr.With(err, "platform", string(req.Platform))
}

func localSource(path, expected, filename string, pa domain.PlatformArtifact) domain.ResolvedSource {
	return domain.ResolvedSource{
		Kind:           domain.SourceLocal,
		Location:       path,
		ExpectedDigest: expected,
		Filename:       filename,
		SourceInfo:     pa.SourceInfo,
	}
}

func remoteSource(url, expected, filename string, pa domain.PlatformArtifact) domain.ResolvedSource {
	return domain.ResolvedSource{
		Kind:           domain.SourceRemote,
		Location:       url,
		ExpectedDigest: expected,
		Filename:       filename,
		SourceInfo:     pa.SourceInfo,
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
