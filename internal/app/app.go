// Package app implements the application layer for hermetik.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"go.hermetik.dev/hermetik/internal/adapters/digest"
	"go.hermetik.dev/hermetik/internal/adapters/platform"
	"go.hermetik.dev/hermetik/internal/core/domain"
	"go.hermetik.dev/hermetik/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App orchestrates resolution, validation, and fetching over the ports.
type App struct {
	registry  ports.Registry
	resolver  ports.SourceResolver
	validator ports.CompatibilityValidator
	fetcher   ports.Fetcher
	tracer    ports.Tracer
	logger    ports.Logger
	env       domain.EnvironmentConfig
	cacheRoot string
}

// New creates a new App instance.
func New(
	registry ports.Registry,
	resolver ports.SourceResolver,
	validator ports.CompatibilityValidator,
	fetcher ports.Fetcher,
	tracer ports.Tracer,
	log ports.Logger,
	env domain.EnvironmentConfig,
	cacheRoot string,
) *App {
	return &App{
		registry:  registry,
		resolver:  resolver,
		validator: validator,
		fetcher:   fetcher,
		tracer:    tracer,
		logger:    log,
		env:       env,
		cacheRoot: cacheRoot,
	}
}

// Request names one artifact to resolve. Version and Platform are optional;
// empty values select the catalog's latest version and the host platform.
type Request struct {
	Artifact string
	Version  string
	Platform domain.PlatformKey
}

// Resolution is one resolved request.
type Resolution struct {
	Artifact string
	Version  string
	Platform domain.PlatformKey
	Source   domain.ResolvedSource
}

// Fetched is one resolution materialized into the cache. Path is empty for
// source-build entries, which cannot be fetched as binaries.
type Fetched struct {
	Resolution
	Path string
}

// Resolve resolves every request and screens the combined selection against
// the compatibility matrix. Warnings are advisory; they are logged and
// returned but never fail the call.
func (a *App) Resolve(ctx context.Context, reqs []Request) ([]Resolution, []domain.CompatWarning, error) {
	_, span := a.tracer.Start(ctx, "resolve")
	defer span.End()
	span.SetAttribute("requests", len(reqs))

	results := make([]Resolution, 0, len(reqs))
	selection := make(map[string]string, len(reqs))

	for _, req := range reqs {
		res, err := a.resolveOne(req)
		if err != nil {
			span.RecordError(err)
			return nil, nil, err
		}
		results = append(results, res)
		selection[res.Artifact] = res.Version
	}

	warnings := a.validator.Validate(selection)
	for _, w := range warnings {
		a.logger.Warn("untested version combination",
			"artifact", w.Artifact,
			"version", w.Version,
			"base", w.BaseName+"@"+w.BaseVersion,
			"recommended", strings.Join(w.Recommended, ", "),
		)
	}

	return results, warnings, nil
}

func (a *App) resolveOne(req Request) (Resolution, error) {
	art, ok := a.registry.Artifacts()[req.Artifact]
	if !ok {
		return Resolution{}, domain.WithField(domain.ErrUnknownArtifact, "artifact", req.Artifact)
	}

	version := req.Version
	if version == "" {
		version = art.LatestVersion
	}

	key := req.Platform
	if key == "" {
		host, err := platform.Host()
		if err != nil {
			return Resolution{}, err
		}
		key = host
	}

	rec, err := a.registry.Lookup(req.Artifact, version)
	if err != nil {
		return Resolution{}, err
	}

	// The platform entry supplies the release asset name; a miss is left to
	// the resolver, which enumerates what the catalog does have.
	pa := rec.Platforms[key]

	resolveReq := domain.ResolveRequest{
		Artifact:        req.Artifact,
		Version:         version,
		Platform:        key,
		DefaultLocation: defaultLocation(art, version, pa),
		DefaultFilename: pa.Filename,
	}

	source, err := a.resolver.Resolve(resolveReq, a.env)
	if err != nil {
		return Resolution{}, err
	}

	return Resolution{
		Artifact: req.Artifact,
		Version:  version,
		Platform: key,
		Source:   source,
	}, nil
}

// defaultLocation is the upstream location used when neither vendor nor
// mirror applies: a GitHub release URL for tools, an OCI reference for
// components.
func defaultLocation(art domain.Artifact, version string, pa domain.PlatformArtifact) string {
	if art.Kind == domain.KindComponent {
		return domain.OCILocation(art.RepositoryRef, version)
	}
	return domain.ReleaseURL(art.RepositoryRef, version, pa.Filename)
}

// Fetch resolves every request and materializes the results into the cache
// in parallel. Source-build entries resolve but are not fetched; their
// build recipe is logged instead.
func (a *App) Fetch(ctx context.Context, reqs []Request) ([]Fetched, []domain.CompatWarning, error) {
	resolutions, warnings, err := a.Resolve(ctx, reqs)
	if err != nil {
		return nil, nil, err
	}

	ctx, span := a.tracer.Start(ctx, "fetch")
	defer span.End()
	span.SetAttribute("artifacts", len(resolutions))

	results := make([]Fetched, len(resolutions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, res := range resolutions {
		g.Go(func() error {
			if res.Source.ExpectedDigest == "" && res.Source.SourceInfo != nil {
				a.logger.Info("source build required, not fetching",
					"artifact", res.Artifact,
					"version", res.Version,
					"ref", res.Source.SourceInfo.Ref,
					"build_command", res.Source.SourceInfo.BuildCommand,
				)
				results[i] = Fetched{Resolution: res}
				return nil
			}

			path, err := a.fetcher.Fetch(ctx, res.Source)
			if err != nil {
				return err
			}
			results[i] = Fetched{Resolution: res, Path: path}
			a.logger.Info("fetched",
				"artifact", res.Artifact,
				"version", res.Version,
				"path", path,
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, warnings, err
	}
	return results, warnings, nil
}

// Verify recomputes the SHA-256 of the file at path and compares it against
// expected.
func (a *App) Verify(_ context.Context, path, expected string) error {
	if !domain.IsValidDigest(expected) {
		err := zerr.New("expected digest is not 64 lowercase hex characters")
		return zerr.With(err, "digest", expected)
	}
	if err := digest.VerifyFile(path, expected); err != nil {
		return err
	}
	a.logger.Info("digest verified", "path", path)
	return nil
}

// VersionsInfo describes the published versions of one artifact.
type VersionsInfo struct {
	Artifact  string
	Latest    string
	Versions  []string
	Platforms map[string][]domain.PlatformKey
}

// Versions lists the published versions and platforms for an artifact.
func (a *App) Versions(_ context.Context, artifact string) (VersionsInfo, error) {
	latest, err := a.registry.LatestVersion(artifact)
	if err != nil {
		return VersionsInfo{}, err
	}
	versions, err := a.registry.ListVersions(artifact)
	if err != nil {
		return VersionsInfo{}, err
	}

	info := VersionsInfo{
		Artifact:  artifact,
		Latest:    latest,
		Versions:  versions,
		Platforms: make(map[string][]domain.PlatformKey, len(versions)),
	}
	for _, v := range versions {
		platforms, err := a.registry.ListPlatforms(artifact, v)
		if err != nil {
			return VersionsInfo{}, err
		}
		info.Platforms[v] = platforms
	}
	return info, nil
}

// Validate screens an explicit artifact-version selection against the
// compatibility matrix.
func (a *App) Validate(_ context.Context, selection map[string]string) []domain.CompatWarning {
	return a.validator.Validate(selection)
}

// Clean removes the content-addressed artifact cache.
func (a *App) Clean(_ context.Context) error {
	a.logger.Info("removing artifact cache", "path", a.cacheRoot)
	if err := os.RemoveAll(a.cacheRoot); err != nil {
		return errors.Join(zerr.New(fmt.Sprintf("failed to remove %s", a.cacheRoot)), err)
	}
	a.logger.Info("removed artifact cache")
	return nil
}

// Shutdown flushes telemetry.
func (a *App) Shutdown(ctx context.Context) error {
	return a.tracer.Shutdown(ctx)
}
