// Package catalog implements the ports.Registry port: an immutable artifact
// catalog loaded once from JSON records.
package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.hermetik.dev/hermetik/internal/adapters/platform"
	"go.hermetik.dev/hermetik/internal/core/domain"
	"go.hermetik.dev/hermetik/internal/core/ports"
	"go.trai.ch/zerr"
)

//go:embed catalogs/*.json
var seedFS embed.FS

// Catalog is the loaded, read-only artifact registry.
type Catalog struct {
	artifacts   map[string]domain.Artifact
	fingerprint uint64
}

// Load builds a Catalog from the embedded seed records, overlaid with any
// records found in extraDir (operator-managed catalogs win by artifact name).
// Malformed records fail the whole load; the catalog is never partial.
func Load(logger ports.Logger, extraDir string) (*Catalog, error) {
	files, err := seedFiles()
	if err != nil {
		return nil, domain.WithField(domain.ErrCatalogLoad, "cause", err.Error())
	}

	if extraDir != "" {
		extra, err := dirFiles(extraDir)
		if err != nil {
			return nil, err
		}
		files = append(files, extra...)
	}

	c := &Catalog{artifacts: make(map[string]domain.Artifact, len(files))}

	hash := xxhash.New()
	for _, f := range files {
		_, _ = hash.Write(f.data)

		art, err := parseRecord(f.data)
		if err != nil {
			return nil, zerr.With(err, "file", f.name)
		}
		// Operator records overlay seed records wholesale; within one
		// record, versions are append-only and duplicates were rejected
		// during parsing.
		c.artifacts[art.Name] = art
	}
	c.fingerprint = hash.Sum64()

	for _, art := range c.artifacts {
		if drift := latestDrift(art); drift != "" {
			logger.Warn("catalog integrity: latest_version drift",
				"artifact", art.Name, "detail", drift)
		}
	}

	logger.Info("catalog loaded",
		"artifacts", len(c.artifacts),
		"fingerprint", fmt.Sprintf("%016x", c.fingerprint))

	return c, nil
}

// Lookup returns the version record for an artifact and version.
func (c *Catalog) Lookup(artifact, version string) (domain.VersionRecord, error) {
	art, ok := c.artifacts[artifact]
	if !ok {
		return domain.VersionRecord{}, domain.WithField(domain.ErrUnknownArtifact, "artifact", artifact)
	}
	rec, ok := art.Versions[version]
	if !ok {
		msg := "no version " + version + ", known versions: " + strings.Join(c.versionsOf(art), ", ")
		err := zerr.With(zerr.Wrap(domain.ErrUnknownArtifact, msg), "artifact", artifact)
		return domain.VersionRecord{}, zerr.With(err, "version", version)
	}
	return rec, nil
}

// LatestVersion returns the stored latest version. It is catalog data, not
// the maximum version key; drift between the two is reported at load time.
func (c *Catalog) LatestVersion(artifact string) (string, error) {
	art, ok := c.artifacts[artifact]
	if !ok {
		return "", domain.WithField(domain.ErrUnknownArtifact, "artifact", artifact)
	}
	return art.LatestVersion, nil
}

// ListVersions returns all known versions, ascending.
func (c *Catalog) ListVersions(artifact string) ([]string, error) {
	art, ok := c.artifacts[artifact]
	if !ok {
		return nil, domain.WithField(domain.ErrUnknownArtifact, "artifact", artifact)
	}
	return c.versionsOf(art), nil
}

// ListPlatforms returns the platforms published for one version, sorted.
func (c *Catalog) ListPlatforms(artifact, version string) ([]domain.PlatformKey, error) {
	rec, err := c.Lookup(artifact, version)
	if err != nil {
		return nil, err
	}
	keys := make([]domain.PlatformKey, 0, len(rec.Platforms))
	for k := range rec.Platforms {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys, nil
}

// Artifacts returns the catalog entries keyed by name. The map is shared;
// callers must not mutate it.
func (c *Catalog) Artifacts() map[string]domain.Artifact {
	return c.artifacts
}

// Fingerprint is the xxhash64 of the raw catalog bytes, for provenance logs.
func (c *Catalog) Fingerprint() uint64 {
	return c.fingerprint
}

func (c *Catalog) versionsOf(art domain.Artifact) []string {
	versions := make([]string, 0, len(art.Versions))
	for v := range art.Versions {
		versions = append(versions, v)
	}
	return domain.SortVersions(versions)
}

type catalogFile struct {
	name string
	data []byte
}

func seedFiles() ([]catalogFile, error) {
	entries, err := fs.Glob(seedFS, "catalogs/*.json")
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)

	files := make([]catalogFile, 0, len(entries))
	for _, name := range entries {
		data, err := seedFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		files = append(files, catalogFile{name: name, data: data})
	}
	return files, nil
}

func dirFiles(dir string) ([]catalogFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		err = domain.WithField(domain.ErrCatalogLoad, "cause", err.Error())
		return nil, zerr.With(err, "catalog_dir", dir)
	}

	var files []catalogFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		//nolint:gosec // Path comes from the operator-configured catalog directory
		data, err := os.ReadFile(path)
		if err != nil {
			err = domain.WithField(domain.ErrCatalogLoad, "cause", err.Error())
			return nil, zerr.With(err, "file", path)
		}
		files = append(files, catalogFile{name: path, data: data})
	}
	return files, nil
}

func parseRecord(data []byte) (domain.Artifact, error) {
	if err := rejectDuplicateVersions(data); err != nil {
		return domain.Artifact{}, err
	}

	var dto artifactDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domain.Artifact{}, domain.WithField(domain.ErrCatalogLoad, "cause", err.Error())
	}

	name := dto.name()
	if name == "" {
		return domain.Artifact{}, domain.WithField(domain.ErrCatalogLoad, "reason", "missing tool_name/component_name")
	}
	if dto.LatestVersion == "" {
		err := domain.WithField(domain.ErrCatalogLoad, "artifact", name)
		return domain.Artifact{}, zerr.With(err, "reason", "missing latest_version")
	}
	if len(dto.Versions) == 0 {
		err := domain.WithField(domain.ErrCatalogLoad, "artifact", name)
		return domain.Artifact{}, zerr.With(err, "reason", "no versions")
	}

	kind := domain.KindTool
	if dto.ComponentName != "" {
		kind = domain.KindComponent
	}
	buildType := domain.BuildPrebuilt
	if dto.BuildType == string(domain.BuildSource) {
		buildType = domain.BuildSource
	}

	art := domain.Artifact{
		Name:          name,
		Kind:          kind,
		RepositoryRef: dto.repository(),
		LatestVersion: dto.LatestVersion,
		BuildType:     buildType,
		Versions:      make(map[string]domain.VersionRecord, len(dto.Versions)),
	}

	for version, vdto := range dto.Versions {
		rec := domain.VersionRecord{
			Version:     version,
			ReleaseDate: vdto.ReleaseDate,
			Platforms:   make(map[domain.PlatformKey]domain.PlatformArtifact, len(vdto.Platforms)),
		}
		for rawKey, pdto := range vdto.Platforms {
			key, err := platform.Parse(rawKey)
			if err != nil {
				err = domain.WithField(domain.ErrCatalogLoad, "cause", err.Error())
				err = zerr.With(err, "artifact", name)
				return domain.Artifact{}, zerr.With(err, "version", version)
			}
			pa, err := parsePlatform(name, version, rawKey, pdto)
			if err != nil {
				return domain.Artifact{}, err
			}
			rec.Platforms[key] = pa
		}
		art.Versions[version] = rec
	}

	return art, nil
}

func parsePlatform(name, version, key string, dto platformDTO) (domain.PlatformArtifact, error) {
	fail := func(reason string) error {
		err := domain.WithField(domain.ErrCatalogLoad, "artifact", name)
		err = zerr.With(err, "version", version)
		err = zerr.With(err, "platform", key)
		return zerr.With(err, "reason", reason)
	}

	switch {
	case dto.SHA256 == "":
		return domain.PlatformArtifact{}, fail("missing sha256")
	case dto.SHA256 == domain.SourceBuildDigest:
		if dto.SourceInfo == nil {
			return domain.PlatformArtifact{}, fail("source-build sentinel without source_info")
		}
	case !domain.IsValidDigest(dto.SHA256):
		return domain.PlatformArtifact{}, fail("sha256 is not 64 lowercase hex characters")
	}

	if dto.locationHint() == "" {
		return domain.PlatformArtifact{}, fail("missing url_suffix/platform_name/binary_name")
	}

	pa := domain.PlatformArtifact{
		Digest:       dto.SHA256,
		LocationHint: dto.locationHint(),
		Filename:     dto.filename(name, version),
	}
	if dto.SourceInfo != nil {
		pa.SourceInfo = &domain.SourceInfo{
			Ref:          dto.SourceInfo.Ref,
			Commit:       dto.SourceInfo.Commit,
			BuildCommand: dto.SourceInfo.BuildCommand,
		}
	}
	return pa, nil
}

// rejectDuplicateVersions scans the raw JSON for repeated keys inside the
// top-level "versions" object. encoding/json silently keeps the last
// duplicate, which would let a republished version overwrite a pinned
// digest.
func rejectDuplicateVersions(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	// Walk to the "versions" key at depth 1.
	tok, err := dec.Token()
	if err != nil {
		return domain.WithField(domain.ErrCatalogLoad, "cause", err.Error())
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return domain.WithField(domain.ErrCatalogLoad, "reason", "record is not a JSON object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return domain.WithField(domain.ErrCatalogLoad, "cause", err.Error())
		}
		key, _ := keyTok.(string)

		if key != "versions" {
			if err := skipValue(dec); err != nil {
				return err
			}
			continue
		}

		open, err := dec.Token()
		if err != nil {
			return domain.WithField(domain.ErrCatalogLoad, "cause", err.Error())
		}
		if d, ok := open.(json.Delim); !ok || d != '{' {
			return domain.WithField(domain.ErrCatalogLoad, "reason", "versions is not a JSON object")
		}

		seen := make(map[string]bool)
		for dec.More() {
			vTok, err := dec.Token()
			if err != nil {
				return domain.WithField(domain.ErrCatalogLoad, "cause", err.Error())
			}
			version, _ := vTok.(string)
			if seen[version] {
				err := domain.WithField(domain.ErrCatalogLoad, "reason", "duplicate version key")
				return zerr.With(err, "version", version)
			}
			seen[version] = true
			if err := skipValue(dec); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// skipValue consumes one complete JSON value from the decoder.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return domain.WithField(domain.ErrCatalogLoad, "cause", err.Error())
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return domain.WithField(domain.ErrCatalogLoad, "cause", err.Error())
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

// latestDrift reports how the stored latest_version disagrees with the
// actual maximum version key, or "" if they agree.
func latestDrift(art domain.Artifact) string {
	versions := make([]string, 0, len(art.Versions))
	for v := range art.Versions {
		versions = append(versions, v)
	}
	max := domain.MaxVersion(versions)

	if _, ok := art.Versions[art.LatestVersion]; !ok {
		return fmt.Sprintf("latest_version %s has no version record", art.LatestVersion)
	}
	if art.LatestVersion != max {
		return fmt.Sprintf("latest_version %s behind maximum %s", art.LatestVersion, max)
	}
	return ""
}
