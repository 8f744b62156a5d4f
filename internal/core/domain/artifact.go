// Package domain contains the core types for artifact resolution.
package domain

// PlatformKey identifies a supported operating system and architecture pair,
// e.g. "linux_amd64" or "darwin_arm64".
type PlatformKey string

// Supported platform keys. The set is closed: anything outside it is rejected
// at detection time rather than defaulted.
const (
	PlatformLinuxAmd64   PlatformKey = "linux_amd64"
	PlatformLinuxArm64   PlatformKey = "linux_arm64"
	PlatformDarwinAmd64  PlatformKey = "darwin_amd64"
	PlatformDarwinArm64  PlatformKey = "darwin_arm64"
	PlatformWindowsAmd64 PlatformKey = "windows_amd64"
	PlatformWindowsArm64 PlatformKey = "windows_arm64"
)

// ArtifactKind distinguishes build-tool binaries from content-addressed
// components. Both share the same catalog shape.
type ArtifactKind string

const (
	// KindTool is a build-tool binary (compiler, binding generator, linker).
	KindTool ArtifactKind = "tool"
	// KindComponent is a prebuilt content-addressed component.
	KindComponent ArtifactKind = "component"
)

// BuildType describes how an artifact is materialized.
type BuildType string

const (
	// BuildPrebuilt artifacts have a published binary with a pinned digest.
	BuildPrebuilt BuildType = "prebuilt"
	// BuildSource artifacts are built from a pinned source revision; no
	// binary digest exists until after the build.
	BuildSource BuildType = "source"
)

// SourceBuildDigest is the sentinel stored in place of a digest for
// source-build entries. It marks "no precomputed binary digest, verify
// post-build" and is only legal together with SourceInfo.
const SourceBuildDigest = "source-build"

// DigestHexLen is the length of a lowercase hex SHA-256 digest.
const DigestHexLen = 64

// SourceInfo pins a source build: repository ref, commit, and the command
// that produces the binary.
type SourceInfo struct {
	Ref          string `json:"ref"`
	Commit       string `json:"commit"`
	BuildCommand string `json:"build_command"`
}

// PlatformArtifact is the per-platform record inside a version: the pinned
// digest plus a location hint (URL suffix, upstream platform name, or binary
// name depending on how the upstream names its release assets). Filename is
// the full release asset name derived from the hint at load time; it is
// reproduced verbatim in vendor paths and mirror URLs.
type PlatformArtifact struct {
	Digest       string
	LocationHint string
	Filename     string
	SourceInfo   *SourceInfo
}

// IsSourceBuild reports whether this entry carries the source-build sentinel
// instead of a binary digest.
func (p PlatformArtifact) IsSourceBuild() bool {
	return p.Digest == SourceBuildDigest
}

// VersionRecord holds the release metadata for one version of an artifact.
type VersionRecord struct {
	Version     string
	ReleaseDate string
	Platforms   map[PlatformKey]PlatformArtifact
}

// Artifact is one catalog entry. Identity is Name; records are immutable
// after load.
type Artifact struct {
	Name          string
	Kind          ArtifactKind
	RepositoryRef string
	LatestVersion string
	BuildType     BuildType
	Versions      map[string]VersionRecord
}

// IsValidDigest reports whether s is a 64-character lowercase hex SHA-256
// digest.
func IsValidDigest(s string) bool {
	if len(s) != DigestHexLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
