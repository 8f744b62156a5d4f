package domain

// SourceKind says whether a resolved source points at the local filesystem or
// a remote URL.
type SourceKind string

const (
	// SourceLocal is a confirmed-existing path under the vendor directory or
	// cache.
	SourceLocal SourceKind = "local"
	// SourceRemote is a URL to download from.
	SourceRemote SourceKind = "remote"
)

// ResolveRequest asks for one artifact at one version on one platform.
// DefaultLocation is the upstream URL used when no vendor or mirror override
// applies; DefaultFilename is the release asset name, reproduced verbatim in
// vendor paths and mirror URLs.
type ResolveRequest struct {
	Artifact        string
	Version         string
	Platform        PlatformKey
	DefaultLocation string
	DefaultFilename string
}

// ResolvedSource is the outcome of resolution: where to get the bytes and
// what digest they must have. ExpectedDigest is empty only for source builds,
// which are verified after building instead.
type ResolvedSource struct {
	Kind           SourceKind
	Location       string
	ExpectedDigest string
	Filename       string
	SourceInfo     *SourceInfo
}

// EnvironmentConfig captures the operator overrides for one resolution
// session. It is read once at session start and passed by value; later
// environment mutation has no effect on in-flight resolutions.
type EnvironmentConfig struct {
	Offline      bool
	VendorDir    string
	MirrorBase   string
	CatalogDir   string
	RegistryAuth map[string]string
}

// CredentialFor returns the token configured for the given registry host, or
// the empty string. Matching is by exact host only.
func (e EnvironmentConfig) CredentialFor(host string) string {
	return e.RegistryAuth[host]
}
