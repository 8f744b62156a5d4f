package domain

import (
	"path/filepath"
	"strings"
)

const (
	// HermetikDirName is the name of the internal metadata directory.
	HermetikDirName = ".hermetik"

	// CacheDirName is the name of the content-addressed cache directory.
	CacheDirName = "cache"

	// DigestDirName namespaces cache entries by digest algorithm.
	DigestDirName = "sha256"

	// ConfigFileName is the name of the operator configuration file.
	ConfigFileName = "hermetik.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCachePath returns the default root of the content-addressed cache.
func DefaultCachePath() string {
	return filepath.Join(HermetikDirName, CacheDirName)
}

// VendorPath builds the fixed vendor layout
// {vendor_dir}/{artifact}/{version}/{platform}/{filename}.
func VendorPath(vendorDir, artifact, version string, platform PlatformKey, filename string) string {
	return filepath.Join(vendorDir, artifact, version, string(platform), filename)
}

// MirrorURL builds the fixed mirror layout
// {mirror_base}/{artifact}/{version}/{platform}/{filename}. The segment
// order must be reproduced exactly; mirrors are populated against it.
func MirrorURL(mirrorBase, artifact, version string, platform PlatformKey, filename string) string {
	return strings.TrimSuffix(mirrorBase, "/") + "/" +
		artifact + "/" + version + "/" + string(platform) + "/" + filename
}

// ReleaseURL builds the upstream default location for a released asset:
// https://github.com/{repo}/releases/download/v{version}/{filename}.
func ReleaseURL(repo, version, filename string) string {
	return "https://github.com/" + repo + "/releases/download/v" + version + "/" + filename
}

// OCILocation is the default location for component artifacts published to
// an OCI registry. Direct OCI pulls are out of scope; the reference exists
// so vendor and mirror copies have a canonical upstream to cite.
func OCILocation(repo, version string) string {
	return "oci://" + repo + ":" + version
}

// CacheSlot returns the cache location for a verified artifact:
// {root}/sha256/{digest[:2]}/{digest}/{filename}. The two-character fan-out
// keeps directory listings bounded.
func CacheSlot(root, digest, filename string) string {
	return filepath.Join(root, DigestDirName, digest[:2], digest, filename)
}
