package domain

import "go.trai.ch/zerr"

var (
	// ErrUnsupportedPlatform is returned when an OS/arch pair cannot be
	// normalized into a supported platform key.
	ErrUnsupportedPlatform = zerr.New("unsupported platform")

	// ErrUnknownArtifact is returned when the catalog has no entry for the
	// requested artifact, version, and platform triple.
	ErrUnknownArtifact = zerr.New("unknown artifact")

	// ErrOfflineViolation is returned when offline mode is active and the
	// vendor directory cannot satisfy the request. The network is never
	// consulted as a fallback.
	ErrOfflineViolation = zerr.New("offline mode requires a vendored copy")

	// ErrVendorDirUnset is returned when offline mode is active but no
	// vendor directory is configured.
	ErrVendorDirUnset = zerr.New("offline mode requires a vendor directory")

	// ErrChecksumMismatch is returned when fetched content does not match
	// the expected digest. Never retried against the same source.
	ErrChecksumMismatch = zerr.New("checksum mismatch")

	// ErrMissingDigest is returned when a fetch is attempted for a source
	// without an expected digest.
	ErrMissingDigest = zerr.New("resolved source has no expected digest")

	// ErrNetworkFailed is returned for transport-level download failures.
	// Transient; retried with bounded backoff.
	ErrNetworkFailed = zerr.New("download failed")

	// ErrCatalogLoad is returned when catalog data is malformed. Fatal at
	// startup; the catalog is never partially loaded.
	ErrCatalogLoad = zerr.New("failed to load artifact catalog")

	// ErrConfigLoad is returned when the environment configuration cannot
	// be read or parsed.
	ErrConfigLoad = zerr.New("failed to load environment configuration")

	// ErrMatrixLoad is returned when the compatibility matrix is malformed.
	ErrMatrixLoad = zerr.New("failed to load compatibility matrix")

	// ErrCacheCreateFailed is returned when the artifact cache directory
	// cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create artifact cache directory")

	// ErrCacheWriteFailed is returned when writing a verified artifact into
	// the cache fails.
	ErrCacheWriteFailed = zerr.New("failed to write artifact cache entry")

	// ErrLocalCopyFailed is returned when a local source cannot be copied
	// into the cache.
	ErrLocalCopyFailed = zerr.New("failed to copy local artifact")

	// ErrVerifyFailed is returned when a file cannot be read for digest
	// verification.
	ErrVerifyFailed = zerr.New("failed to verify artifact")
)

// WithField attaches a structured field to a sentinel while keeping the
// sentinel itself in the cause chain, so errors.Is still matches. Calling
// zerr.With directly on a sentinel returns a detached copy whose chain no
// longer contains it. Further fields can be added with zerr.With; only the
// first decoration needs this.
func WithField(sentinel error, key string, value any) error {
	return zerr.With(zerr.Wrap(sentinel, ""), key, value)
}
