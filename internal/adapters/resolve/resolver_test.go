package resolve_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.hermetik.dev/hermetik/internal/adapters/catalog"
	"go.hermetik.dev/hermetik/internal/adapters/logger"
	"go.hermetik.dev/hermetik/internal/adapters/resolve"
	"go.hermetik.dev/hermetik/internal/core/domain"
)

const (
	wasmToolsDigest = "154e9ea5f5477aa57466cfb10e44bc62ef537e32bf13d1c35ceb4fedd9921510"
	wasmToolsFile   = "wasm-tools-1.235.0-x86_64-macos.tar.gz"
	wasmToolsURL    = "https://github.com/bytecodealliance/wasm-tools/releases/download/v1.235.0/" + wasmToolsFile
)

func newResolver(t *testing.T) *resolve.Resolver {
	t.Helper()
	c, err := catalog.Load(logger.New(), "")
	require.NoError(t, err)
	return resolve.NewResolver(c)
}

func wasmToolsRequest() domain.ResolveRequest {
	return domain.ResolveRequest{
		Artifact:        "wasm-tools",
		Version:         "1.235.0",
		Platform:        domain.PlatformDarwinAmd64,
		DefaultLocation: wasmToolsURL,
		DefaultFilename: wasmToolsFile,
	}
}

// vendorFile creates {vendor}/{artifact}/{version}/{platform}/{filename}.
func vendorFile(t *testing.T, vendorDir string, req domain.ResolveRequest) string {
	t.Helper()
	path := domain.VendorPath(vendorDir, req.Artifact, req.Version, req.Platform, req.DefaultFilename)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("vendored bytes"), 0o600))
	return path
}

func TestResolve_DefaultLocation(t *testing.T) {
	t.Parallel()

	r := newResolver(t)
	src, err := r.Resolve(wasmToolsRequest(), domain.EnvironmentConfig{})
	require.NoError(t, err)

	assert.Equal(t, domain.SourceRemote, src.Kind)
	assert.Equal(t, wasmToolsURL, src.Location)
	assert.Equal(t, wasmToolsDigest, src.ExpectedDigest)
}

func TestResolve_Deterministic(t *testing.T) {
	t.Parallel()

	r := newResolver(t)
	env := domain.EnvironmentConfig{MirrorBase: "https://mirror.example.com"}

	first, err := r.Resolve(wasmToolsRequest(), env)
	require.NoError(t, err)
	second, err := r.Resolve(wasmToolsRequest(), env)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolve_Mirror(t *testing.T) {
	t.Parallel()

	r := newResolver(t)
	src, err := r.Resolve(wasmToolsRequest(), domain.EnvironmentConfig{
		MirrorBase: "https://mirror.example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SourceRemote, src.Kind)
	assert.Equal(t,
		"https://mirror.example.com/wasm-tools/1.235.0/darwin_amd64/"+wasmToolsFile,
		src.Location)
	assert.Equal(t, wasmToolsDigest, src.ExpectedDigest)
}

func TestResolve_VendorBeatsMirror(t *testing.T) {
	t.Parallel()

	r := newResolver(t)
	req := wasmToolsRequest()
	vendorDir := t.TempDir()
	path := vendorFile(t, vendorDir, req)

	src, err := r.Resolve(req, domain.EnvironmentConfig{
		VendorDir:  vendorDir,
		MirrorBase: "https://mirror.example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SourceLocal, src.Kind)
	assert.Equal(t, path, src.Location)
	assert.Equal(t, wasmToolsDigest, src.ExpectedDigest)
}

func TestResolve_VendorMissFallsThroughToMirror(t *testing.T) {
	t.Parallel()

	r := newResolver(t)
	src, err := r.Resolve(wasmToolsRequest(), domain.EnvironmentConfig{
		VendorDir:  t.TempDir(), // empty, no vendored copy
		MirrorBase: "https://mirror.example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SourceRemote, src.Kind)
	assert.Contains(t, src.Location, "mirror.example.com")
}

func TestResolve_Offline(t *testing.T) {
	t.Parallel()

	t.Run("vendored copy is served", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t)
		req := wasmToolsRequest()
		vendorDir := t.TempDir()
		path := vendorFile(t, vendorDir, req)

		src, err := r.Resolve(req, domain.EnvironmentConfig{
			Offline:   true,
			VendorDir: vendorDir,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.SourceLocal, src.Kind)
		assert.Equal(t, path, src.Location)
	})

	t.Run("missing vendor file fails, never falls back", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t)
		_, err := r.Resolve(wasmToolsRequest(), domain.EnvironmentConfig{
			Offline:    true,
			VendorDir:  t.TempDir(),
			MirrorBase: "https://mirror.example.com", // must be ignored
		})
		require.ErrorIs(t, err, domain.ErrOfflineViolation)
	})

	t.Run("unset vendor dir fails", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t)
		_, err := r.Resolve(wasmToolsRequest(), domain.EnvironmentConfig{Offline: true})
		require.ErrorIs(t, err, domain.ErrVendorDirUnset)
	})
}

func TestResolve_UnknownTriple(t *testing.T) {
	t.Parallel()

	t.Run("unknown version", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t)
		req := wasmToolsRequest()
		req.Version = "999.0.0"
		req.Platform = domain.PlatformLinuxAmd64

		_, err := r.Resolve(req, domain.EnvironmentConfig{})
		require.ErrorIs(t, err, domain.ErrUnknownArtifact)
		assert.Contains(t, err.Error(), "1.235.0", "known versions enumerated for debugging")
	})

	t.Run("unknown platform", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t)
		req := domain.ResolveRequest{
			Artifact:        "wkg",
			Version:         "0.11.0",
			Platform:        domain.PlatformWindowsAmd64,
			DefaultFilename: "wkg-x86_64-pc-windows-gnu",
		}

		_, err := r.Resolve(req, domain.EnvironmentConfig{})
		require.ErrorIs(t, err, domain.ErrUnknownArtifact)
		assert.Contains(t, err.Error(), "linux_amd64")
	})

	t.Run("unknown artifact", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t)
		req := wasmToolsRequest()
		req.Artifact = "no-such-tool"

		_, err := r.Resolve(req, domain.EnvironmentConfig{})
		require.ErrorIs(t, err, domain.ErrUnknownArtifact)
	})
}

func TestResolve_SourceBuild(t *testing.T) {
	t.Parallel()

	r := newResolver(t)
	req := domain.ResolveRequest{
		Artifact:        "wasmtime",
		Version:         "31.0.0",
		Platform:        domain.PlatformLinuxArm64,
		DefaultLocation: "https://github.com/bytecodealliance/wasmtime/archive/v31.0.0.tar.gz",
		DefaultFilename: "wasmtime-v31.0.0-aarch64-linux.tar.xz",
	}

	src, err := r.Resolve(req, domain.EnvironmentConfig{})
	require.NoError(t, err)

	assert.Empty(t, src.ExpectedDigest, "source builds verify post-build")
	require.NotNil(t, src.SourceInfo)
	assert.Equal(t, "cargo build --release -p wasmtime-cli", src.SourceInfo.BuildCommand)
}
