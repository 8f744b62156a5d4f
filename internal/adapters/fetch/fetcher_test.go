package fetch_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.hermetik.dev/hermetik/internal/adapters/fetch"
	"go.hermetik.dev/hermetik/internal/adapters/logger"
	"go.hermetik.dev/hermetik/internal/core/domain"
	"go.hermetik.dev/hermetik/internal/core/ports"
	"go.hermetik.dev/hermetik/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const (
	payload       = "artifact-bytes"
	payloadDigest = "6521df166eb07efaf36eba5b6bedefd9d6a252e9c80bab1c99653700ec71473c"
	artifactFile  = "wasm-tools-1.235.0-x86_64-macos.tar.gz"
	artifactURL   = "https://mirror.example.com/wasm-tools/1.235.0/darwin_amd64/" + artifactFile
)

func remoteSource() domain.ResolvedSource {
	return domain.ResolvedSource{
		Kind:           domain.SourceRemote,
		Location:       artifactURL,
		ExpectedDigest: payloadDigest,
		Filename:       artifactFile,
	}
}

func body(content string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(content))
}

func newFetcher(t *testing.T, transport ports.Transport, env domain.EnvironmentConfig) (*fetch.Fetcher, string) {
	t.Helper()
	cacheRoot := t.TempDir()
	return fetch.NewFetcher(transport, env, cacheRoot, logger.New()), cacheRoot
}

// assertNoPartials verifies no temp file survived a failed population.
func assertNoPartials(t *testing.T, cacheRoot string) {
	t.Helper()
	err := filepath.WalkDir(cacheRoot, func(path string, d os.DirEntry, err error) error {
		require.NoError(t, err)
		if !d.IsDir() {
			assert.Fail(t, "unexpected file in cache", path)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestFetch_Download(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	transport := mocks.NewMockTransport(ctrl)
	transport.EXPECT().Get(gomock.Any(), artifactURL, "").Return(body(payload), nil)

	f, cacheRoot := newFetcher(t, transport, domain.EnvironmentConfig{})
	path, err := f.Fetch(context.Background(), remoteSource())
	require.NoError(t, err)

	assert.Equal(t, domain.CacheSlot(cacheRoot, payloadDigest, artifactFile), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, string(content))
}

func TestFetch_CacheHitSkipsTransfer(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	transport := mocks.NewMockTransport(ctrl) // zero expected calls

	f, cacheRoot := newFetcher(t, transport, domain.EnvironmentConfig{})
	slot := domain.CacheSlot(cacheRoot, payloadDigest, artifactFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(slot), 0o750))
	require.NoError(t, os.WriteFile(slot, []byte(payload), 0o644))

	path, err := f.Fetch(context.Background(), remoteSource())
	require.NoError(t, err)
	assert.Equal(t, slot, path)
}

func TestFetch_ChecksumMismatchIsTerminal(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	transport := mocks.NewMockTransport(ctrl)
	// Exactly one call: corrupt content must not be re-requested.
	transport.EXPECT().Get(gomock.Any(), artifactURL, "").Return(body("corrupted"), nil).Times(1)

	f, cacheRoot := newFetcher(t, transport, domain.EnvironmentConfig{})
	_, err := f.Fetch(context.Background(), remoteSource())
	require.ErrorIs(t, err, domain.ErrChecksumMismatch)
	assert.Contains(t, err.Error(), payloadDigest)

	assertNoPartials(t, cacheRoot)
}

func TestFetch_NetworkErrorsAreRetried(t *testing.T) {
	t.Parallel()

	netErr := domain.WithField(domain.ErrNetworkFailed, "url", artifactURL)

	ctrl := gomock.NewController(t)
	transport := mocks.NewMockTransport(ctrl)
	gomock.InOrder(
		transport.EXPECT().Get(gomock.Any(), artifactURL, "").Return(nil, netErr),
		transport.EXPECT().Get(gomock.Any(), artifactURL, "").Return(nil, netErr),
		transport.EXPECT().Get(gomock.Any(), artifactURL, "").Return(body(payload), nil),
	)

	f, _ := newFetcher(t, transport, domain.EnvironmentConfig{})
	path, err := f.Fetch(context.Background(), remoteSource())
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestFetch_RetriesAreBounded(t *testing.T) {
	t.Parallel()

	netErr := domain.WithField(domain.ErrNetworkFailed, "url", artifactURL)

	ctrl := gomock.NewController(t)
	transport := mocks.NewMockTransport(ctrl)
	transport.EXPECT().Get(gomock.Any(), artifactURL, "").Return(nil, netErr).Times(3)

	f, _ := newFetcher(t, transport, domain.EnvironmentConfig{})
	_, err := f.Fetch(context.Background(), remoteSource())
	require.ErrorIs(t, err, domain.ErrNetworkFailed)
}

func TestFetch_RejectedDownloadIsNotRetried(t *testing.T) {
	t.Parallel()

	rejected := zerr.With(zerr.New("download rejected: 403 Forbidden"), "url", artifactURL)

	ctrl := gomock.NewController(t)
	transport := mocks.NewMockTransport(ctrl)
	transport.EXPECT().Get(gomock.Any(), artifactURL, "").Return(nil, rejected).Times(1)

	f, _ := newFetcher(t, transport, domain.EnvironmentConfig{})
	_, err := f.Fetch(context.Background(), remoteSource())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestFetch_BearerTokenForConfiguredHost(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	transport := mocks.NewMockTransport(ctrl)
	transport.EXPECT().Get(gomock.Any(), artifactURL, "s3cret").Return(body(payload), nil)

	env := domain.EnvironmentConfig{
		RegistryAuth: map[string]string{"mirror.example.com": "s3cret"},
	}
	f, _ := newFetcher(t, transport, env)
	_, err := f.Fetch(context.Background(), remoteSource())
	require.NoError(t, err)
}

func TestFetch_MissingDigestRefused(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	transport := mocks.NewMockTransport(ctrl) // zero expected calls

	f, _ := newFetcher(t, transport, domain.EnvironmentConfig{})
	src := remoteSource()
	src.ExpectedDigest = ""

	_, err := f.Fetch(context.Background(), src)
	require.ErrorIs(t, err, domain.ErrMissingDigest)
}

func TestFetch_LocalSource(t *testing.T) {
	t.Parallel()

	t.Run("vendored file is copied and verified", func(t *testing.T) {
		t.Parallel()

		vendorPath := filepath.Join(t.TempDir(), artifactFile)
		require.NoError(t, os.WriteFile(vendorPath, []byte(payload), 0o600))

		ctrl := gomock.NewController(t)
		f, cacheRoot := newFetcher(t, mocks.NewMockTransport(ctrl), domain.EnvironmentConfig{})

		src := remoteSource()
		src.Kind = domain.SourceLocal
		src.Location = vendorPath

		path, err := f.Fetch(context.Background(), src)
		require.NoError(t, err)
		assert.Equal(t, domain.CacheSlot(cacheRoot, payloadDigest, artifactFile), path)
	})

	t.Run("tampered vendored file never enters the cache", func(t *testing.T) {
		t.Parallel()

		vendorPath := filepath.Join(t.TempDir(), artifactFile)
		require.NoError(t, os.WriteFile(vendorPath, []byte("tampered"), 0o600))

		ctrl := gomock.NewController(t)
		f, cacheRoot := newFetcher(t, mocks.NewMockTransport(ctrl), domain.EnvironmentConfig{})

		src := remoteSource()
		src.Kind = domain.SourceLocal
		src.Location = vendorPath

		_, err := f.Fetch(context.Background(), src)
		require.ErrorIs(t, err, domain.ErrChecksumMismatch)
		assertNoPartials(t, cacheRoot)
	})

	t.Run("missing vendored file", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		f, _ := newFetcher(t, mocks.NewMockTransport(ctrl), domain.EnvironmentConfig{})

		src := remoteSource()
		src.Kind = domain.SourceLocal
		src.Location = filepath.Join(t.TempDir(), "absent")

		_, err := f.Fetch(context.Background(), src)
		require.ErrorIs(t, err, domain.ErrLocalCopyFailed)
	})
}

// gateTransport blocks every Get until released, counting calls. It proves
// concurrent fetches of one digest collapse into a single transfer.
type gateTransport struct {
	calls   atomic.Int32
	release chan struct{}
}

func (g *gateTransport) Get(_ context.Context, _, _ string) (io.ReadCloser, error) {
	g.calls.Add(1)
	<-g.release
	return body(payload), nil
}

func TestFetch_ConcurrentFetchesShareOneTransfer(t *testing.T) {
	t.Parallel()

	transport := &gateTransport{release: make(chan struct{})}
	f, _ := newFetcher(t, transport, domain.EnvironmentConfig{})

	const workers = 8
	var wg sync.WaitGroup
	paths := make([]string, workers)
	errs := make([]error, workers)

	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			paths[i], errs[i] = f.Fetch(context.Background(), remoteSource())
		}()
	}

	close(transport.release)
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, paths[0], paths[i])
	}
	assert.Equal(t, int32(1), transport.calls.Load())
}

func TestHTTPTransport(t *testing.T) {
	t.Parallel()

	t.Run("streams 200 body and sends bearer token", func(t *testing.T) {
		t.Parallel()

		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(payload))
		}))
		defer srv.Close()

		rc, err := fetch.NewHTTPTransport().Get(context.Background(), srv.URL, "s3cret")
		require.NoError(t, err)
		defer rc.Close() //nolint:errcheck

		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, payload, string(content))
		assert.Equal(t, "Bearer s3cret", gotAuth)
	})

	t.Run("server errors are retryable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := fetch.NewHTTPTransport().Get(context.Background(), srv.URL, "")
		require.ErrorIs(t, err, domain.ErrNetworkFailed)
	})

	t.Run("client errors are not network failures", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := fetch.NewHTTPTransport().Get(context.Background(), srv.URL, "")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNetworkFailed)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("connection refused", func(t *testing.T) {
		t.Parallel()

		_, err := fetch.NewHTTPTransport().Get(context.Background(), "http://127.0.0.1:1/x", "")
		require.ErrorIs(t, err, domain.ErrNetworkFailed)
	})
}
