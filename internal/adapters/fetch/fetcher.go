// Package fetch materializes resolved sources into the content-addressed
// cache, verifying every byte against the expected digest on the way in.
package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.hermetik.dev/hermetik/internal/core/domain"
	"go.hermetik.dev/hermetik/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

const maxDownloadAttempts = 3

// Fetcher implements ports.Fetcher over a Transport and a cache root.
// Concurrent fetches of the same digest are collapsed into one transfer.
type Fetcher struct {
	transport ports.Transport
	env       domain.EnvironmentConfig
	cacheRoot string
	log       ports.Logger
	group     singleflight.Group
}

// NewFetcher creates a Fetcher writing into cacheRoot.
func NewFetcher(transport ports.Transport, env domain.EnvironmentConfig, cacheRoot string, log ports.Logger) *Fetcher {
	return &Fetcher{
		transport: transport,
		env:       env,
		cacheRoot: cacheRoot,
		log:       log,
	}
}

// Fetch returns the cache path holding the verified artifact. A populated
// cache slot short-circuits without touching the source; the slot path
// contains the digest, so its presence implies prior verification.
func (f *Fetcher) Fetch(ctx context.Context, source domain.ResolvedSource) (string, error) {
	if source.ExpectedDigest == "" {
		err := domain.WithField(domain.ErrMissingDigest, "location", source.Location)
		return "", zerr.With(err, "filename", source.Filename)
	}

	slot := domain.CacheSlot(f.cacheRoot, source.ExpectedDigest, source.Filename)
	if _, err := os.Stat(slot); err == nil {
		return slot, nil
	}

	_, err, _ := f.group.Do(source.ExpectedDigest, func() (any, error) {
		// Re-check under the flight lock; a concurrent fetch may have
		// populated the slot while this caller was queued.
		if _, err := os.Stat(slot); err == nil {
			return nil, nil
		}
		return nil, f.populate(ctx, source, slot)
	})
	if err != nil {
		return "", err
	}
	return slot, nil
}

func (f *Fetcher) populate(ctx context.Context, source domain.ResolvedSource, slot string) error {
	dir := filepath.Dir(slot)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return domain.WithField(domain.ErrCacheCreateFailed, "dir", dir)
	}

	switch source.Kind {
	case domain.SourceLocal:
		return f.copyLocal(source, slot)
	default:
		return f.download(ctx, source, slot)
	}
}

// copyLocal streams a vendored file into the cache. The vendor copy is
// verified like any download; a tampered vendor tree must not populate the
// cache.
func (f *Fetcher) copyLocal(source domain.ResolvedSource, slot string) error {
	in, err := os.Open(source.Location)
	if err != nil {
		return domain.WithField(domain.ErrLocalCopyFailed, "path", source.Location)
	}
	defer in.Close() //nolint:errcheck // read-only handle

	return f.writeVerified(in, source, slot, domain.ErrLocalCopyFailed)
}

// download pulls the source URL with bounded retries. Only transport
// failures are retried; a checksum mismatch is terminal because the same
// bytes would come back again.
func (f *Fetcher) download(ctx context.Context, source domain.ResolvedSource, slot string) error {
	token := f.env.CredentialFor(hostOf(source.Location))

	attempt := 0
	op := func() error {
		attempt++
		if attempt > 1 {
			f.log.Warn("retrying download",
				"url", source.Location,
				"attempt", attempt,
			)
		}

		body, err := f.transport.Get(ctx, source.Location, token)
		if err != nil {
			if !errors.Is(err, domain.ErrNetworkFailed) {
				return backoff.Permanent(err)
			}
			return err
		}
		defer body.Close() //nolint:errcheck // best effort drain

		if err := f.writeVerified(body, source, slot, domain.ErrNetworkFailed); err != nil {
			// Checksum, cache, and disk problems will not heal on retry.
			if !errors.Is(err, domain.ErrNetworkFailed) {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(newRetryPolicy(), maxDownloadAttempts-1),
		ctx,
	)
	return backoff.Retry(op, policy)
}

func newRetryPolicy() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	return b
}

// writeVerified streams r into a temp file beside the slot while hashing,
// then renames into place only when the digest matches. The slot is never
// visible half-written or wrong. Read failures surface as readErr so local
// copies and downloads classify differently.
func (f *Fetcher) writeVerified(r io.Reader, source domain.ResolvedSource, slot string, readErr error) error {
	tmp, err := os.CreateTemp(filepath.Dir(slot), ".partial-*")
	if err != nil {
		return domain.WithField(domain.ErrCacheWriteFailed, "slot", slot)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after successful rename

	hash := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tmp, hash), r); err != nil {
		tmp.Close() //nolint:errcheck,gosec
		werr := domain.WithField(readErr, "location", source.Location)
		return zerr.With(werr, "cause", err.Error())
	}
	if err := tmp.Close(); err != nil {
		return domain.WithField(domain.ErrCacheWriteFailed, "slot", slot)
	}

	actual := hex.EncodeToString(hash.Sum(nil))
	if actual != source.ExpectedDigest {
		msg := "expected " + source.ExpectedDigest + ", got " + actual
		err := zerr.With(zerr.Wrap(domain.ErrChecksumMismatch, msg), "location", source.Location)
		err = zerr.With(err, "expected", source.ExpectedDigest)
		return zerr.With(err, "actual", actual)
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return domain.WithField(domain.ErrCacheWriteFailed, "slot", slot)
	}
	if err := os.Rename(tmpName, slot); err != nil {
		return domain.WithField(domain.ErrCacheWriteFailed, "slot", slot)
	}
	return nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
