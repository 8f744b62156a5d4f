package ports

import (
	"context"
	"io"

	"go.hermetik.dev/hermetik/internal/core/domain"
)

// Fetcher materializes a resolved source into a verified local path inside
// the content-addressed cache. Safe for concurrent use; concurrent fetches
// of the same digest share one transfer.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch returns the cache path of the verified artifact. Checksum
	// mismatches are terminal; transport failures are retried with bounded
	// backoff before giving up.
	Fetch(ctx context.Context, source domain.ResolvedSource) (string, error)
}

// Transport performs a single download attempt. It exists so tests can prove
// the network was or was not touched; production wiring uses http.Client.
type Transport interface {
	// Get streams the body for the given URL. The caller closes the reader.
	// The token, when non-empty, is sent as a bearer credential.
	Get(ctx context.Context, url, token string) (io.ReadCloser, error)
}
