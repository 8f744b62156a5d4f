package fetch

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"go.hermetik.dev/hermetik/internal/core/domain"
	"go.trai.ch/zerr"
)

// HTTPTransport implements ports.Transport over an http.Client. Server and
// connection failures come back as ErrNetworkFailed so the fetcher retries
// them; client errors do not, since the same request would fail again.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates a transport with a bounded per-request timeout.
func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{Timeout: 5 * time.Minute},
	}
}

// Get streams the response body for url. The caller closes the reader.
// Non-HTTP schemes (such as oci:// component references) fail terminally;
// those artifacts must come from a vendor directory or mirror.
func (t *HTTPTransport) Get(ctx context.Context, url, token string) (io.ReadCloser, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		err := zerr.New("unsupported location scheme")
		return nil, zerr.With(err, "url", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		err := zerr.New("invalid download url")
		return nil, zerr.With(err, "url", url)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		nerr := domain.WithField(domain.ErrNetworkFailed, "url", url)
		return nil, zerr.With(nerr, "cause", err.Error())
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode >= http.StatusInternalServerError:
		resp.Body.Close() //nolint:errcheck,gosec
		nerr := zerr.Wrap(domain.ErrNetworkFailed, "server returned "+resp.Status)
		return nil, zerr.With(nerr, "url", url)
	default:
		resp.Body.Close() //nolint:errcheck,gosec
		err := zerr.New("download rejected: " + resp.Status)
		return nil, zerr.With(err, "url", url)
	}
}
