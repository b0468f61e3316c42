package asset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// open returns a stream for a texture identifier. Identifiers without a
// scheme (or with file://) are read from disk; http and https are fetched.
func (l *Loader) open(ctx context.Context, id string) (io.ReadCloser, error) {
	u, err := url.Parse(strings.ReplaceAll(id, `\`, `/`))
	if err != nil {
		return nil, err
	}

	switch u.Scheme {
	case "", "file":
		return os.Open(filepath.Clean(filepath.FromSlash(u.Path)))
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", u.Redacted(), err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("fetching %s: status %d", u.Redacted(), resp.StatusCode)
		}
		return resp.Body, nil
	default:
		// Drive letters parse as a one-letter scheme.
		if len(u.Scheme) == 1 {
			return os.Open(filepath.Clean(id))
		}
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}
