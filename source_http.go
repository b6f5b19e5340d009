package golgr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"
)

// httpSource fetches an LGR document over HTTP(S).
type httpSource struct {
	url    string
	client *http.Client
}

// HTTPSource returns a Source fetching the document from the given URL.
// A pooled default client is used unless the merge is configured with
// WithHTTPClient or WithTimeout.
func HTTPSource(rawURL string) Source {
	return &httpSource{url: rawURL}
}

// Name returns the base name of the URL path, or the whole URL when no
// usable path component exists.
func (s *httpSource) Name() string {
	u, err := url.Parse(s.url)
	if err != nil {
		return s.url
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return s.url
	}
	return base
}

// Open fetches the document. A 404 maps to ErrRulesetNotFound so callers
// can distinguish a missing document from an unreachable server.
func (s *httpSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client := s.client
	if client == nil {
		client = newHTTPClient(0)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.url, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned status 404", ErrRulesetNotFound, s.url)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: status %d", s.url, resp.StatusCode)
	}
	return resp.Body, nil
}

// withClient returns a copy of the source bound to the given client. The
// receiver is never mutated so sources can be shared across merges.
func (s *httpSource) withClient(client *http.Client) *httpSource {
	return &httpSource{url: s.url, client: client}
}

// newHTTPClient creates an HTTP client with optimized settings for fetching
// LGR documents. A non-positive timeout selects the 15 second default.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
