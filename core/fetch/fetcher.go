// Package fetch implements the Fetcher interface.
// It performs HTTP GET requests for remote Markdown or HTML documents.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/bbpipe/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "bbpipe/1.0 (https://github.com/gaurav-prasanna/bbpipe)"
	defaultAccept    = "text/markdown, text/plain;q=0.9, text/html;q=0.8, application/xhtml+xml;q=0.8"

	// maxBodyBytes caps a single document. Forum posts are far smaller.
	maxBodyBytes = 16 << 20
)

// HTTPFetcher fetches documents via HTTP.
type HTTPFetcher struct {
	client *http.Client
}

// New creates an HTTPFetcher with a sensible timeout.
func New() *HTTPFetcher {
	return NewWithClient(&http.Client{Timeout: defaultTimeout})
}

// NewWithClient creates an HTTPFetcher using client.
func NewWithClient(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

// Fetch retrieves the body of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", defaultAccept)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("response body for %s exceeds %d bytes", url, maxBodyBytes)
	}

	return &core.FetchResult{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
