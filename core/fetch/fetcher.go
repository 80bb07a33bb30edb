// Package fetch retrieves raw page HTML over HTTP. It is the conversion
// pipeline's only network collaborator: one attempt per call, no retry
// policy, timeouts owned by the client here.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/readmark/core"
	"github.com/gaurav-prasanna/readmark/internal/logger"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "readmark/1.0 (+https://github.com/gaurav-prasanna/readmark)"
)

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client *http.Client
}

// New creates an HTTPFetcher with the default timeout.
func New() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// NewWithClient creates an HTTPFetcher using the caller's client, for
// tests and callers with their own transport policy.
func NewWithClient(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

// Fetch retrieves the HTML content of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	// The client follows redirects, so the URL we report is where the
	// page actually lives, not necessarily where we asked.
	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, finalURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	logger.Debug("fetched page", "url", finalURL, "bytes", len(body), "duration", time.Since(start))

	return &core.FetchResult{
		URL:        finalURL,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}
