// Package http provides an HTTP-based implementation of scraper.Fetcher
// for retrieving news listing pages.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	scraper "github.com/sephedoo/news-scraper"
)

// DefaultFetchTimeout is the default timeout for HTTP requests. Individual
// sites override it via their configured timeout.
const DefaultFetchTimeout = 20 * time.Second

// browserHeaders make requests look like a regular browser session; several
// news sites serve stripped-down or blocked responses to obvious bots.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Cache-Control":   "no-cache",
	"Pragma":          "no-cache",
}

// Ensure Fetcher implements scraper.Fetcher at compile time.
var _ scraper.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// JavaScript rendering is not supported; sites that require it surface as
// zero matching containers downstream.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the client-level timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified. Per-site timeouts are
// applied by the caller through the request context.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", scraper.Errorf(scraper.EINVALID, "invalid request for %s: %v", url, err)
	}
	for name, value := range browserHeaders {
		req.Header.Set(name, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", scraper.Errorf(scraper.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", scraper.Errorf(scraper.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", scraper.Errorf(scraper.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
