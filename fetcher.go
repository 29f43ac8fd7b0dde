package scraper

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url. The context controls timeout and
	// cancellation; a single call is one attempt, retry policy belongs
	// to the caller.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// DomainLimiter throttles requests per target domain so concurrent site
// runs do not hammer a shared host.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled before then.
	Wait(ctx context.Context, domain string) error
}

// DebugWriter persists raw fetched HTML keyed by site name. The engine
// treats the HTML as a pass-through value; writing it is a debugging
// concern owned by the host.
type DebugWriter interface {
	SaveHTML(site string, html string) error
}
