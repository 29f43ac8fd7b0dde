// Package scrape orchestrates site runs. It coordinates configuration
// lookup, rate-limited fetching with retry, article extraction,
// deduplication, and optional archiving, isolating failures per site so
// one broken site never affects its siblings.
package scrape

import (
	"context"
	"net/url"
	"sync/atomic"
	"time"

	scraper "github.com/sephedoo/news-scraper"
	"golang.org/x/sync/errgroup"
)

// Runner drives the scraping pipeline across one or more configured sites.
type Runner struct {
	Registry  scraper.ConfigRegistry
	Fetcher   scraper.Fetcher
	Extractor scraper.ArticleExtractor

	// Store archives extracted articles when set. A store failure is a
	// warning, never a site failure.
	Store scraper.ArticleStore

	// Debug persists raw fetched HTML when set.
	Debug scraper.DebugWriter

	// Limiter throttles requests per target domain when set.
	Limiter scraper.DomainLimiter

	// Concurrency bounds the number of sites scraped in parallel.
	// Defaults to 4.
	Concurrency int

	// MaxArticles caps the number of articles kept per site.
	// Zero means no cap.
	MaxArticles int

	// RetryDelays are the backoff delays between fetch attempts.
	// Nil means DefaultRetryDelays.
	RetryDelays []time.Duration
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types emitted during a run.
const (
	ProgressStarted ProgressType = iota
	ProgressSiteCompleted
	ProgressSiteFailed
	ProgressFinished
)

// ProgressEvent reports progress as sites complete.
type ProgressEvent struct {
	Type      ProgressType
	Site      string
	Completed int
	Total     int
	Articles  int
	Err       error
}

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Run scrapes the requested sites, in parallel up to the concurrency
// limit, and returns one result per requested key in request order. A
// failed site contributes a SiteResult with Err set and an empty article
// sequence; Run itself only errors when the context is canceled.
func (r *Runner) Run(ctx context.Context, keys []string, progress ProgressFunc) (*scraper.RunResult, error) {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(keys)})
	}

	results := make([]*scraper.SiteResult, len(keys))
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			result := r.runSite(gctx, key)
			results[i] = result

			done := int(completed.Add(1))
			if progress != nil {
				event := ProgressEvent{
					Type:      ProgressSiteCompleted,
					Site:      result.Site,
					Completed: done,
					Total:     len(keys),
					Articles:  len(result.Articles),
				}
				if result.Failed() {
					event.Type = ProgressSiteFailed
					event.Err = result.Err
				}
				progress(event)
			}
			return nil
		})
	}
	_ = g.Wait()

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: len(keys), Total: len(keys)})
	}

	run := &scraper.RunResult{Sites: results}
	if err := ctx.Err(); err != nil {
		return run, err
	}
	return run, nil
}

// runSite executes the full pipeline for one site. All failure modes end
// up in the returned result; nothing escapes to abort sibling sites.
func (r *Runner) runSite(ctx context.Context, key string) *scraper.SiteResult {
	result := &scraper.SiteResult{Site: key}

	cfg, err := r.Registry.Get(key)
	if err != nil {
		result.Err = err
		return result
	}
	result.Site = cfg.Name
	result.URL = cfg.URL

	// Structural validation happens before any network activity so a
	// broken config is reported as such, not as an extraction failure.
	if err := cfg.Validate(); err != nil {
		result.Err = err
		return result
	}

	if r.Limiter != nil {
		if u, err := url.Parse(cfg.URL); err == nil {
			if err := r.Limiter.Wait(ctx, u.Host); err != nil {
				result.Err = scraper.Errorf(scraper.EUNAVAILABLE, "rate limit wait: %v", err)
				return result
			}
		}
	}

	// The configured timeout bounds each attempt, not the whole site
	// fetch; retries get a fresh window.
	fetchFn := func(ctx context.Context, pageURL string) (string, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout())
		defer cancel()
		return r.Fetcher.Fetch(attemptCtx, pageURL)
	}
	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, cfg.URL, fetchFn, delays)
	if err != nil {
		result.Err = err
		return result
	}

	// Raw HTML is carried as a pass-through value; persisting it is a
	// debugging concern and must not influence extraction.
	result.RawHTML = html
	if r.Debug != nil {
		_ = r.Debug.SaveHTML(cfg.Key, html)
	}

	extraction, err := r.Extractor.ExtractArticles(html, cfg)
	if err != nil {
		result.Err = err
		return result
	}
	result.Warnings = extraction.Warnings

	// Dedup before capping so a cap of N yields up to N unique articles
	// rather than N raw containers.
	articles := extraction.Articles
	if cfg.RemoveDuplicates {
		articles = scraper.Dedupe(articles, cfg.StripQueryParams)
	}
	if r.MaxArticles > 0 && len(articles) > r.MaxArticles {
		articles = articles[:r.MaxArticles]
	}
	result.Articles = articles

	if r.Store != nil && len(articles) > 0 {
		if _, err := r.Store.SaveArticles(ctx, articles); err != nil {
			result.Warnings = append(result.Warnings, scraper.Warning{
				Kind:      scraper.WarnStore,
				Container: -1,
				Message:   "archive failed: " + scraper.ErrorMessage(err),
			})
		}
	}

	return result
}
