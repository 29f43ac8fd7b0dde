package scraper

import "fmt"

// WarningKind classifies non-fatal extraction problems.
type WarningKind string

// Warning kinds, ordered by granularity. Nothing at field or container
// granularity ever fails a site run.
const (
	// WarnFieldMissing: one declared field resolved to nothing and was
	// left empty. Fallback success is not a warning.
	WarnFieldMissing WarningKind = "field_missing"

	// WarnArticleRejected: one container was dropped, either because its
	// link could not be resolved or because extraction failed internally.
	WarnArticleRejected WarningKind = "article_rejected"

	// WarnPostProcess: a site's post-processor hook failed; the pre-hook
	// article was kept.
	WarnPostProcess WarningKind = "post_process"

	// WarnStore: archiving the site's articles failed. The extracted
	// articles are still returned.
	WarnStore WarningKind = "store"
)

// Warning records one recoverable extraction problem.
type Warning struct {
	Kind WarningKind

	// Container is the zero-based index of the container node the
	// warning refers to.
	Container int

	// Field is set for field-granularity warnings.
	Field FieldName

	Message string
}

// String formats the warning for logs and CLI output.
func (w Warning) String() string {
	switch {
	case w.Field != "":
		return fmt.Sprintf("container %d: field %s: %s", w.Container, w.Field, w.Message)
	case w.Container < 0:
		// Site-level warning not tied to a container.
		return w.Message
	default:
		return fmt.Sprintf("container %d: %s", w.Container, w.Message)
	}
}

// SiteResult is the outcome of one site run. It is immutable once the
// coordinator finalizes it.
type SiteResult struct {
	// Site is the configured site name; URL the listing page fetched.
	Site string
	URL  string

	// Articles in source-document order, deduplicated per the site's
	// configuration.
	Articles []*Article

	// Warnings collected during extraction, in occurrence order.
	Warnings []Warning

	// RawHTML is the fetched page, carried as a pass-through value for
	// debug persistence. Empty when the fetch failed.
	RawHTML string

	// Err is set only for site-fatal failures: invalid configuration,
	// fetch/parse failure, or zero matching containers. A site with Err
	// set always has an empty article sequence.
	Err error
}

// Failed reports whether the site run failed entirely.
func (r *SiteResult) Failed() bool { return r.Err != nil }

// RunResult aggregates site results across one multi-site invocation.
// Sites appear in the order they were requested.
type RunResult struct {
	Sites []*SiteResult
}

// Combined flattens all site results into one sequence, preserving site
// order and article order within each site.
func (r *RunResult) Combined() []*Article {
	var all []*Article
	for _, s := range r.Sites {
		all = append(all, s.Articles...)
	}
	return all
}

// Failed returns the results of sites that failed entirely.
func (r *RunResult) Failed() []*SiteResult {
	var failed []*SiteResult
	for _, s := range r.Sites {
		if s.Failed() {
			failed = append(failed, s)
		}
	}
	return failed
}
