package scraper

// Extraction holds the outcome of extracting one fetched listing page.
type Extraction struct {
	// Articles in source-document container order.
	Articles []*Article

	// Warnings collected at field and container granularity. A warning
	// never aborts extraction.
	Warnings []Warning
}

// DateNormalizer converts a raw date string to a canonical form. An empty
// input is returned empty; a string that cannot be parsed is returned
// unchanged, since raw date text is still useful downstream.
type DateNormalizer interface {
	Normalize(raw string, cfg *SiteConfig) string
}

// ArticleExtractor turns raw listing-page HTML into article records using
// a site's selector configuration. Implementations must tolerate partial
// selector failure: a field that does not resolve yields a warning and an
// empty field, a container that cannot produce a linked article is skipped,
// and only an unparseable document or zero matching containers is an error.
type ArticleExtractor interface {
	ExtractArticles(html string, cfg *SiteConfig) (*Extraction, error)
}
