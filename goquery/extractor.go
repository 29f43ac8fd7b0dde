// Package goquery implements article extraction against parsed HTML using
// CSS selectors. It is the engine behind declarative site configurations:
// container selection, per-field fallback resolution, same-as element
// reuse, and per-container assembly with graceful partial failure.
package goquery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	scraper "github.com/sephedoo/news-scraper"
)

// Ensure Extractor implements scraper.ArticleExtractor at compile time.
var _ scraper.ArticleExtractor = (*Extractor)(nil)

// Extractor extracts article records from listing-page HTML.
type Extractor struct {
	// Dates normalizes raw date strings. When nil, dates are kept as
	// extracted.
	Dates scraper.DateNormalizer
}

// NewExtractor creates an Extractor with the given date normalizer.
func NewExtractor(dates scraper.DateNormalizer) *Extractor {
	return &Extractor{Dates: dates}
}

// fieldSetters assigns a resolved value to its article field.
var fieldSetters = map[scraper.FieldName]func(*scraper.Article, string){
	scraper.FieldTitle:    func(a *scraper.Article, v string) { a.Title = v },
	scraper.FieldLink:     func(a *scraper.Article, v string) { a.Link = v },
	scraper.FieldSummary:  func(a *scraper.Article, v string) { a.Summary = v },
	scraper.FieldDate:     func(a *scraper.Article, v string) { a.Date = v },
	scraper.FieldCategory: func(a *scraper.Article, v string) { a.Category = v },
	scraper.FieldAuthor:   func(a *scraper.Article, v string) { a.Author = v },
	scraper.FieldImage:    func(a *scraper.Article, v string) { a.Image = v },
}

// ExtractArticles parses html and extracts one article per matching
// container node, in document order. A container that cannot produce a
// linked article is skipped with a warning; only an unparseable document
// or zero matching containers fail the whole extraction.
func (e *Extractor) ExtractArticles(html string, cfg *scraper.SiteConfig) (*scraper.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, scraper.Errorf(scraper.EINVALID, "failed to parse HTML: %v", err)
	}

	// Container selectors are a fallback list over the whole document:
	// the first selector matching any nodes wins.
	var containers *goquery.Selection
	for _, selector := range cfg.ContainerSelectors {
		if found := doc.Find(selector); found.Length() > 0 {
			containers = found
			break
		}
	}
	if containers == nil {
		return nil, scraper.Errorf(scraper.ENOTFOUND, "no containers matched %v", cfg.ContainerSelectors)
	}

	base, err := url.Parse(cfg.URL)
	if err != nil {
		base = nil
	}

	extraction := &scraper.Extraction{}
	containers.Each(func(i int, container *goquery.Selection) {
		article, warnings := e.extractContainer(i, container, cfg, base)
		extraction.Warnings = append(extraction.Warnings, warnings...)
		if article != nil {
			extraction.Articles = append(extraction.Articles, article)
		}
	})

	return extraction, nil
}

// extractContainer assembles one article from one container node. It
// returns a nil article when the container is rejected. Unexpected panics
// from malformed markup convert the single container to rejected; they
// never abort the surrounding site run.
func (e *Extractor) extractContainer(index int, container *goquery.Selection, cfg *scraper.SiteConfig, base *url.URL) (article *scraper.Article, warnings []scraper.Warning) {
	defer func() {
		if r := recover(); r != nil {
			article = nil
			warnings = append(warnings, scraper.Warning{
				Kind:      scraper.WarnArticleRejected,
				Container: index,
				Message:   fmt.Sprintf("extraction failed: %v", r),
			})
		}
	}()

	article = &scraper.Article{Source: cfg.Name}
	cache := make(fieldCache, len(cfg.Fields))

	// Fields resolve in declaration order so same-as specs can reuse
	// earlier matches.
	for _, field := range cfg.Fields {
		value, matched, ok := resolveField(container, field.Name, field.Spec, cache)
		if !ok {
			warnings = append(warnings, scraper.Warning{
				Kind:      scraper.WarnFieldMissing,
				Container: index,
				Field:     field.Name,
				Message:   "no selector matched a value",
			})
			continue
		}
		cache[field.Name] = matched
		fieldSetters[field.Name](article, value)
	}

	// A linkless article cannot be deduplicated or acted on.
	if article.Link == "" {
		warnings = append(warnings, scraper.Warning{
			Kind:      scraper.WarnArticleRejected,
			Container: index,
			Message:   "no resolvable link",
		})
		return nil, warnings
	}

	article.Link = absoluteURL(base, article.Link)
	if article.Image != "" {
		article.Image = absoluteURL(base, article.Image)
	}

	if e.Dates != nil {
		article.Date = e.Dates.Normalize(article.Date, cfg)
	}

	if cfg.PostProcessor != nil {
		// The hook works on a clone with the container node available
		// for extraction the declared selectors did not cover. A hook
		// failure keeps the pre-hook article.
		clone := article.Clone()
		if err := runPostProcessor(cfg.PostProcessor, clone, container); err != nil {
			warnings = append(warnings, scraper.Warning{
				Kind:      scraper.WarnPostProcess,
				Container: index,
				Message:   scraper.ErrorMessage(err),
			})
		} else {
			article = clone
		}
	}

	return article, warnings
}

// runPostProcessor invokes a site hook, converting a panic inside custom
// logic into an error at this boundary.
func runPostProcessor(hook scraper.PostProcessor, article *scraper.Article, container *goquery.Selection) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = scraper.Errorf(scraper.EINTERNAL, "post-processor panic: %v", r)
		}
	}()
	if herr := hook.Process(article, NewElement(container)); herr != nil {
		return scraper.Errorf(scraper.EINTERNAL, "post-processor: %v", herr)
	}
	return nil
}

// absoluteURL resolves a possibly relative link against the site URL.
func absoluteURL(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
