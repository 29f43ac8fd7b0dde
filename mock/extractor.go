package mock

import scraper "github.com/sephedoo/news-scraper"

var _ scraper.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of scraper.ArticleExtractor.
type ArticleExtractor struct {
	ExtractArticlesFn func(html string, cfg *scraper.SiteConfig) (*scraper.Extraction, error)
}

func (e *ArticleExtractor) ExtractArticles(html string, cfg *scraper.SiteConfig) (*scraper.Extraction, error) {
	return e.ExtractArticlesFn(html, cfg)
}
