package slog

import (
	"log/slog"
	"time"

	scraper "github.com/sephedoo/news-scraper"
)

// Ensure LoggingExtractor implements scraper.ArticleExtractor.
var _ scraper.ArticleExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an ArticleExtractor with per-page logging.
type LoggingExtractor struct {
	next   scraper.ArticleExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next scraper.ArticleExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractArticles delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) ExtractArticles(html string, cfg *scraper.SiteConfig) (extraction *scraper.Extraction, err error) {
	defer func(begin time.Time) {
		articles, warnings := 0, 0
		if extraction != nil {
			articles = len(extraction.Articles)
			warnings = len(extraction.Warnings)
		}
		e.logger.Info("extract",
			"site", cfg.Name,
			"articles", articles,
			"warnings", warnings,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractArticles(html, cfg)
}
