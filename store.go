package scraper

import "context"

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	Site *string
	Link *string

	Offset int
	Limit  int
}

// ArticleStore archives extracted articles across runs.
type ArticleStore interface {
	// SaveArticles persists a site run's articles. Articles whose
	// normalized link is already archived for the site are skipped, so
	// repeated runs do not accumulate duplicates. Returns the number of
	// newly archived articles.
	SaveArticles(ctx context.Context, articles []*Article) (int, error)

	// FindArticles retrieves archived articles matching the filter,
	// newest first.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// CountArticles returns the number of archived articles matching
	// the filter.
	CountArticles(ctx context.Context, filter ArticleFilter) (int, error)
}
