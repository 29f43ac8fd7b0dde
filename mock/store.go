package mock

import (
	"context"

	scraper "github.com/sephedoo/news-scraper"
)

var _ scraper.ArticleStore = (*ArticleStore)(nil)

// ArticleStore is a mock implementation of scraper.ArticleStore.
type ArticleStore struct {
	SaveArticlesFn  func(ctx context.Context, articles []*scraper.Article) (int, error)
	FindArticlesFn  func(ctx context.Context, filter scraper.ArticleFilter) ([]*scraper.Article, error)
	CountArticlesFn func(ctx context.Context, filter scraper.ArticleFilter) (int, error)
}

func (s *ArticleStore) SaveArticles(ctx context.Context, articles []*scraper.Article) (int, error) {
	return s.SaveArticlesFn(ctx, articles)
}

func (s *ArticleStore) FindArticles(ctx context.Context, filter scraper.ArticleFilter) ([]*scraper.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleStore) CountArticles(ctx context.Context, filter scraper.ArticleFilter) (int, error) {
	return s.CountArticlesFn(ctx, filter)
}
