package scrape_test

import (
	"context"
	"sync"
	"testing"
	"time"

	scraper "github.com/sephedoo/news-scraper"
	"github.com/sephedoo/news-scraper/mock"
	"github.com/sephedoo/news-scraper/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteConfig(key, url string) *scraper.SiteConfig {
	return &scraper.SiteConfig{
		Key:                key,
		Name:               key + " News",
		URL:                url,
		ContainerSelectors: []string{".card"},
		Fields: []scraper.FieldSelector{
			{Name: scraper.FieldTitle, Spec: scraper.Sel("h2")},
			{Name: scraper.FieldLink, Spec: scraper.Sel("a")},
		},
		RemoveDuplicates: true,
	}
}

func staticRegistry(cfgs ...*scraper.SiteConfig) *mock.ConfigRegistry {
	byKey := make(map[string]*scraper.SiteConfig)
	for _, cfg := range cfgs {
		byKey[cfg.Key] = cfg
	}
	return &mock.ConfigRegistry{
		GetFn: func(key string) (*scraper.SiteConfig, error) {
			cfg, ok := byKey[key]
			if !ok {
				return nil, scraper.Errorf(scraper.ENOTFOUND, "site %q not found", key)
			}
			return cfg, nil
		},
		ListFn: func() []string {
			keys := make([]string, 0, len(byKey))
			for k := range byKey {
				keys = append(keys, k)
			}
			return keys
		},
	}
}

func extractionOf(articles ...*scraper.Article) *scraper.Extraction {
	return &scraper.Extraction{Articles: articles}
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("results follow request order regardless of completion order", func(t *testing.T) {
		t.Parallel()

		registry := staticRegistry(
			siteConfig("slow", "https://slow.example/news"),
			siteConfig("fast", "https://fast.example/news"),
		)
		fetcher := &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
			if url == "https://slow.example/news" {
				time.Sleep(20 * time.Millisecond)
			}
			return "<html>" + url + "</html>", nil
		}}
		extractor := &mock.ArticleExtractor{ExtractArticlesFn: func(html string, cfg *scraper.SiteConfig) (*scraper.Extraction, error) {
			return extractionOf(&scraper.Article{Link: cfg.URL + "/a", Source: cfg.Name}), nil
		}}

		runner := &scrape.Runner{Registry: registry, Fetcher: fetcher, Extractor: extractor, RetryDelays: []time.Duration{}}
		run, err := runner.Run(context.Background(), []string{"slow", "fast"}, nil)

		require.NoError(t, err)
		require.Len(t, run.Sites, 2)
		assert.Equal(t, "slow News", run.Sites[0].Site)
		assert.Equal(t, "fast News", run.Sites[1].Site)
	})

	t.Run("a failing site never affects its siblings", func(t *testing.T) {
		t.Parallel()

		registry := staticRegistry(
			siteConfig("up", "https://up.example/news"),
			siteConfig("down", "https://down.example/news"),
		)
		fetcher := &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
			if url == "https://down.example/news" {
				return "", scraper.Errorf(scraper.EUNAVAILABLE, "HTTP 503 for %s", url)
			}
			return "<html></html>", nil
		}}
		extractor := &mock.ArticleExtractor{ExtractArticlesFn: func(html string, cfg *scraper.SiteConfig) (*scraper.Extraction, error) {
			return extractionOf(&scraper.Article{Link: cfg.URL + "/a"}), nil
		}}

		runner := &scrape.Runner{Registry: registry, Fetcher: fetcher, Extractor: extractor, RetryDelays: []time.Duration{}}
		run, err := runner.Run(context.Background(), []string{"up", "down"}, nil)

		require.NoError(t, err)
		require.Len(t, run.Sites, 2)

		assert.False(t, run.Sites[0].Failed())
		assert.Len(t, run.Sites[0].Articles, 1)

		require.True(t, run.Sites[1].Failed())
		assert.Empty(t, run.Sites[1].Articles)
		assert.Equal(t, scraper.EUNAVAILABLE, scraper.ErrorCode(run.Sites[1].Err))
	})

	t.Run("unknown site yields a not-found site result", func(t *testing.T) {
		t.Parallel()

		var fetched bool
		runner := &scrape.Runner{
			Registry: staticRegistry(),
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
				fetched = true
				return "", nil
			}},
			Extractor: &mock.ArticleExtractor{ExtractArticlesFn: func(string, *scraper.SiteConfig) (*scraper.Extraction, error) {
				return extractionOf(), nil
			}},
		}

		run, err := runner.Run(context.Background(), []string{"nope"}, nil)

		require.NoError(t, err)
		require.Len(t, run.Sites, 1)
		assert.Equal(t, scraper.ENOTFOUND, scraper.ErrorCode(run.Sites[0].Err))
		assert.False(t, fetched)
	})

	t.Run("invalid config fails before any network activity", func(t *testing.T) {
		t.Parallel()

		broken := siteConfig("broken", "https://broken.example/news")
		broken.Fields = []scraper.FieldSelector{
			{Name: scraper.FieldLink, Spec: scraper.SameAs(scraper.FieldTitle)}, // forward reference
			{Name: scraper.FieldTitle, Spec: scraper.Sel("h2")},
		}

		var fetched bool
		runner := &scrape.Runner{
			Registry: staticRegistry(broken),
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
				fetched = true
				return "", nil
			}},
			Extractor: &mock.ArticleExtractor{ExtractArticlesFn: func(string, *scraper.SiteConfig) (*scraper.Extraction, error) {
				return extractionOf(), nil
			}},
		}

		run, err := runner.Run(context.Background(), []string{"broken"}, nil)

		require.NoError(t, err)
		require.True(t, run.Sites[0].Failed())
		assert.Equal(t, scraper.ECONFIG, scraper.ErrorCode(run.Sites[0].Err))
		assert.False(t, fetched)
	})

	t.Run("retries fetch before failing the site", func(t *testing.T) {
		t.Parallel()

		var attempts int
		var mu sync.Mutex
		fetcher := &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			attempts++
			if attempts < 3 {
				return "", scraper.Errorf(scraper.EUNAVAILABLE, "transient")
			}
			return "<html></html>", nil
		}}
		extractor := &mock.ArticleExtractor{ExtractArticlesFn: func(html string, cfg *scraper.SiteConfig) (*scraper.Extraction, error) {
			return extractionOf(&scraper.Article{Link: "https://a.example/1"}), nil
		}}

		runner := &scrape.Runner{
			Registry:    staticRegistry(siteConfig("flaky", "https://flaky.example/news")),
			Fetcher:     fetcher,
			Extractor:   extractor,
			RetryDelays: []time.Duration{time.Millisecond, time.Millisecond},
		}

		run, err := runner.Run(context.Background(), []string{"flaky"}, nil)

		require.NoError(t, err)
		assert.False(t, run.Sites[0].Failed())
		assert.Equal(t, 3, attempts)
	})

	t.Run("deduplicates before capping articles", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.ArticleExtractor{ExtractArticlesFn: func(html string, cfg *scraper.SiteConfig) (*scraper.Extraction, error) {
			return extractionOf(
				&scraper.Article{Title: "A", Link: "https://s.example/a"},
				&scraper.Article{Title: "A again", Link: "https://s.example/a/"},
				&scraper.Article{Title: "B", Link: "https://s.example/b"},
				&scraper.Article{Title: "C", Link: "https://s.example/c"},
			), nil
		}}

		runner := &scrape.Runner{
			Registry:    staticRegistry(siteConfig("s", "https://s.example/news")),
			Fetcher:     &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) { return "<html></html>", nil }},
			Extractor:   extractor,
			MaxArticles: 2,
		}

		run, err := runner.Run(context.Background(), []string{"s"}, nil)

		require.NoError(t, err)
		// A duplicate inside the capped window must not shrink the
		// output: the cap applies to unique articles.
		articles := run.Sites[0].Articles
		require.Len(t, articles, 2)
		assert.Equal(t, "A", articles[0].Title)
		assert.Equal(t, "B", articles[1].Title)
	})

	t.Run("passes raw HTML through to the debug writer", func(t *testing.T) {
		t.Parallel()

		var savedSite, savedHTML string
		debug := &mock.DebugWriter{SaveHTMLFn: func(site, html string) error {
			savedSite, savedHTML = site, html
			return nil
		}}

		runner := &scrape.Runner{
			Registry: staticRegistry(siteConfig("bbc", "https://bbc.example/news")),
			Fetcher:  &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) { return "<html>raw</html>", nil }},
			Extractor: &mock.ArticleExtractor{ExtractArticlesFn: func(string, *scraper.SiteConfig) (*scraper.Extraction, error) {
				return extractionOf(&scraper.Article{Link: "https://bbc.example/a"}), nil
			}},
			Debug: debug,
		}

		run, err := runner.Run(context.Background(), []string{"bbc"}, nil)

		require.NoError(t, err)
		assert.Equal(t, "bbc", savedSite)
		assert.Equal(t, "<html>raw</html>", savedHTML)
		assert.Equal(t, "<html>raw</html>", run.Sites[0].RawHTML)
	})

	t.Run("store failure is a warning, not a site failure", func(t *testing.T) {
		t.Parallel()

		store := &mock.ArticleStore{SaveArticlesFn: func(ctx context.Context, articles []*scraper.Article) (int, error) {
			return 0, scraper.Errorf(scraper.EINTERNAL, "disk full")
		}}

		runner := &scrape.Runner{
			Registry: staticRegistry(siteConfig("s", "https://s.example/news")),
			Fetcher:  &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) { return "<html></html>", nil }},
			Extractor: &mock.ArticleExtractor{ExtractArticlesFn: func(string, *scraper.SiteConfig) (*scraper.Extraction, error) {
				return extractionOf(&scraper.Article{Link: "https://s.example/a"}), nil
			}},
			Store: store,
		}

		run, err := runner.Run(context.Background(), []string{"s"}, nil)

		require.NoError(t, err)
		result := run.Sites[0]
		assert.False(t, result.Failed())
		assert.Len(t, result.Articles, 1)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, scraper.WarnStore, result.Warnings[0].Kind)
	})

	t.Run("reports progress per site", func(t *testing.T) {
		t.Parallel()

		runner := &scrape.Runner{
			Registry: staticRegistry(siteConfig("s", "https://s.example/news")),
			Fetcher:  &mock.Fetcher{FetchFn: func(context.Context, string) (string, error) { return "<html></html>", nil }},
			Extractor: &mock.ArticleExtractor{ExtractArticlesFn: func(string, *scraper.SiteConfig) (*scraper.Extraction, error) {
				return extractionOf(&scraper.Article{Link: "https://s.example/a"}), nil
			}},
		}

		var mu sync.Mutex
		var types []scrape.ProgressType
		_, err := runner.Run(context.Background(), []string{"s"}, func(e scrape.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			types = append(types, e.Type)
		})

		require.NoError(t, err)
		assert.Equal(t, []scrape.ProgressType{scrape.ProgressStarted, scrape.ProgressSiteCompleted, scrape.ProgressFinished}, types)
	})
}

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("returns first success without retrying", func(t *testing.T) {
		t.Parallel()

		var attempts int
		html, err := scrape.FetchWithRetryDelays(context.Background(), "https://x.example",
			func(ctx context.Context, url string) (string, error) {
				attempts++
				return "ok", nil
			}, scrape.DefaultRetryDelays())

		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 1, attempts)
	})

	t.Run("returns last error after exhausting attempts", func(t *testing.T) {
		t.Parallel()

		var attempts int
		_, err := scrape.FetchWithRetryDelays(context.Background(), "https://x.example",
			func(ctx context.Context, url string) (string, error) {
				attempts++
				return "", scraper.Errorf(scraper.EUNAVAILABLE, "attempt %d", attempts)
			}, []time.Duration{time.Millisecond, time.Millisecond})

		require.Error(t, err)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, "attempt 3", scraper.ErrorMessage(err))
	})

	t.Run("stops when context is canceled between attempts", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		_, err := scrape.FetchWithRetryDelays(ctx, "https://x.example",
			func(ctx context.Context, url string) (string, error) {
				cancel()
				return "", scraper.Errorf(scraper.EUNAVAILABLE, "down")
			}, []time.Duration{time.Minute})

		require.ErrorIs(t, err, context.Canceled)
	})
}
