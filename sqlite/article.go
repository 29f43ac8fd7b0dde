package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	scraper "github.com/sephedoo/news-scraper"
)

// Compile-time interface verification.
var _ scraper.ArticleStore = (*ArticleService)(nil)

// ArticleService implements scraper.ArticleStore using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// hashArticle computes xxHash over the fields that define an article's
// content, returned as a hex string. The hash changes when a site edits
// a headline or summary in place.
func hashArticle(a *scraper.Article) string {
	h := xxhash.Sum64String(a.Title + "\x00" + a.Link + "\x00" + a.Summary)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// SaveArticles archives a site run's articles. Articles already archived
// for the same site under the same normalized link are skipped; the
// return value counts only newly inserted rows.
func (s *ArticleService) SaveArticles(ctx context.Context, articles []*scraper.Article) (int, error) {
	inserted := 0
	for _, a := range articles {
		if err := a.Validate(); err != nil {
			return inserted, err
		}

		extra := ""
		if len(a.Extra) > 0 {
			data, err := json.Marshal(a.Extra)
			if err != nil {
				return inserted, err
			}
			extra = string(data)
		}

		scrapedAt := a.ScrapedAt
		if scrapedAt.IsZero() {
			scrapedAt = time.Now().UTC()
		}

		result, err := s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO articles (id, site, title, link, normalized_link, summary, date, category, author, image, extra, content_hash, scraped_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), a.Source, a.Title, a.Link, scraper.NormalizeLink(a.Link, false),
			a.Summary, a.Date, a.Category, a.Author, a.Image, extra, hashArticle(a),
			scrapedAt.Format(time.RFC3339))
		if err != nil {
			return inserted, err
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += int(rows)
	}

	return inserted, nil
}

// FindArticles retrieves archived articles matching the filter, newest
// first.
func (s *ArticleService) FindArticles(ctx context.Context, filter scraper.ArticleFilter) ([]*scraper.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT site, title, link, summary, date, category, author, image, extra, scraped_at FROM articles WHERE 1=1")
	appendFilter(&query, &args, filter)
	query.WriteString(" ORDER BY scraped_at DESC, id ASC")
	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*scraper.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	return articles, rows.Err()
}

// CountArticles returns the number of archived articles matching the filter.
func (s *ArticleService) CountArticles(ctx context.Context, filter scraper.ArticleFilter) (int, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT COUNT(*) FROM articles WHERE 1=1")
	appendFilter(&query, &args, filter)

	var count int
	if err := s.db.QueryRowContext(ctx, query.String(), args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// appendFilter appends WHERE clauses for the filter's set fields. Link
// lookups go through normalization so a filter matches regardless of
// trailing slashes or fragments.
func appendFilter(query *strings.Builder, args *[]any, filter scraper.ArticleFilter) {
	if filter.Site != nil {
		query.WriteString(" AND site = ?")
		*args = append(*args, *filter.Site)
	}
	if filter.Link != nil {
		query.WriteString(" AND normalized_link = ?")
		*args = append(*args, scraper.NormalizeLink(*filter.Link, false))
	}
}

func scanArticle(rows *sql.Rows) (*scraper.Article, error) {
	var a scraper.Article
	var extra, scrapedAt string

	if err := rows.Scan(&a.Source, &a.Title, &a.Link, &a.Summary, &a.Date,
		&a.Category, &a.Author, &a.Image, &extra, &scrapedAt); err != nil {
		return nil, err
	}

	if extra != "" {
		if err := json.Unmarshal([]byte(extra), &a.Extra); err != nil {
			return nil, err
		}
	}

	t, err := time.Parse(time.RFC3339, scrapedAt)
	if err != nil {
		return nil, scraper.Errorf(scraper.EINTERNAL, "corrupt scraped_at %q: %v", scrapedAt, err)
	}
	a.ScrapedAt = t

	return &a, nil
}
