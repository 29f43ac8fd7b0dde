// Package fs provides file-based output for scraped articles: JSON and
// CSV exports plus raw HTML dumps for selector debugging.
package fs

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	scraper "github.com/sephedoo/news-scraper"
)

// SiteFileName converts a site display name to a file-safe base name.
// Example: "BBC News" → "bbc_news"
func SiteFileName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// Writer writes article exports to a directory. Timestamped file names
// keep successive runs side by side; a fixed name can be passed for
// outputs that should be overwritten in place.
type Writer struct {
	baseDir string

	// now supplies timestamps for generated file names; injectable for tests.
	now func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock overrides the clock used for timestamped file names.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		w.now = now
	}
}

// NewWriter creates a Writer rooted at baseDir. The directory is created
// on first write.
func NewWriter(baseDir string, opts ...Option) *Writer {
	w := &Writer{baseDir: baseDir, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Writer) clock() time.Time {
	if w.now != nil {
		return w.now()
	}
	return time.Now()
}

func (w *Writer) timestampedName(site, ext string) string {
	stamp := w.clock().Format("2006-01-02_15-04-05")
	return SiteFileName(site) + "_news_" + stamp + ext
}

func (w *Writer) write(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(w.baseDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteJSON saves articles as an indented JSON array under a timestamped
// name derived from site, returning the written path.
func (w *Writer) WriteJSON(site string, articles []*scraper.Article) (string, error) {
	return w.WriteJSONFile(w.timestampedName(site, ".json"), articles)
}

// WriteJSONFile saves articles as JSON under the exact file name given.
func (w *Writer) WriteJSONFile(filename string, articles []*scraper.Article) (string, error) {
	if articles == nil {
		articles = []*scraper.Article{}
	}
	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return "", err
	}
	return w.write(filename, append(data, '\n'))
}

// WriteCSV saves articles as CSV under a timestamped name derived from
// site, returning the written path.
func (w *Writer) WriteCSV(site string, articles []*scraper.Article) (string, error) {
	return w.WriteCSVFile(w.timestampedName(site, ".csv"), articles)
}

// WriteCSVFile saves articles as CSV under the exact file name given.
// Post-processor extras are omitted: CSV columns must be uniform.
func (w *Writer) WriteCSVFile(filename string, articles []*scraper.Article) (string, error) {
	var b strings.Builder
	cw := csv.NewWriter(&b)
	if err := cw.Write(scraper.CSVHeader()); err != nil {
		return "", err
	}
	for _, a := range articles {
		if err := cw.Write(a.CSVRecord()); err != nil {
			return "", err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", err
	}
	return w.write(filename, []byte(b.String()))
}
