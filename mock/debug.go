package mock

import scraper "github.com/sephedoo/news-scraper"

var _ scraper.DebugWriter = (*DebugWriter)(nil)

// DebugWriter is a mock implementation of scraper.DebugWriter.
type DebugWriter struct {
	SaveHTMLFn func(site string, html string) error
}

func (w *DebugWriter) SaveHTML(site string, html string) error {
	return w.SaveHTMLFn(site, html)
}
