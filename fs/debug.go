package fs

import (
	"os"
	"path/filepath"

	scraper "github.com/sephedoo/news-scraper"
)

// Ensure DebugWriter implements scraper.DebugWriter at compile time.
var _ scraper.DebugWriter = (*DebugWriter)(nil)

// DebugWriter dumps raw fetched HTML to disk so selector breakage can be
// diagnosed against the exact page a run saw. Each site overwrites its
// own dump; only the latest page is ever interesting.
type DebugWriter struct {
	baseDir string
}

// NewDebugWriter creates a DebugWriter rooted at baseDir.
func NewDebugWriter(baseDir string) *DebugWriter {
	return &DebugWriter{baseDir: baseDir}
}

// SaveHTML writes the page under <site>_debug.html.
func (w *DebugWriter) SaveHTML(site, html string) error {
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(w.baseDir, SiteFileName(site)+"_debug.html")
	return os.WriteFile(path, []byte(html), 0644)
}
