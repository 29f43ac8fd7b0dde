package sites_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	scraper "github.com/sephedoo/news-scraper"
	"github.com/sephedoo/news-scraper/sites"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("parses a full config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "hn.yaml", `
name: Hacker News
url: https://news.ycombinator.com
containers: [.athing, tr.athing]
timeout: 30s
remove_duplicates: true
strip_query_params: true
fields:
  - name: title
    selectors: [.titleline a, .storylink]
  - name: link
    same_as: title
    attr: href
`)

		cfg, err := sites.LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "hn", cfg.Key) // defaults to the file name
		assert.Equal(t, "Hacker News", cfg.Name)
		assert.Equal(t, []string{".athing", "tr.athing"}, cfg.ContainerSelectors)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.True(t, cfg.RemoveDuplicates)
		assert.True(t, cfg.StripQueryParams)

		spec, ok := cfg.Field(scraper.FieldLink)
		require.True(t, ok)
		assert.Equal(t, scraper.FieldTitle, spec.SameAs)
		assert.Equal(t, "href", spec.Attr)
	})

	t.Run("accepts scalar selectors", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "simple.yml", `
name: Simple
url: https://simple.example
containers: .card
fields:
  - name: title
    selectors: h2
  - name: link
    selectors: a
`)

		cfg, err := sites.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{".card"}, cfg.ContainerSelectors)

		spec, ok := cfg.Field(scraper.FieldTitle)
		require.True(t, ok)
		assert.Equal(t, []string{"h2"}, spec.Selectors)
	})

	t.Run("explicit key wins over file name", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "whatever.yaml", `
key: custom
name: Custom
url: https://custom.example
containers: .card
fields:
  - name: link
    selectors: a
`)

		cfg, err := sites.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "custom", cfg.Key)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "name: [unclosed")
		_, err := sites.LoadFile(path)
		assert.Equal(t, scraper.ECONFIG, scraper.ErrorCode(err))
	})

	t.Run("rejects invalid configs with the file name in the message", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "nourl.yaml", `
name: No URL
containers: .card
fields:
  - name: link
    selectors: a
`)

		_, err := sites.LoadFile(path)
		require.Error(t, err)
		assert.Equal(t, scraper.ECONFIG, scraper.ErrorCode(err))
		assert.Contains(t, scraper.ErrorMessage(err), "nourl.yaml")
	})

	t.Run("rejects bad timeouts", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "badtimeout.yaml", `
name: Bad Timeout
url: https://bad.example
containers: .card
timeout: soon
fields:
  - name: link
    selectors: a
`)

		_, err := sites.LoadFile(path)
		assert.Equal(t, scraper.ECONFIG, scraper.ErrorCode(err))
	})
}

func TestLoadDir(t *testing.T) {
	t.Parallel()

	t.Run("loads all configs sorted by key", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeConfig(t, dir, "zeta.yaml", "name: Zeta\nurl: https://z.example\ncontainers: .card\nfields:\n  - name: link\n    selectors: a\n")
		writeConfig(t, dir, "alpha.yml", "name: Alpha\nurl: https://a.example\ncontainers: .card\nfields:\n  - name: link\n    selectors: a\n")
		writeConfig(t, dir, "notes.txt", "not a config")

		configs, err := sites.LoadDir(dir)
		require.NoError(t, err)
		require.Len(t, configs, 2)
		assert.Equal(t, "alpha", configs[0].Key)
		assert.Equal(t, "zeta", configs[1].Key)
	})

	t.Run("one broken file fails the load", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeConfig(t, dir, "good.yaml", "name: Good\nurl: https://g.example\ncontainers: .card\nfields:\n  - name: link\n    selectors: a\n")
		writeConfig(t, dir, "broken.yaml", "url: https://b.example\n")

		_, err := sites.LoadDir(dir)
		assert.Equal(t, scraper.ECONFIG, scraper.ErrorCode(err))
	})

	t.Run("missing directory errors", func(t *testing.T) {
		t.Parallel()

		_, err := sites.LoadDir(filepath.Join(t.TempDir(), "nope"))
		assert.Equal(t, scraper.ECONFIG, scraper.ErrorCode(err))
	})
}
