package scraper_test

import (
	"testing"

	scraper "github.com/sephedoo/news-scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *scraper.SiteConfig {
	return &scraper.SiteConfig{
		Key:                "example",
		Name:               "Example News",
		URL:                "https://example.com/news",
		ContainerSelectors: []string{".story-card"},
		Fields: []scraper.FieldSelector{
			{Name: scraper.FieldTitle, Spec: scraper.Sel("h2")},
			{Name: scraper.FieldLink, Spec: scraper.SameAs(scraper.FieldTitle)},
		},
	}
}

func TestSiteConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a valid config", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, validConfig().Validate())
	})

	t.Run("requires name", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Name = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, scraper.ECONFIG, scraper.ErrorCode(err))
	})

	t.Run("requires url", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.URL = ""

		assert.Equal(t, scraper.ECONFIG, scraper.ErrorCode(cfg.Validate()))
	})

	t.Run("requires a container selector", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.ContainerSelectors = nil

		assert.Equal(t, scraper.ECONFIG, scraper.ErrorCode(cfg.Validate()))
	})

	t.Run("rejects unknown field names", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Fields = append(cfg.Fields, scraper.FieldSelector{
			Name: "subtitle", Spec: scraper.Sel("h3"),
		})

		assert.Equal(t, scraper.ECONFIG, scraper.ErrorCode(cfg.Validate()))
	})

	t.Run("rejects duplicate field declarations", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Fields = append(cfg.Fields, scraper.FieldSelector{
			Name: scraper.FieldTitle, Spec: scraper.Sel("h3"),
		})

		assert.Equal(t, scraper.ECONFIG, scraper.ErrorCode(cfg.Validate()))
	})

	t.Run("rejects same-as forward reference", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Fields = []scraper.FieldSelector{
			{Name: scraper.FieldLink, Spec: scraper.SameAs(scraper.FieldTitle)},
			{Name: scraper.FieldTitle, Spec: scraper.Sel("h2")},
		}

		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, scraper.ECONFIG, scraper.ErrorCode(err))
	})

	t.Run("rejects same-as self reference", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Fields = []scraper.FieldSelector{
			{Name: scraper.FieldLink, Spec: scraper.SameAs(scraper.FieldLink)},
		}

		assert.Equal(t, scraper.ECONFIG, scraper.ErrorCode(cfg.Validate()))
	})

	t.Run("rejects field with no selectors", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Fields = append(cfg.Fields, scraper.FieldSelector{Name: scraper.FieldSummary})

		assert.Equal(t, scraper.ECONFIG, scraper.ErrorCode(cfg.Validate()))
	})

	t.Run("rejects empty selector in fallback list", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.Fields = append(cfg.Fields, scraper.FieldSelector{
			Name: scraper.FieldSummary, Spec: scraper.Sel("p.summary", ""),
		})

		assert.Equal(t, scraper.ECONFIG, scraper.ErrorCode(cfg.Validate()))
	})
}

func TestSiteConfig_FetchTimeout(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	assert.Equal(t, scraper.DefaultTimeout, cfg.FetchTimeout())

	cfg.Timeout = 5e9
	assert.Equal(t, cfg.Timeout, cfg.FetchTimeout())
}

func TestSiteConfig_Field(t *testing.T) {
	t.Parallel()

	cfg := validConfig()

	spec, ok := cfg.Field(scraper.FieldTitle)
	require.True(t, ok)
	assert.Equal(t, []string{"h2"}, spec.Selectors)

	_, ok = cfg.Field(scraper.FieldImage)
	assert.False(t, ok)
}
