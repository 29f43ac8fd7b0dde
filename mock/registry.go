package mock

import scraper "github.com/sephedoo/news-scraper"

var _ scraper.ConfigRegistry = (*ConfigRegistry)(nil)

// ConfigRegistry is a mock implementation of scraper.ConfigRegistry.
type ConfigRegistry struct {
	ListFn func() []string
	GetFn  func(key string) (*scraper.SiteConfig, error)
}

func (r *ConfigRegistry) List() []string {
	return r.ListFn()
}

func (r *ConfigRegistry) Get(key string) (*scraper.SiteConfig, error) {
	return r.GetFn(key)
}
