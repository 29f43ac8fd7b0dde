// Package sites holds the site configuration registry, the builtin
// configurations for supported news sites, and a YAML loader for
// user-supplied configurations.
package sites

import (
	"sort"
	"sync"

	scraper "github.com/sephedoo/news-scraper"
)

// Ensure Registry implements scraper.ConfigRegistry at compile time.
var _ scraper.ConfigRegistry = (*Registry)(nil)

// Registry is an in-memory site configuration registry keyed by site key.
type Registry struct {
	mu      sync.RWMutex
	configs map[string]*scraper.SiteConfig
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{configs: make(map[string]*scraper.SiteConfig)}
}

// Register adds a configuration to the registry. The config must carry a
// key and pass structural validation; registering a key twice is a
// conflict, since silently replacing a site config hides typos.
func (r *Registry) Register(cfg *scraper.SiteConfig) error {
	if cfg.Key == "" {
		return scraper.Errorf(scraper.ECONFIG, "site %q: key required", cfg.Name)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.configs[cfg.Key]; ok {
		return scraper.Errorf(scraper.ECONFLICT, "site %q already registered", cfg.Key)
	}
	r.configs[cfg.Key] = cfg
	return nil
}

// Get returns the configuration registered under key.
func (r *Registry) Get(key string) (*scraper.SiteConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[key]
	if !ok {
		return nil, scraper.Errorf(scraper.ENOTFOUND, "site %q not found", key)
	}
	return cfg, nil
}

// List returns the registered site keys in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.configs))
	for key := range r.configs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
