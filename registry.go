package scraper

// ConfigRegistry provides read-only access to loaded site configurations.
// Registries must be safe for concurrent readers once populated; the
// engine never mutates them.
type ConfigRegistry interface {
	// List returns the available site keys, sorted.
	List() []string

	// Get returns the configuration for a site key.
	// Returns ENOTFOUND if the site is not registered.
	Get(key string) (*SiteConfig, error)
}
