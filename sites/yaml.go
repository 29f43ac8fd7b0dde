package sites

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	scraper "github.com/sephedoo/news-scraper"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML document declaring one site. YAML configs
// carry selectors only; custom date parsers and post-processors are code
// and stay with the builtin configurations.
type fileConfig struct {
	Key              string      `yaml:"key"`
	Name             string      `yaml:"name"`
	URL              string      `yaml:"url"`
	Containers       stringList  `yaml:"containers"`
	Fields           []fileField `yaml:"fields"`
	Timeout          string      `yaml:"timeout"`
	RemoveDuplicates bool        `yaml:"remove_duplicates"`
	StripQueryParams bool        `yaml:"strip_query_params"`
}

type fileField struct {
	Name      string     `yaml:"name"`
	Selectors stringList `yaml:"selectors"`
	SameAs    string     `yaml:"same_as"`
	Attr      string     `yaml:"attr"`
}

// stringList accepts both a scalar and a sequence, so single-selector
// fields read naturally:
//
//	selectors: h2
//	selectors: [h2, h3, .headline]
type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = stringList{s}
		return nil
	default:
		var ss []string
		if err := value.Decode(&ss); err != nil {
			return err
		}
		*l = stringList(ss)
		return nil
	}
}

// LoadFile parses one YAML site configuration. The site key defaults to
// the file's base name.
func LoadFile(path string) (*scraper.SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, scraper.Errorf(scraper.ECONFIG, "read config %s: %v", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, scraper.Errorf(scraper.ECONFIG, "parse config %s: %v", path, err)
	}

	if fc.Key == "" {
		base := filepath.Base(path)
		fc.Key = strings.TrimSuffix(base, filepath.Ext(base))
	}

	cfg := &scraper.SiteConfig{
		Key:                fc.Key,
		Name:               fc.Name,
		URL:                fc.URL,
		ContainerSelectors: fc.Containers,
		RemoveDuplicates:   fc.RemoveDuplicates,
		StripQueryParams:   fc.StripQueryParams,
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return nil, scraper.Errorf(scraper.ECONFIG, "config %s: bad timeout %q", path, fc.Timeout)
		}
		cfg.Timeout = d
	}
	for _, f := range fc.Fields {
		spec := scraper.SelectorSpec{
			Selectors: f.Selectors,
			SameAs:    scraper.FieldName(f.SameAs),
			Attr:      f.Attr,
		}
		cfg.Fields = append(cfg.Fields, scraper.FieldSelector{
			Name: scraper.FieldName(f.Name),
			Spec: spec,
		})
	}

	if err := cfg.Validate(); err != nil {
		return nil, scraper.Errorf(scraper.ECONFIG, "config %s: %v", path, scraper.ErrorMessage(err))
	}
	return cfg, nil
}

// LoadDir parses every .yaml/.yml file in dir and returns the configs
// sorted by key. A single malformed file fails the whole load; a partial
// registry is worse than an eager error.
func LoadDir(dir string) ([]*scraper.SiteConfig, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, scraper.Errorf(scraper.ECONFIG, "read config dir %s: %v", dir, err)
	}

	var configs []*scraper.SiteConfig
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		cfg, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}

	sort.Slice(configs, func(i, j int) bool { return configs[i].Key < configs[j].Key })
	return configs, nil
}
