package scraper

import "time"

// FieldName identifies one declared article field in a site configuration.
type FieldName string

// The closed set of declarable fields. Post-processor hooks can attach
// additional keys via Article.Extra; those never appear in Fields.
const (
	FieldTitle    FieldName = "title"
	FieldLink     FieldName = "link"
	FieldSummary  FieldName = "summary"
	FieldDate     FieldName = "date"
	FieldCategory FieldName = "category"
	FieldAuthor   FieldName = "author"
	FieldImage    FieldName = "image"
)

// knownFields is the dispatch set for configuration validation.
var knownFields = map[FieldName]bool{
	FieldTitle:    true,
	FieldLink:     true,
	FieldSummary:  true,
	FieldDate:     true,
	FieldCategory: true,
	FieldAuthor:   true,
	FieldImage:    true,
}

// SelectorSpec describes how to locate one field within an article
// container. Exactly one of Selectors or SameAs is set:
//
//   - Selectors is an ordered fallback list; candidates are tried in order
//     and the first non-empty value wins.
//   - SameAs reuses the element already matched for an earlier field and
//     reads a (usually different) attribute from it, e.g. the href of the
//     anchor that produced the title.
//
// Attr names the attribute to read from the matched element. When empty the
// field's default semantics apply: text content for most fields, href for
// link, src for image, the datetime attribute then text for date.
type SelectorSpec struct {
	Selectors []string
	SameAs    FieldName
	Attr      string
}

// Sel builds a SelectorSpec from one or more fallback selectors.
func Sel(selectors ...string) SelectorSpec {
	return SelectorSpec{Selectors: selectors}
}

// SameAs builds a SelectorSpec that reuses the element matched for field.
func SameAs(field FieldName) SelectorSpec {
	return SelectorSpec{SameAs: field}
}

// WithAttr returns a copy of the spec reading the named attribute instead
// of the field's default.
func (s SelectorSpec) WithAttr(attr string) SelectorSpec {
	s.Attr = attr
	return s
}

// FieldSelector pairs a field name with its selector spec. Declaration
// order matters: SameAs may only reference fields declared earlier.
type FieldSelector struct {
	Name FieldName
	Spec SelectorSpec
}

// DateParser converts a site-specific raw date string to a canonical form.
// The returned value is used verbatim; implementations own the format.
type DateParser interface {
	ParseDate(raw string) string
}

// DateParserFunc adapts a function to the DateParser interface.
type DateParserFunc func(raw string) string

// ParseDate invokes the function.
func (f DateParserFunc) ParseDate(raw string) string { return f(raw) }

// PostProcessor enriches an assembled article using the original container
// node, covering extraction the declared selectors cannot express (badges,
// media indicators, multi-value fields). An error keeps the pre-hook
// article and is downgraded to a warning by the caller.
type PostProcessor interface {
	Process(article *Article, container Element) error
}

// PostProcessorFunc adapts a function to the PostProcessor interface.
type PostProcessorFunc func(article *Article, container Element) error

// Process invokes the function.
func (f PostProcessorFunc) Process(article *Article, container Element) error {
	return f(article, container)
}

// DefaultTimeout applies when a site configuration does not set one.
const DefaultTimeout = 20 * time.Second

// SiteConfig declares how to extract articles from one news site. Configs
// are immutable once loaded; the engine only ever reads them, so a single
// config may be shared across concurrent site runs.
type SiteConfig struct {
	// Key is the registry lookup key (e.g. "bbc"); Name is the display
	// name stamped onto extracted articles (e.g. "BBC News").
	Key  string
	Name string

	// URL is the listing page to fetch. Relative links and image sources
	// are resolved against it.
	URL string

	// ContainerSelectors locate the repeating element wrapping one
	// article fragment. Tried in order; the first selector that matches
	// any nodes wins.
	ContainerSelectors []string

	// Fields are extracted in declaration order.
	Fields []FieldSelector

	// DateParser, when set, replaces the generic date normalization.
	DateParser DateParser

	// PostProcessor, when set, runs on each assembled article.
	PostProcessor PostProcessor

	// Timeout bounds a single fetch attempt. Zero means DefaultTimeout.
	Timeout time.Duration

	// RemoveDuplicates enables link-based deduplication of the site's
	// articles. StripQueryParams additionally ignores query strings when
	// normalizing links for comparison.
	RemoveDuplicates bool
	StripQueryParams bool
}

// FetchTimeout returns the configured timeout or the default.
func (c *SiteConfig) FetchTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// Field returns the selector spec declared for name.
func (c *SiteConfig) Field(name FieldName) (SelectorSpec, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f.Spec, true
		}
	}
	return SelectorSpec{}, false
}

// Validate checks the configuration's structure. It runs before any
// network activity so a broken config fails the site eagerly with ECONFIG
// rather than surfacing as a runtime extraction failure.
func (c *SiteConfig) Validate() error {
	if c.Name == "" {
		return Errorf(ECONFIG, "site name required")
	}
	if c.URL == "" {
		return Errorf(ECONFIG, "site %q: url required", c.Name)
	}
	if len(c.ContainerSelectors) == 0 {
		return Errorf(ECONFIG, "site %q: container selector required", c.Name)
	}
	for _, sel := range c.ContainerSelectors {
		if sel == "" {
			return Errorf(ECONFIG, "site %q: empty container selector", c.Name)
		}
	}

	declared := make(map[FieldName]bool, len(c.Fields))
	for _, f := range c.Fields {
		if !knownFields[f.Name] {
			return Errorf(ECONFIG, "site %q: unknown field %q", c.Name, f.Name)
		}
		if declared[f.Name] {
			return Errorf(ECONFIG, "site %q: field %q declared twice", c.Name, f.Name)
		}

		spec := f.Spec
		switch {
		case spec.SameAs != "":
			if len(spec.Selectors) > 0 {
				return Errorf(ECONFIG, "site %q: field %q mixes selectors with same-as", c.Name, f.Name)
			}
			// Forward and self references are configuration errors:
			// same-as resolution reads the element cache filled by
			// earlier fields in declaration order.
			if !declared[spec.SameAs] {
				return Errorf(ECONFIG, "site %q: field %q references %q which is not declared earlier", c.Name, f.Name, spec.SameAs)
			}
		case len(spec.Selectors) == 0:
			return Errorf(ECONFIG, "site %q: field %q has no selectors", c.Name, f.Name)
		default:
			for _, sel := range spec.Selectors {
				if sel == "" {
					return Errorf(ECONFIG, "site %q: field %q has an empty selector", c.Name, f.Name)
				}
			}
		}

		declared[f.Name] = true
	}

	return nil
}
