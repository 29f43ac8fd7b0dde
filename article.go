package scraper

import (
	"bytes"
	"encoding/json"
	"sort"
	"time"
)

// Article represents a single listing entry extracted from a news site.
// All fields except Link are optional; an article without a resolvable
// link is dropped because it cannot be deduplicated or followed.
type Article struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Summary  string `json:"summary"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Author   string `json:"author"`
	Image    string `json:"image"`

	// Source is the configured site name the article came from.
	Source string `json:"source,omitempty"`

	// Extra holds keys added by a site's post-processor hook
	// (e.g. a "live" badge). Nil when no hook ran or the hook added nothing.
	Extra map[string]string `json:"-"`

	// ScrapedAt is set by storage implementations, not by extraction.
	ScrapedAt time.Time `json:"-"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.Link == "" {
		return Errorf(EINVALID, "article link required")
	}
	return nil
}

// Clone returns a deep copy of the article. Post-processor hooks receive
// a clone so a failing hook cannot corrupt the assembled article.
func (a *Article) Clone() *Article {
	dup := *a
	if a.Extra != nil {
		dup.Extra = make(map[string]string, len(a.Extra))
		for k, v := range a.Extra {
			dup.Extra[k] = v
		}
	}
	return &dup
}

// SetExtra records a post-processor-added key, allocating the map lazily.
func (a *Article) SetExtra(key, value string) {
	if a.Extra == nil {
		a.Extra = make(map[string]string)
	}
	a.Extra[key] = value
}

// articleFields is the stable serialization order for article fields.
// Extra keys follow, sorted, so output remains diffable across runs.
var articleFields = []string{"title", "link", "summary", "date", "category", "author", "image"}

// MarshalJSON emits fields in stable order with post-processor extras
// appended as top-level keys.
func (a *Article) MarshalJSON() ([]byte, error) {
	values := map[string]string{
		"title":    a.Title,
		"link":     a.Link,
		"summary":  a.Summary,
		"date":     a.Date,
		"category": a.Category,
		"author":   a.Author,
		"image":    a.Image,
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range articleFields {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONPair(&buf, name, values[name])
	}
	if a.Source != "" {
		buf.WriteByte(',')
		writeJSONPair(&buf, "source", a.Source)
	}
	for _, k := range sortedKeys(a.Extra) {
		buf.WriteByte(',')
		writeJSONPair(&buf, k, a.Extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONPair(buf *bytes.Buffer, key, value string) {
	k, _ := json.Marshal(key)
	v, _ := json.Marshal(value)
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CSVHeader returns the stable CSV column set for article output.
// Extra keys are not included: CSV columns must be uniform across rows.
func CSVHeader() []string {
	return []string{"title", "link", "summary", "date", "category", "author", "image", "source"}
}

// CSVRecord returns the article as a row matching CSVHeader.
func (a *Article) CSVRecord() []string {
	return []string{a.Title, a.Link, a.Summary, a.Date, a.Category, a.Author, a.Image, a.Source}
}
