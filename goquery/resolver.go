package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	scraper "github.com/sephedoo/news-scraper"
)

// readText is the sentinel "attribute" meaning the element's text content.
const readText = "text"

// defaultReads maps a field to the ordered attribute reads applied when the
// selector spec does not name an attribute explicitly. Fields without an
// entry read text content. This is the dispatch table for per-field
// attribute semantics: links read href (descending into or climbing to an
// anchor when needed), images read src with a data-src fallback for
// lazy-loaded markup, dates prefer a machine-readable datetime attribute
// over the rendered text.
var defaultReads = map[scraper.FieldName][]string{
	scraper.FieldLink:  {"href"},
	scraper.FieldImage: {"src", "data-src"},
	scraper.FieldDate:  {"datetime", readText},
}

// fieldCache remembers the element matched per resolved field within one
// container, so same-as specs reuse the cached match instead of re-querying.
type fieldCache map[scraper.FieldName]*goquery.Selection

// resolveField resolves one declared field within a container node.
// It returns the extracted value and the matched element, or ok=false when
// nothing resolved. Not finding a field is a normal outcome, never an error.
//
// For fallback lists every candidate selector is tried until one yields a
// non-empty value; a selector that matches a node with an empty value does
// not stop the scan.
func resolveField(container *goquery.Selection, name scraper.FieldName, spec scraper.SelectorSpec, cache fieldCache) (string, *goquery.Selection, bool) {
	reads := defaultReads[name]
	if len(reads) == 0 {
		reads = []string{readText}
	}
	if spec.Attr != "" {
		reads = []string{spec.Attr}
	}

	if spec.SameAs != "" {
		sel, ok := cache[spec.SameAs]
		if !ok {
			return "", nil, false
		}
		value := readValue(sel, reads)
		if value == "" {
			return "", nil, false
		}
		return value, sel, true
	}

	for _, selector := range spec.Selectors {
		sel := container.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if value := readValue(sel, reads); value != "" {
			return value, sel, true
		}
	}

	return "", nil, false
}

// readValue applies the ordered attribute reads to a matched element and
// returns the first non-empty result.
func readValue(sel *goquery.Selection, reads []string) string {
	for _, read := range reads {
		var value string
		switch read {
		case readText:
			value = strings.TrimSpace(sel.Text())
		case "href":
			value = hrefValue(sel)
		case "src", "data-src":
			value = imageValue(sel, read)
		default:
			value = strings.TrimSpace(sel.AttrOr(read, ""))
		}
		if value != "" {
			return value
		}
	}
	return ""
}

// hrefValue reads an href from the element itself, then from the closest
// ancestor anchor, then from a descendant anchor. Title elements commonly
// sit inside their link rather than carrying one, so the enclosing anchor
// wins over a nested one.
func hrefValue(sel *goquery.Selection) string {
	if href, ok := sel.Attr("href"); ok && href != "" {
		return href
	}
	if parent := sel.Closest("a[href]"); parent.Length() > 0 {
		if href := parent.AttrOr("href", ""); href != "" {
			return href
		}
	}
	if child := sel.Find("a[href]").First(); child.Length() > 0 {
		return child.AttrOr("href", "")
	}
	return ""
}

// imageValue reads an image source attribute, descending into a child img
// when the matched element is not itself an img.
func imageValue(sel *goquery.Selection, attr string) string {
	if goquery.NodeName(sel) == "img" {
		return sel.AttrOr(attr, "")
	}
	if src, ok := sel.Attr(attr); ok && src != "" {
		return src
	}
	if img := sel.Find("img").First(); img.Length() > 0 {
		return img.AttrOr(attr, "")
	}
	return ""
}
