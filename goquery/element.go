package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	scraper "github.com/sephedoo/news-scraper"
)

// Ensure Element implements scraper.Element at compile time.
var _ scraper.Element = (*Element)(nil)

// Element wraps a goquery selection as the opaque container-node handle
// handed to post-processor hooks.
type Element struct {
	sel *goquery.Selection
}

// NewElement wraps a goquery selection.
func NewElement(sel *goquery.Selection) *Element {
	return &Element{sel: sel}
}

// Text returns the element's text content, trimmed.
func (e *Element) Text() string {
	return strings.TrimSpace(e.sel.Text())
}

// Attr returns the named attribute's value and whether it exists.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// Select returns the first descendant matching the CSS selector.
func (e *Element) Select(selector string) (scraper.Element, bool) {
	found := e.sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, false
	}
	return &Element{sel: found}, true
}

// SelectAll returns all descendants matching the CSS selector in document order.
func (e *Element) SelectAll(selector string) []scraper.Element {
	var elems []scraper.Element
	e.sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		elems = append(elems, &Element{sel: s})
	})
	return elems
}
