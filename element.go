package scraper

// Element is an opaque handle into a parsed document, scoped to one
// article's HTML fragment. It is the capability handed to post-processor
// hooks so they can extract data the declared selectors do not cover,
// without coupling the domain to a particular HTML library.
//
// Elements never outlive the extraction pass that produced them.
type Element interface {
	// Text returns the element's text content with surrounding
	// whitespace trimmed.
	Text() string

	// Attr returns the named attribute's value and whether it exists.
	Attr(name string) (string, bool)

	// Select returns the first descendant matching the CSS selector.
	Select(selector string) (Element, bool)

	// SelectAll returns all descendants matching the CSS selector in
	// document order.
	SelectAll(selector string) []Element
}
