package scraper

import (
	"net/url"
	"strings"
)

// NormalizeLink canonicalizes an article link for duplicate comparison:
// scheme and host are lower-cased, a trailing slash is stripped, and the
// fragment is dropped. When stripQuery is true the query string is dropped
// too, for sites that attach tracking parameters to listing links.
//
// Unparseable links are returned unchanged so dedup degrades to exact
// string comparison rather than dropping articles.
func NormalizeLink(raw string, stripQuery bool) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	if stripQuery {
		u.RawQuery = ""
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	return u.String()
}

// Dedupe removes articles whose normalized link has been seen before,
// keeping the first occurrence and preserving the order of survivors.
// Dedupe is idempotent and never reorders.
func Dedupe(articles []*Article, stripQuery bool) []*Article {
	seen := make(map[string]bool, len(articles))
	unique := make([]*Article, 0, len(articles))

	for _, a := range articles {
		key := NormalizeLink(a.Link, stripQuery)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, a)
	}

	return unique
}
