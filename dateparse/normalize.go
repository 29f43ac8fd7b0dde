// Package dateparse normalizes raw date strings extracted from listing
// pages. Sites publish anything from ISO timestamps to "2 hrs ago"; the
// normalizer resolves relative phrases against a clock, parses absolute
// formats via github.com/araddon/dateparse, and passes through whatever it
// cannot interpret, since raw date text is still useful downstream.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	scraper "github.com/sephedoo/news-scraper"
)

// Ensure Normalizer implements scraper.DateNormalizer at compile time.
var _ scraper.DateNormalizer = (*Normalizer)(nil)

// Normalizer converts raw date strings to RFC 3339 where possible.
type Normalizer struct {
	// Now supplies the reference time for relative phrases.
	// Defaults to time.Now; injectable for tests.
	Now func() time.Time
}

// NewNormalizer creates a Normalizer using the wall clock.
func NewNormalizer() *Normalizer {
	return &Normalizer{Now: time.Now}
}

// Normalize applies the site's custom date parser when one is configured,
// otherwise the generic fallback. An empty input returns empty; an
// unparseable input returns the raw string unchanged. Normalize never fails.
func (n *Normalizer) Normalize(raw string, cfg *scraper.SiteConfig) string {
	if raw == "" {
		return ""
	}

	// A configured parser is trusted site-specific logic; its output is
	// used verbatim.
	if cfg != nil && cfg.DateParser != nil {
		return cfg.DateParser.ParseDate(raw)
	}

	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	if resolved, ok := ParseRelative(raw, now()); ok {
		return resolved
	}
	if t, err := dateparse.ParseAny(raw); err == nil {
		return t.Format(time.RFC3339)
	}

	return raw
}

var firstNumber = regexp.MustCompile(`\d+`)

// ParseRelative resolves relative phrases such as "today", "yesterday" and
// "2 hrs ago" against now, returning an RFC 3339 timestamp. The numeric
// forms require an explicit "ago" so absolute dates that merely mention a
// weekday are not misread. Site-specific quirks beyond these belong in a
// custom date parser; this helper is exported for them to build on.
func ParseRelative(s string, now time.Time) (string, bool) {
	text := strings.ToLower(strings.TrimSpace(s))

	switch text {
	case "today", "just now", "now":
		return now.Format(time.RFC3339), true
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(time.RFC3339), true
	}

	if !strings.Contains(text, "ago") {
		return "", false
	}
	num := firstNumber.FindString(text)
	if num == "" {
		return "", false
	}
	count, err := strconv.Atoi(num)
	if err != nil {
		return "", false
	}

	switch {
	case strings.Contains(text, "sec"):
		return now.Add(-time.Duration(count) * time.Second).Format(time.RFC3339), true
	case strings.Contains(text, "min"):
		return now.Add(-time.Duration(count) * time.Minute).Format(time.RFC3339), true
	case strings.Contains(text, "hour"), strings.Contains(text, "hr"):
		return now.Add(-time.Duration(count) * time.Hour).Format(time.RFC3339), true
	case strings.Contains(text, "week"):
		return now.AddDate(0, 0, -7*count).Format(time.RFC3339), true
	case strings.Contains(text, "day"):
		return now.AddDate(0, 0, -count).Format(time.RFC3339), true
	}

	return "", false
}
