// Package scraper provides a declarative news extraction engine. Sites are
// described by selector configurations (container selector, per-field
// selectors with ordered fallbacks, optional custom hooks) rather than
// per-site code, so adapting to HTML drift means editing a config, not the
// engine.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package scraper
