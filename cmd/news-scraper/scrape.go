package main

import (
	"fmt"
	"sort"

	scraper "github.com/sephedoo/news-scraper"
	"github.com/sephedoo/news-scraper/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	keys, err := c.resolveSites(deps)
	if err != nil {
		return err
	}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressSiteCompleted:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s: %d articles\n",
				event.Completed, event.Total, event.Site, event.Articles)
		case scrape.ProgressSiteFailed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s: %s\n",
				event.Completed, event.Total, event.Site, scraper.ErrorMessage(event.Err))
		}
	}

	run, err := deps.Runner.Run(deps.Ctx, keys, progress)
	if err != nil {
		return err
	}

	if c.Verbose {
		for _, site := range run.Sites {
			for _, warning := range site.Warnings {
				fmt.Fprintf(deps.Stderr, "%s: %s\n", site.Site, warning)
			}
		}
	}

	if err := c.writeResults(deps, run); err != nil {
		return err
	}

	if failed := run.Failed(); len(failed) == len(run.Sites) {
		return scraper.Errorf(scraper.EUNAVAILABLE, "all sites failed")
	}

	fmt.Fprintln(deps.Stdout, "Scraping completed.")
	return nil
}

// resolveSites maps the command's flags to registry keys. With no sites
// and no --all the scrape defaults to BBC.
func (c *ScrapeCmd) resolveSites(deps *Dependencies) ([]string, error) {
	if c.All {
		keys := deps.Registry.List()
		if len(keys) == 0 {
			return nil, scraper.Errorf(scraper.ENOTFOUND, "no sites configured")
		}
		return keys, nil
	}
	if len(c.Sites) > 0 {
		return c.Sites, nil
	}
	fmt.Fprintln(deps.Stdout, "No sites specified, defaulting to bbc")
	return []string{"bbc"}, nil
}

func (c *ScrapeCmd) writeResults(deps *Dependencies, run *scraper.RunResult) error {
	if c.Combine {
		combined := run.Combined()
		if len(combined) == 0 {
			return nil
		}
		if err := c.writeSet(deps, "combined_news", combined, true); err != nil {
			return err
		}
		printSourceSummary(deps, combined)
		return nil
	}

	for _, site := range run.Sites {
		if site.Failed() || len(site.Articles) == 0 {
			continue
		}
		if err := c.writeSet(deps, site.Site, site.Articles, false); err != nil {
			return err
		}
	}
	return nil
}

// writeSet saves one article set in the requested formats. Fixed names
// overwrite in place; otherwise names are timestamped per site.
func (c *ScrapeCmd) writeSet(deps *Dependencies, name string, articles []*scraper.Article, fixed bool) error {
	if c.Output == "json" || c.Output == "both" {
		path, err := c.writeOne(deps, name, articles, fixed, ".json")
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved %s\n", path)
	}
	if c.Output == "csv" || c.Output == "both" {
		path, err := c.writeOne(deps, name, articles, fixed, ".csv")
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved %s\n", path)
	}
	return nil
}

func (c *ScrapeCmd) writeOne(deps *Dependencies, name string, articles []*scraper.Article, fixed bool, ext string) (string, error) {
	switch {
	case fixed && ext == ".json":
		return deps.Writer.WriteJSONFile(name+ext, articles)
	case fixed && ext == ".csv":
		return deps.Writer.WriteCSVFile(name+ext, articles)
	case ext == ".json":
		return deps.Writer.WriteJSON(name, articles)
	default:
		return deps.Writer.WriteCSV(name, articles)
	}
}

func printSourceSummary(deps *Dependencies, articles []*scraper.Article) {
	counts := make(map[string]int)
	for _, a := range articles {
		source := a.Source
		if source == "" {
			source = "Unknown"
		}
		counts[source]++
	}

	sources := make([]string, 0, len(counts))
	for source := range counts {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	fmt.Fprintln(deps.Stdout, "Summary by source:")
	for _, source := range sources {
		fmt.Fprintf(deps.Stdout, "  %s: %d articles\n", source, counts[source])
	}
}
