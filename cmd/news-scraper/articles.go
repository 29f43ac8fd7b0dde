package main

import (
	"fmt"

	scraper "github.com/sephedoo/news-scraper"
)

// Run executes the articles command.
func (c *ArticlesCmd) Run(deps *Dependencies) error {
	filter := scraper.ArticleFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Site != "" {
		filter.Site = &c.Site
	}
	if c.Link != "" {
		filter.Link = &c.Link
	}

	total, err := deps.Store.CountArticles(deps.Ctx, filter)
	if err != nil {
		return err
	}
	if total == 0 {
		fmt.Fprintln(deps.Stdout, "No archived articles match.")
		return nil
	}

	articles, err := deps.Store.FindArticles(deps.Ctx, filter)
	if err != nil {
		return err
	}

	for _, a := range articles {
		fmt.Fprintf(deps.Stdout, "%s  %-20s  %s\n",
			a.ScrapedAt.Format("2006-01-02 15:04"), a.Source, a.Title)
		fmt.Fprintf(deps.Stdout, "    %s\n", a.Link)
	}
	fmt.Fprintf(deps.Stdout, "Showing %d of %d archived articles.\n", len(articles), total)

	return nil
}
