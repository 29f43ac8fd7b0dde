package main

import (
	"context"
	"io"

	scraper "github.com/sephedoo/news-scraper"
	"github.com/sephedoo/news-scraper/fs"
	"github.com/sephedoo/news-scraper/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Registry scraper.ConfigRegistry
	Runner   *scrape.Runner
	Writer   *fs.Writer
	Store    scraper.ArticleStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape   ScrapeCmd   `cmd:"" help:"Scrape configured news sites"`
	List     ListCmd     `cmd:"" help:"List available site configurations"`
	Articles ArticlesCmd `cmd:"" help:"Query the article archive"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Sites       []string `arg:"" optional:"" help:"Site keys to scrape (e.g. bbc cnn reuters)"`
	All         bool     `help:"Scrape all configured sites"`
	Output      string   `enum:"json,csv,both" default:"both" help:"Output format"`
	Combine     bool     `help:"Combine results from all sites into one output"`
	MaxArticles int      `name:"max-articles" help:"Maximum articles per site"`
	Out         string   `default:"output" help:"Output directory"`
	Configs     string   `help:"Directory of additional YAML site configs"`
	DB          string   `name:"db" help:"SQLite database path for the article archive"`
	SaveHTML    bool     `name:"save-html" help:"Save raw fetched HTML for debugging"`
	Verbose     bool     `short:"v" help:"Enable verbose output"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent site limit"`
	Rate        float64  `default:"1.0" help:"Requests per second per domain"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Configs string `help:"Directory of additional YAML site configs"`
}

// ArticlesCmd is the "articles" subcommand.
type ArticlesCmd struct {
	DB     string `name:"db" required:"" help:"SQLite database path for the article archive"`
	Site   string `help:"Filter by site name"`
	Link   string `help:"Filter by article link"`
	Limit  int    `default:"20" help:"Maximum articles to show"`
	Offset int    `help:"Articles to skip"`
}
