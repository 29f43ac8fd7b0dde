package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	scraper "github.com/sephedoo/news-scraper"
	"github.com/sephedoo/news-scraper/dateparse"
	"github.com/sephedoo/news-scraper/fs"
	"github.com/sephedoo/news-scraper/goquery"
	scrapehttp "github.com/sephedoo/news-scraper/http"
	"github.com/sephedoo/news-scraper/scrape"
	"github.com/sephedoo/news-scraper/sites"
	scrapeslog "github.com/sephedoo/news-scraper/slog"
	"github.com/sephedoo/news-scraper/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used for the article archive when --db is set.
	DB *sqlite.DB

	// Store for end-to-end testing.
	Store scraper.ArticleStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("news-scraper"),
		kong.Description("Configurable news site scraper"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'news-scraper --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	switch cmd {
	case "list":
		deps.Registry, err = buildRegistry(cli.List.Configs)
		if err != nil {
			return err
		}

	case "scrape":
		deps.Registry, err = buildRegistry(cli.Scrape.Configs)
		if err != nil {
			return err
		}

		level := slog.LevelWarn
		if cli.Scrape.Verbose {
			level = slog.LevelInfo
		}
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

		fetcher := scrapeslog.NewLoggingFetcher(scrapehttp.NewFetcher(), logger)
		defer fetcher.Close()

		extractor := scrapeslog.NewLoggingExtractor(
			goquery.NewExtractor(dateparse.NewNormalizer()), logger)

		if cli.Scrape.DB != "" {
			if err := m.openDB(cli.Scrape.DB); err != nil {
				return err
			}
			defer m.Close()
		}

		var debug scraper.DebugWriter
		if cli.Scrape.SaveHTML {
			debug = fs.NewDebugWriter(cli.Scrape.Out)
		}

		deps.Writer = fs.NewWriter(cli.Scrape.Out)
		deps.Runner = &scrape.Runner{
			Registry:    deps.Registry,
			Fetcher:     fetcher,
			Extractor:   extractor,
			Store:       m.Store,
			Debug:       debug,
			Limiter:     scrape.NewDomainLimiter(cli.Scrape.Rate),
			Concurrency: cli.Scrape.Concurrency,
			MaxArticles: cli.Scrape.MaxArticles,
		}

	case "articles":
		if err := m.openDB(cli.Articles.DB); err != nil {
			return err
		}
		defer m.Close()
		deps.Store = m.Store
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(path string) error {
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	m.Store = sqlite.NewArticleService(m.DB)
	return nil
}

// buildRegistry returns the builtin site registry, extended with YAML
// configs from configsDir when given.
func buildRegistry(configsDir string) (*sites.Registry, error) {
	registry := sites.NewBuiltin()
	if configsDir == "" {
		return registry, nil
	}

	configs, err := sites.LoadDir(configsDir)
	if err != nil {
		return nil, err
	}
	for _, cfg := range configs {
		if err := registry.Register(cfg); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
