package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/config"
	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/goodreads"
	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/landing"
)

func newScrapeCmd() *cobra.Command {
	var query string
	var maxBooks int

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape Goodreads book pages into the landing zone",
		Long: `Searches Goodreads for the configured query, follows each result to its
book page and writes the scraped records to landing/goodreads_books.json.`,
		Example: `  # Scrape with the config file settings
  libros scrape

  # Override the search query
  libros scrape --query "machine learning" --max-books 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if query != "" {
				cfg.Scrape.Query = query
			}
			if maxBooks > 0 {
				cfg.Scrape.MaxBooks = maxBooks
			}

			scraper := goodreads.NewScraper()
			ids, err := scraper.SearchBookIDs(cfg.Scrape.Query, cfg.Scrape.MaxBooks, cfg.Scrape.MaxPages)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			if len(ids) == 0 {
				return fmt.Errorf("no book IDs found for query %q", cfg.Scrape.Query)
			}

			books := scraper.ScrapeBooks(ids, cfg.Scrape.Query)
			if len(books) == 0 {
				return fmt.Errorf("no book could be scraped; check connectivity or selectors")
			}

			if err := landing.SaveGoodreads(cfg.GoodreadsJSON(), books); err != nil {
				return err
			}
			slog.Info("Landing file written", "path", cfg.GoodreadsJSON(), "books", len(books))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search query (overrides config)")
	cmd.Flags().IntVar(&maxBooks, "max-books", 0, "Maximum books to scrape (overrides config)")

	return cmd
}
