package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/config"
	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/googlebooks"
	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/landing"
)

func newEnrichCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Enrich scraped records against the Google Books API",
		Long: `Looks every scraped Goodreads record up on the Google Books volumes API
(by ISBN when available, otherwise by title and author) and writes the
results to landing/googlebooks_books.csv.

Set the GOOGLE_BOOKS_API_KEY environment variable for authenticated
access; without it the API applies a tighter rate limit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			scraped, err := landing.LoadGoodreads(cfg.GoodreadsJSON())
			if err != nil {
				return fmt.Errorf("run `libros scrape` first: %w", err)
			}
			slog.Info("Loaded scraped records", "count", len(scraped))

			client, err := googlebooks.NewClient(cmd.Context(), cfg.APIKey())
			if err != nil {
				return err
			}

			enriched := client.Enrich(cmd.Context(), scraped)
			if err := landing.SaveGoogleBooks(cfg.GoogleBooksCSV(), enriched); err != nil {
				return err
			}
			slog.Info("Landing file written", "path", cfg.GoogleBooksCSV(), "records", len(enriched))
			return nil
		},
	}

	return cmd
}
