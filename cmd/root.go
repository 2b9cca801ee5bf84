package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "libros",
		Short: "Multi-source book metadata integration pipeline",
		Long: `Libros consolidates book metadata from a scraped Goodreads catalog and
the Google Books API into one canonical, deduplicated table with full
source provenance and quality metrics.

The pipeline runs in three stages: scrape, enrich, integrate.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "Path to the pipeline config file")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newEnrichCmd())
	cmd.AddCommand(newIntegrateCmd())

	return cmd
}
