package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/config"
	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/integrate"
	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/landing"
	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/models"
	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/quality"
	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/standard"
)

func newIntegrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "integrate",
		Short: "Merge both landing sources into the canonical tables",
		Long: `Unions the Goodreads and Google Books landing files, normalizes and
deduplicates them, and publishes dim_book.parquet, book_source_detail.parquet,
quality_metrics.json and schema.md.

A quality-gate violation aborts the run before any artifact is replaced.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			records, err := landing.LoadRawRecords(cfg.GoodreadsJSON(), cfg.GoogleBooksCSV())
			if err != nil {
				return fmt.Errorf("run `libros scrape` and `libros enrich` first: %w", err)
			}

			result, err := integrate.Run(records, time.Now())
			if err != nil {
				var gateErr *quality.GateError
				if errors.As(err, &gateErr) {
					for _, v := range gateErr.Violations {
						slog.Error("Quality assertion failed", "violation", v)
					}
					slog.Error("Run vetoed, previously published artifacts left untouched")
				}
				return err
			}

			if err := standard.WriteParquet(cfg.DimBookParquet(), result.Books); err != nil {
				return err
			}
			if err := standard.WriteParquet(cfg.DetailParquet(), result.Details); err != nil {
				return err
			}
			if err := standard.WriteMetricsJSON(cfg.MetricsJSON(), result.Metrics); err != nil {
				return err
			}
			if err := standard.WriteSchemaMD(cfg.SchemaMD()); err != nil {
				return err
			}

			printRunSummary(result.Metrics, cfg)
			return nil
		},
	}

	return cmd
}

func printRunSummary(m models.QualityMetrics, cfg config.Config) {
	fmt.Println("\n========================================")
	fmt.Println("Integration Summary")
	fmt.Println("========================================")
	fmt.Printf("Raw records:        %d\n", m.TotalRecords)
	fmt.Printf("  goodreads:        %d\n", m.TotalGoodreads)
	fmt.Printf("  google_books:     %d\n", m.TotalGoogleBooks)
	fmt.Printf("Canonical books:    %d\n", m.TotalBooks)
	fmt.Println()
	fmt.Printf("Valid ISBN-13:      %.2f%%\n", m.PctValidISBN13)
	fmt.Printf("Valid date:         %.2f%%\n", m.PctValidPubDate)
	fmt.Printf("Valid language:     %.2f%%\n", m.PctValidLanguage)
	fmt.Printf("Valid currency:     %.2f%%\n", m.PctValidCurrency)
	fmt.Println()
	fmt.Printf("Duplicate keys:     %d\n", m.DuplicateCandidateKeys)
	fmt.Printf("Suspect collisions: %d\n", m.SuspectedCollisions)
	fmt.Println("========================================")
	fmt.Printf("\nArtifacts published under %s and %s\n", cfg.Paths.Standard, cfg.Paths.Docs)
}
