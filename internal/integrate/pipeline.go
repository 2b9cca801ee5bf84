// Package integrate implements the multi-source integration engine:
// normalization, canonical key derivation, grouping, survivorship merging,
// provenance recording and the quality gate. It operates purely on
// in-memory record collections; I/O belongs to the collaborators that feed
// it and consume its tables.
package integrate

import (
	"log/slog"
	"time"

	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/models"
	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/quality"
)

// Result holds the three outputs of one integration run.
type Result struct {
	Books   []models.CanonicalBook
	Details []models.ProvenanceDetail
	Metrics models.QualityMetrics
}

// Run executes one integration pass over the unioned raw records from
// both sources. Stages run strictly in sequence over immutable input, so
// identical records and an identical clock yield identical tables.
//
// On a quality-gate violation the error is a *quality.GateError and the
// returned Result must not be published; it is still returned so callers
// can report the metrics of the failed run.
func Run(records []models.RawRecord, now time.Time) (*Result, error) {
	slog.Info("Starting integration run", "records", len(records))

	normalized := make([]models.RawRecord, 0, len(records))
	for _, rec := range records {
		n := Normalize(rec)
		n.CandidateKey = BuildKey(n)
		normalized = append(normalized, n)
	}

	groups := GroupByKey(normalized)
	slog.Info("Grouped records", "groups", len(groups))

	ts := now.UTC().Format(time.RFC3339)
	books := make([]models.CanonicalBook, 0, len(groups))
	details := make([]models.ProvenanceDetail, 0, len(normalized))
	for _, g := range groups {
		book, winners := MergeGroup(g, now)
		books = append(books, book)
		details = append(details, BuildDetail(g, winners, ts)...)
	}

	metrics, err := quality.Evaluate(books, details)
	result := &Result{Books: books, Details: details, Metrics: metrics}
	if err != nil {
		return result, err
	}

	slog.Info("Integration run passed quality gate",
		"books", len(books),
		"detail_rows", len(details),
		"duplicate_keys", metrics.DuplicateCandidateKeys)
	return result, nil
}
