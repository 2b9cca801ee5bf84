// Package quality computes run-level data-quality metrics and enforces
// the hard assertions that gate publication of a run's artifacts.
package quality

import (
	"fmt"
	"math"
	"strings"

	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/models"
)

// MinYear is the publication-year sanity floor. Anything below it is
// treated as corrupted input, not as a very old book.
const MinYear = 1800

// minTitleFraction is the minimum share of canonical rows that must carry
// a non-null title.
const minTitleFraction = 0.8

// GateError reports every hard assertion a run violated. A run that
// produces a GateError must not publish any artifact.
type GateError struct {
	Violations []string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("quality gate failed: %s", strings.Join(e.Violations, "; "))
}

// Evaluate computes the run metrics and applies the hard assertions over
// the merged and detail tables. It is a pure reduction: all state comes
// in as arguments and leaves as the returned metrics value. The error, if
// non-nil, is a *GateError naming each failed assertion.
func Evaluate(books []models.CanonicalBook, details []models.ProvenanceDetail) (models.QualityMetrics, error) {
	metrics := Compute(books, details)

	var violations []string

	if len(books) == 0 {
		violations = append(violations, "dim_book is empty: no canonical book could be built")
	}

	seen := make(map[string]bool, len(books))
	for _, b := range books {
		if seen[b.BookID] {
			violations = append(violations, fmt.Sprintf("book_id %q is not unique in dim_book", b.BookID))
		}
		seen[b.BookID] = true
	}

	if len(books) > 0 {
		withTitle := 0
		for _, b := range books {
			if b.Title != nil && strings.TrimSpace(*b.Title) != "" {
				withTitle++
			}
		}
		frac := float64(withTitle) / float64(len(books))
		if frac < minTitleFraction {
			violations = append(violations,
				fmt.Sprintf("only %.1f%% of dim_book rows have a non-null title (minimum %.0f%%)",
					frac*100, minTitleFraction*100))
		}
	}

	for _, b := range books {
		if b.PubYear != nil && *b.PubYear < MinYear {
			violations = append(violations,
				fmt.Sprintf("book %s has suspicious publication year %d (floor %d)", b.BookID, *b.PubYear, MinYear))
		}
		if b.Price != nil && *b.Price <= 0 {
			violations = append(violations,
				fmt.Sprintf("book %s has non-positive price %.2f", b.BookID, *b.Price))
		}
	}

	if len(violations) > 0 {
		return metrics, &GateError{Violations: violations}
	}
	return metrics, nil
}

// Compute derives the aggregate metrics for one run from the two output
// tables. Percentages are over the detail table (one row per raw record),
// rounded to two decimals.
func Compute(books []models.CanonicalBook, details []models.ProvenanceDetail) models.QualityMetrics {
	m := models.QualityMetrics{
		TotalRecords: len(details),
		TotalBooks:   len(books),
	}

	validISBN, validDate, validLang, validCurr := 0, 0, 0, 0
	byKey := make(map[string]int)
	titlesByBook := make(map[string]map[string]bool)

	for _, d := range details {
		switch models.Source(d.Source) {
		case models.SourceGoodreads:
			m.TotalGoodreads++
		case models.SourceGoogleBooks:
			m.TotalGoogleBooks++
		}
		if d.ValidISBN13 {
			validISBN++
		}
		if d.ValidPubDate {
			validDate++
		}
		if d.ValidLanguage {
			validLang++
		}
		if d.ValidCurrency {
			validCurr++
		}
		byKey[d.CandidateKey]++
		if d.TitleNormalized != "" {
			if titlesByBook[d.BookID] == nil {
				titlesByBook[d.BookID] = make(map[string]bool)
			}
			titlesByBook[d.BookID][d.TitleNormalized] = true
		}
	}

	if len(details) > 0 {
		total := float64(len(details))
		m.PctValidISBN13 = pct(validISBN, total)
		m.PctValidPubDate = pct(validDate, total)
		m.PctValidLanguage = pct(validLang, total)
		m.PctValidCurrency = pct(validCurr, total)
	}

	for _, n := range byKey {
		if n > 1 {
			m.DuplicateCandidateKeys++
		}
	}

	// Best-effort collision flag: records that grouped under one key but
	// disagree on the normalized title probably are distinct books.
	for _, titles := range titlesByBook {
		if len(titles) > 1 {
			m.SuspectedCollisions++
		}
	}

	return m
}

func pct(n int, total float64) float64 {
	return math.Round(float64(n)/total*10000) / 100
}
