package integrate

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/models"
	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/quality"
)

func sampleRecords() []models.RawRecord {
	return []models.RawRecord{
		{
			Source:        models.SourceGoodreads,
			SourceID:      sp("24072897"),
			SourceFile:    "goodreads_books.json",
			RowNumber:     1,
			Title:         sp("Deep Learning"),
			PrimaryAuthor: sp("Ian Goodfellow"),
			Authors:       []string{"Ian Goodfellow", "Yoshua Bengio", "Aaron Courville"},
			PubDateRaw:    sp("Published November 18, 2016 by MIT Press"),
			Pages:         ip(775),
			ISBN13:        sp("9780262035613"),
			Format:        sp("Hardcover"),
			Rating:        fp(4.42),
			RatingsCount:  ip(3120),
		},
		{
			Source:        models.SourceGoogleBooks,
			SourceID:      sp("omivDQAAQBAJ"),
			SourceFile:    "google_books.csv",
			RowNumber:     2,
			Title:         sp("Deep  Learning"),
			PrimaryAuthor: sp("Ian Goodfellow"),
			Publisher:     sp("MIT Press"),
			PubDateRaw:    sp("2016-11-18"),
			LanguageRaw:   sp("en"),
			ISBN13:        sp("978-0-262-03561-3"),
			Price:         fp(72.5),
			Currency:      sp("EUR"),
		},
		{
			Source:        models.SourceGoodreads,
			SourceID:      sp("3735293"),
			SourceFile:    "goodreads_books.json",
			RowNumber:     3,
			Title:         sp("Clean Code"),
			PrimaryAuthor: sp("Robert C. Martin"),
			PubDateRaw:    sp("2008"),
			Rating:        fp(4.18),
		},
	}
}

func TestRunMergesAcrossSources(t *testing.T) {
	result, err := Run(sampleRecords(), testClock)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(result.Books) != 2 {
		t.Fatalf("got %d canonical books, want 2", len(result.Books))
	}
	if len(result.Details) != 3 {
		t.Fatalf("got %d detail rows, want 3", len(result.Details))
	}

	deep := result.Books[0]
	if deep.BookID != "9780262035613" {
		t.Errorf("BookID = %q, want the shared ISBN-13", deep.BookID)
	}
	if deep.WinningSource != string(models.SourceGoogleBooks) {
		t.Errorf("WinningSource = %q, want google_books", deep.WinningSource)
	}
	assertStrPtr(t, "Publisher", deep.Publisher, sp("MIT Press"))
	assertStrPtr(t, "PubDate", deep.PubDate, sp("2016-11-18"))
	assertStrPtr(t, "Language", deep.Language, sp("en-EN"))
	assertFloatPtr(t, "Rating", deep.Rating, fp(4.42))
	assertIntPtr(t, "Pages", deep.Pages, ip(775))

	clean := result.Books[1]
	if len(clean.BookID) != 12 {
		t.Errorf("hash-keyed BookID = %q, want 12 chars", clean.BookID)
	}
	assertIntPtr(t, "PubYear", clean.PubYear, ip(2008))

	if result.Metrics.TotalRecords != 3 || result.Metrics.TotalBooks != 2 {
		t.Errorf("metrics totals = %d/%d, want 3/2", result.Metrics.TotalRecords, result.Metrics.TotalBooks)
	}
	if result.Metrics.TotalGoodreads != 2 || result.Metrics.TotalGoogleBooks != 1 {
		t.Errorf("per-source totals = %d/%d, want 2/1",
			result.Metrics.TotalGoodreads, result.Metrics.TotalGoogleBooks)
	}
	if result.Metrics.DuplicateCandidateKeys != 1 {
		t.Errorf("DuplicateCandidateKeys = %d, want 1", result.Metrics.DuplicateCandidateKeys)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	first, err := Run(sampleRecords(), testClock)
	if err != nil {
		t.Fatalf("first Run() error: %v", err)
	}
	second, err := Run(sampleRecords(), testClock)
	if err != nil {
		t.Fatalf("second Run() error: %v", err)
	}

	if !reflect.DeepEqual(first.Books, second.Books) {
		t.Error("dim_book differs between identical runs")
	}
	if !reflect.DeepEqual(first.Details, second.Details) {
		t.Error("book_source_detail differs between identical runs")
	}
	if !reflect.DeepEqual(first.Metrics, second.Metrics) {
		t.Error("quality metrics differ between identical runs")
	}
}

func TestRunProvenanceRows(t *testing.T) {
	result, err := Run(sampleRecords(), testClock)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	byRow := make(map[int]models.ProvenanceDetail)
	for _, d := range result.Details {
		byRow[d.RowNumber] = d
	}

	gr := byRow[1]
	if gr.BookID != "9780262035613" {
		t.Errorf("goodreads detail BookID = %q, want the merged book", gr.BookID)
	}
	if !gr.Winner {
		t.Error("goodreads record contributed rating and pages, must be a winner")
	}
	if gr.IngestedAt != "2025-10-05T12:00:00Z" {
		t.Errorf("IngestedAt = %q, want the injected clock", gr.IngestedAt)
	}
	assertStrPtr(t, "PubDateRaw", gr.PubDateRaw, sp("Published November 18, 2016 by MIT Press"))
	assertStrPtr(t, "PubDate", gr.PubDate, sp("2016-11-18"))

	gb := byRow[2]
	if !gb.ValidISBN13 {
		t.Error("google_books detail should record a valid ISBN-13")
	}
	if gb.CandidateKey != "9780262035613" {
		t.Errorf("CandidateKey = %q, want the cleaned ISBN-13", gb.CandidateKey)
	}
}

func TestRunGateFailureReturnsMetrics(t *testing.T) {
	records := []models.RawRecord{
		{
			Source:        models.SourceGoodreads,
			RowNumber:     1,
			Title:         sp("Suspicious Reprint"),
			PrimaryAuthor: sp("Nobody"),
			PubDateRaw:    sp("1602"),
		},
	}

	result, err := Run(records, testClock)
	if err == nil {
		t.Fatal("Run() should fail the quality gate on a pre-1800 year")
	}
	var gateErr *quality.GateError
	if !errors.As(err, &gateErr) {
		t.Fatalf("error is %T, want *quality.GateError", err)
	}
	if result == nil || result.Metrics.TotalRecords != 1 {
		t.Error("metrics of the failed run must still be reported")
	}
}
