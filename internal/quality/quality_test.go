package quality

import (
	"strings"
	"testing"

	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/models"
)

func sp(s string) *string   { return &s }
func ip(n int) *int         { return &n }
func fp(f float64) *float64 { return &f }

func book(id, title string) models.CanonicalBook {
	return models.CanonicalBook{BookID: id, Title: sp(title), TitleNormalized: strings.ToLower(title)}
}

func TestEvaluatePasses(t *testing.T) {
	books := []models.CanonicalBook{book("a", "Deep Learning"), book("b", "Clean Code")}
	details := []models.ProvenanceDetail{
		{BookID: "a", CandidateKey: "a", Source: "goodreads", TitleNormalized: "deep learning", ValidISBN13: true},
		{BookID: "b", CandidateKey: "b", Source: "google_books", TitleNormalized: "clean code"},
	}

	metrics, err := Evaluate(books, details)
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	if metrics.TotalBooks != 2 || metrics.TotalRecords != 2 {
		t.Errorf("totals = %d/%d, want 2/2", metrics.TotalBooks, metrics.TotalRecords)
	}
}

func TestEvaluateCollectsAllViolations(t *testing.T) {
	old := book("a", "Forged Folio")
	old.PubYear = ip(1799)
	free := book("b", "Free Book")
	free.Price = fp(0)

	_, err := Evaluate([]models.CanonicalBook{old, free}, nil)
	if err == nil {
		t.Fatal("Evaluate() should fail on year 1799 and price 0")
	}
	gateErr, ok := err.(*GateError)
	if !ok {
		t.Fatalf("error is %T, want *GateError", err)
	}
	if len(gateErr.Violations) != 2 {
		t.Fatalf("got %d violations, want both reported: %v", len(gateErr.Violations), gateErr.Violations)
	}
	if !strings.Contains(gateErr.Error(), "1799") {
		t.Errorf("error %q does not name the bad year", gateErr.Error())
	}
	if !strings.Contains(gateErr.Error(), "non-positive price") {
		t.Errorf("error %q does not name the bad price", gateErr.Error())
	}
}

func TestEvaluateEmptyDim(t *testing.T) {
	_, err := Evaluate(nil, nil)
	if err == nil {
		t.Fatal("Evaluate() should reject an empty dim_book")
	}
}

func TestEvaluateDuplicateBookID(t *testing.T) {
	books := []models.CanonicalBook{book("dup", "One"), book("dup", "Two")}
	_, err := Evaluate(books, nil)
	if err == nil {
		t.Fatal("Evaluate() should reject duplicate book_id values")
	}
	if !strings.Contains(err.Error(), "dup") {
		t.Errorf("error %q does not name the duplicate id", err.Error())
	}
}

func TestEvaluateTitleCoverage(t *testing.T) {
	untitled := models.CanonicalBook{BookID: "x"}
	books := []models.CanonicalBook{book("a", "A"), untitled}

	// 50% coverage is below the 80% floor.
	if _, err := Evaluate(books, nil); err == nil {
		t.Fatal("Evaluate() should reject 50% title coverage")
	}

	// 4 of 5 titled rows is exactly at the floor and passes.
	books = []models.CanonicalBook{book("a", "A"), book("b", "B"), book("c", "C"), book("d", "D"), untitled}
	if _, err := Evaluate(books, nil); err != nil {
		t.Fatalf("Evaluate() at exactly 80%% coverage: %v", err)
	}
}

func TestComputeMetrics(t *testing.T) {
	books := []models.CanonicalBook{book("a", "A"), book("b", "B")}
	details := []models.ProvenanceDetail{
		{BookID: "a", CandidateKey: "a", Source: "goodreads", TitleNormalized: "deep learning", ValidISBN13: true, ValidPubDate: true},
		{BookID: "a", CandidateKey: "a", Source: "google_books", TitleNormalized: "deep learning 2nd ed", ValidISBN13: true, ValidLanguage: true},
		{BookID: "b", CandidateKey: "b", Source: "goodreads", TitleNormalized: "clean code", ValidCurrency: true},
	}

	m := Compute(books, details)

	if m.TotalGoodreads != 2 || m.TotalGoogleBooks != 1 {
		t.Errorf("per-source totals = %d/%d, want 2/1", m.TotalGoodreads, m.TotalGoogleBooks)
	}
	if m.PctValidISBN13 != 66.67 {
		t.Errorf("PctValidISBN13 = %v, want 66.67", m.PctValidISBN13)
	}
	if m.PctValidPubDate != 33.33 {
		t.Errorf("PctValidPubDate = %v, want 33.33", m.PctValidPubDate)
	}
	if m.DuplicateCandidateKeys != 1 {
		t.Errorf("DuplicateCandidateKeys = %d, want 1", m.DuplicateCandidateKeys)
	}
	// Two distinct normalized titles under book a.
	if m.SuspectedCollisions != 1 {
		t.Errorf("SuspectedCollisions = %d, want 1", m.SuspectedCollisions)
	}
}

func TestComputeEmptyInput(t *testing.T) {
	m := Compute(nil, nil)
	if m.PctValidISBN13 != 0 || m.TotalRecords != 0 {
		t.Errorf("empty input should yield zero metrics, got %+v", m)
	}
}
