package integrate

import (
	"testing"

	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/models"
)

func sp(s string) *string   { return &s }
func ip(n int) *int         { return &n }
func fp(f float64) *float64 { return &f }

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"mixed case", "Deep Learning", "deep learning"},
		{"extra whitespace", "  Deep   Learning\t", "deep learning"},
		{"already normalized", "deep learning", "deep learning"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(models.RawRecord{Title: sp(tt.input)})
			if got.TitleNormalized != tt.want {
				t.Errorf("TitleNormalized = %q, want %q", got.TitleNormalized, tt.want)
			}
		})
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  *string
	}{
		{"bare english code", sp("en"), sp("en-EN")},
		{"bare spanish code", sp("es"), sp("es-ES")},
		{"explicit region kept", sp("pt-BR"), sp("pt-BR")},
		{"underscore separator", sp("pt_BR"), sp("pt-BR")},
		{"unparseable", sp("123"), nil},
		{"empty", sp(""), nil},
		{"missing", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(models.RawRecord{LanguageRaw: tt.input})
			assertStrPtr(t, "Language", got.Language, tt.want)
			if wantValid := tt.want != nil; got.ValidLanguage != wantValid {
				t.Errorf("ValidLanguage = %v, want %v", got.ValidLanguage, wantValid)
			}
		})
	}
}

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  *string
	}{
		{"iso code upper", sp("EUR"), sp("EUR")},
		{"iso code lower", sp("usd"), sp("USD")},
		{"euro symbol", sp("€"), sp("EUR")},
		{"dollar symbol", sp("$"), sp("USD")},
		{"unknown code", sp("ZZZ"), nil},
		{"missing", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(models.RawRecord{Currency: tt.input})
			assertStrPtr(t, "Currency", got.Currency, tt.want)
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		input    *string
		wantDate *string
		wantYear *int
	}{
		{"iso date", sp("2016-11-18"), sp("2016-11-18"), ip(2016)},
		{"long form", sp("November 18, 2016"), sp("2016-11-18"), ip(2016)},
		{"goodreads prefix and publisher", sp("Published November 18, 2016 by MIT Press"), sp("2016-11-18"), ip(2016)},
		{"first published prefix", sp("First published January 1, 2016"), sp("2016-01-01"), ip(2016)},
		{"year only", sp("2016"), nil, ip(2016)},
		{"year and month only", sp("2016-11"), nil, ip(2016)},
		{"year buried in text", sp("circa 1995 edition"), nil, ip(1995)},
		{"no usable year", sp("unknown"), nil, nil},
		{"missing", nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(models.RawRecord{PubDateRaw: tt.input})
			assertStrPtr(t, "PubDate", got.PubDate, tt.wantDate)
			assertIntPtr(t, "PubYear", got.PubYear, tt.wantYear)
			if wantValid := tt.wantDate != nil; got.ValidPubDate != wantValid {
				t.Errorf("ValidPubDate = %v, want %v", got.ValidPubDate, wantValid)
			}
		})
	}
}

func TestNormalizeISBN(t *testing.T) {
	tests := []struct {
		name       string
		isbn13     *string
		isbn10     *string
		wantISBN13 *string
		wantISBN10 *string
	}{
		{"both valid", sp("978-0-262-03561-3"), sp("0-306-40615-2"), sp("9780262035613"), sp("0306406152")},
		{"invalid isbn13 nulled", sp("9780262035614"), nil, nil, nil},
		{"invalid isbn10 nulled", nil, sp("0306406153"), nil, nil},
		{"missing", nil, nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(models.RawRecord{ISBN13: tt.isbn13, ISBN10: tt.isbn10})
			assertStrPtr(t, "ISBN13", got.ISBN13, tt.wantISBN13)
			assertStrPtr(t, "ISBN10", got.ISBN10, tt.wantISBN10)
			if wantValid := tt.wantISBN13 != nil; got.ValidISBN13 != wantValid {
				t.Errorf("ValidISBN13 = %v, want %v", got.ValidISBN13, wantValid)
			}
		})
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	rec := models.RawRecord{Title: sp("Deep Learning"), ISBN13: sp("bad")}
	_ = Normalize(rec)
	if rec.TitleNormalized != "" || rec.ISBN13 == nil || *rec.ISBN13 != "bad" {
		t.Error("Normalize mutated its input record")
	}
}

func assertStrPtr(t *testing.T, field string, got, want *string) {
	t.Helper()
	switch {
	case got == nil && want == nil:
	case got == nil || want == nil:
		t.Errorf("%s = %v, want %v", field, fmtStrPtr(got), fmtStrPtr(want))
	case *got != *want:
		t.Errorf("%s = %q, want %q", field, *got, *want)
	}
}

func assertIntPtr(t *testing.T, field string, got, want *int) {
	t.Helper()
	switch {
	case got == nil && want == nil:
	case got == nil || want == nil:
		t.Errorf("%s pointer mismatch: got %v, want %v", field, got, want)
	case *got != *want:
		t.Errorf("%s = %d, want %d", field, *got, *want)
	}
}

func fmtStrPtr(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}
