package integrate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/isbn"
	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/models"
)

// Normalize maps the raw fields of a record to their canonical forms on a
// copy of the record. It is total: a value that cannot be interpreted
// becomes nil, never an error, and the record is never dropped.
func Normalize(rec models.RawRecord) models.RawRecord {
	out := rec

	if rec.Title != nil {
		out.TitleNormalized = normalizeTitle(*rec.Title)
	}
	out.Language = normalizeLanguage(rec.LanguageRaw)
	out.Currency = normalizeCurrency(rec.Currency)
	out.PubDate, out.PubYear = normalizeDate(rec.PubDateRaw)
	out.ISBN13 = cleanISBN(rec.ISBN13, isbn.IsValid13)
	out.ISBN10 = cleanISBN(rec.ISBN10, isbn.IsValid10)

	out.ValidISBN13 = out.ISBN13 != nil
	out.ValidPubDate = out.PubDate != nil
	out.ValidLanguage = out.Language != nil
	out.ValidCurrency = out.Currency != nil

	return out
}

// normalizeTitle lowercases, trims and collapses internal whitespace.
// The original casing survives in the display title field.
func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// normalizeLanguage maps free-text locale codes to a BCP-47-like xx-YY
// tag. A bare two-letter code widens to xx-XX, matching how the source
// data writes regions; anything unparseable is nil, never guessed.
func normalizeLanguage(raw *string) *string {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(strings.ToLower(strings.ReplaceAll(*raw, "_", "-")))
	if s == "" {
		return nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return nil
	}
	base, conf := tag.Base()
	if conf == language.No {
		return nil
	}
	if region, rconf := tag.Region(); rconf >= language.High {
		v := base.String() + "-" + region.String()
		return &v
	}
	v := base.String() + "-" + strings.ToUpper(base.String())
	return &v
}

var currencySymbols = map[string]string{
	"€": "EUR",
	"$": "USD",
	"£": "GBP",
	"¥": "JPY",
}

// normalizeCurrency maps a currency symbol or code to its ISO-4217
// 3-letter form, or nil when unrecognized.
func normalizeCurrency(raw *string) *string {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil
	}
	if code, ok := currencySymbols[s]; ok {
		return &code
	}
	unit, err := currency.ParseISO(strings.ToUpper(s))
	if err != nil {
		return nil
	}
	v := unit.String()
	return &v
}

var (
	yearOnlyRe  = regexp.MustCompile(`^\d{4}$`)
	yearMonthRe = regexp.MustCompile(`^(\d{4})-\d{1,2}$`)
	yearScanRe  = regexp.MustCompile(`\b(1[5-9]\d{2}|20\d{2})\b`)
)

// normalizeDate parses the heterogeneous date strings the sources emit
// into an ISO-8601 date plus year. Partial dates (year or year-month)
// keep only the year: the missing day is never invented.
func normalizeDate(raw *string) (*string, *int) {
	if raw == nil {
		return nil, nil
	}
	s := cleanDateText(*raw)
	if s == "" {
		return nil, nil
	}

	if yearOnlyRe.MatchString(s) {
		return nil, atoiPtr(s)
	}
	if m := yearMonthRe.FindStringSubmatch(s); m != nil {
		return nil, atoiPtr(m[1])
	}
	if t, err := dateparse.ParseAny(s); err == nil {
		iso := t.Format("2006-01-02")
		y := t.Year()
		return &iso, &y
	}
	// Last resort: keep a plausible year found anywhere in the text.
	if m := yearScanRe.FindString(s); m != "" {
		return nil, atoiPtr(m)
	}
	return nil, nil
}

// cleanDateText strips the publication-info noise Goodreads wraps around
// its dates, e.g. "First published November 18, 2016 by MIT Press".
func cleanDateText(s string) string {
	t := strings.TrimSpace(s)
	low := strings.ToLower(t)
	for _, prefix := range []string{"first published", "expected publication", "published"} {
		if strings.HasPrefix(low, prefix) {
			t = strings.TrimSpace(t[len(prefix):])
			low = strings.ToLower(t)
			break
		}
	}
	if i := strings.Index(low, " by "); i > 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}

// cleanISBN strips separators and validates the check digit; an ISBN that
// fails validation is nulled but the record survives.
func cleanISBN(raw *string, valid func(string) bool) *string {
	if raw == nil {
		return nil
	}
	c := isbn.Clean(*raw)
	if !valid(c) {
		return nil
	}
	return &c
}

func atoiPtr(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
