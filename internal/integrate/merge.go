package integrate

import (
	"sort"
	"strings"
	"time"

	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/models"
)

// rankedRec pairs a record with its position in the group so winner flags
// can be reported back in ingestion order.
type rankedRec struct {
	pos int
	rec models.RawRecord
}

// MergeGroup folds one group into its canonical row. Field survivorship
// cascades per field through the records ordered by source priority
// (google_books over goodreads), then completeness, then ingestion order:
// a high-priority record with a null field does not block the value from
// a lower-priority record. List fields take the order-preserving union.
// The returned winners slice is aligned with g.Records and marks every
// record that contributed at least one surviving value.
func MergeGroup(g Group, now time.Time) (models.CanonicalBook, []bool) {
	m := &merger{winners: make([]bool, len(g.Records))}
	for i, rec := range g.Records {
		m.ranked = append(m.ranked, rankedRec{pos: i, rec: rec})
	}
	sort.SliceStable(m.ranked, func(i, j int) bool {
		a, b := m.ranked[i].rec, m.ranked[j].rec
		if a.Source.Priority() != b.Source.Priority() {
			return a.Source.Priority() > b.Source.Priority()
		}
		// Duplicate within a source: the more complete record first.
		return identityFieldCount(a) > identityFieldCount(b)
	})

	book := models.CanonicalBook{
		BookID:          g.Key,
		Title:           m.pickString(func(r models.RawRecord) *string { return r.Title }),
		PrimaryAuthor:   m.pickString(func(r models.RawRecord) *string { return r.PrimaryAuthor }),
		Authors:         m.union(func(r models.RawRecord) []string { return r.Authors }),
		Publisher:       m.pickString(func(r models.RawRecord) *string { return r.Publisher }),
		PubYear:         m.pickInt(func(r models.RawRecord) *int { return r.PubYear }),
		PubDate:         m.pickString(func(r models.RawRecord) *string { return r.PubDate }),
		Language:        m.pickString(func(r models.RawRecord) *string { return r.Language }),
		ISBN10:          m.pickString(func(r models.RawRecord) *string { return r.ISBN10 }),
		ISBN13:          m.pickString(func(r models.RawRecord) *string { return r.ISBN13 }),
		Pages:           m.pickInt(func(r models.RawRecord) *int { return r.Pages }),
		Format:          m.pickString(func(r models.RawRecord) *string { return r.Format }),
		Categories:      m.union(func(r models.RawRecord) []string { return r.Categories }),
		Price:           m.pickFloat(func(r models.RawRecord) *float64 { return r.Price }),
		Currency:        m.pickString(func(r models.RawRecord) *string { return r.Currency }),
		WinningSource:   m.winningSource(),
		UpdatedAt:       now.UTC().Format(time.RFC3339),
		TitleNormalized: m.titleNormalized(),
	}

	// Rating fields only exist on Goodreads, so they come from there no
	// matter which source won the row.
	book.Rating = m.pickFloatFrom(models.SourceGoodreads, func(r models.RawRecord) *float64 { return r.Rating })
	book.RatingsCount = m.pickIntFrom(models.SourceGoodreads, func(r models.RawRecord) *int { return r.RatingsCount })

	return book, m.winners
}

type merger struct {
	ranked  []rankedRec
	winners []bool
}

func (m *merger) pickString(get func(models.RawRecord) *string) *string {
	for _, rr := range m.ranked {
		if v := get(rr.rec); v != nil && strings.TrimSpace(*v) != "" {
			m.winners[rr.pos] = true
			out := *v
			return &out
		}
	}
	return nil
}

func (m *merger) pickInt(get func(models.RawRecord) *int) *int {
	for _, rr := range m.ranked {
		if v := get(rr.rec); v != nil {
			m.winners[rr.pos] = true
			out := *v
			return &out
		}
	}
	return nil
}

func (m *merger) pickFloat(get func(models.RawRecord) *float64) *float64 {
	for _, rr := range m.ranked {
		if v := get(rr.rec); v != nil {
			m.winners[rr.pos] = true
			out := *v
			return &out
		}
	}
	return nil
}

func (m *merger) pickIntFrom(src models.Source, get func(models.RawRecord) *int) *int {
	for _, rr := range m.ranked {
		if rr.rec.Source != src {
			continue
		}
		if v := get(rr.rec); v != nil {
			m.winners[rr.pos] = true
			out := *v
			return &out
		}
	}
	return nil
}

func (m *merger) pickFloatFrom(src models.Source, get func(models.RawRecord) *float64) *float64 {
	for _, rr := range m.ranked {
		if rr.rec.Source != src {
			continue
		}
		if v := get(rr.rec); v != nil {
			m.winners[rr.pos] = true
			out := *v
			return &out
		}
	}
	return nil
}

// union collects list values across all records in priority order,
// de-duplicated and preserving first occurrence.
func (m *merger) union(get func(models.RawRecord) []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, rr := range m.ranked {
		for _, v := range get(rr.rec) {
			v = strings.TrimSpace(v)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
			m.winners[rr.pos] = true
		}
	}
	return out
}

// winningSource is the highest-priority source that contributed at least
// one non-null identity field to the row.
func (m *merger) winningSource() string {
	for _, rr := range m.ranked {
		if identityFieldCount(rr.rec) > 0 {
			return string(rr.rec.Source)
		}
	}
	if len(m.ranked) > 0 {
		return string(m.ranked[0].rec.Source)
	}
	return ""
}

func (m *merger) titleNormalized() string {
	for _, rr := range m.ranked {
		if rr.rec.TitleNormalized != "" {
			return rr.rec.TitleNormalized
		}
	}
	return ""
}

// identityFieldCount counts non-null scalar identity fields. It drives
// both the same-source completeness tie-break and the winning_source
// attribution. Rating fields are excluded: they never decide survivorship.
func identityFieldCount(r models.RawRecord) int {
	n := 0
	for _, p := range []*string{r.Title, r.Publisher, r.Language, r.ISBN10, r.ISBN13, r.Format, r.Currency} {
		if p != nil && strings.TrimSpace(*p) != "" {
			n++
		}
	}
	if r.PubDate != nil || r.PubYear != nil {
		n++
	}
	if r.Pages != nil {
		n++
	}
	if r.Price != nil {
		n++
	}
	return n
}
