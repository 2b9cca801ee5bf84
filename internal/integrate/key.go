package integrate

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/isbn"
	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/models"
)

// keyVersion is baked into every hashed key so a future change to the
// algorithm cannot silently collide with keys from older runs.
const keyVersion = "v1"

// yearSentinel stands in for an unknown publication year inside the hash
// tuple. Two same-title/author records with unknown year collide on
// purpose rather than silently dropping the year from the key.
const yearSentinel = "s/f"

// BuildKey derives the candidate book identifier for a normalized record:
// the ISBN-13 when present and valid, otherwise a stable 12-hex-char hash
// of (normalized title, primary author, publication year). The hash never
// depends on process state or map order, so reruns are idempotent.
func BuildKey(rec models.RawRecord) string {
	if rec.ISBN13 != nil && isbn.IsValid13(*rec.ISBN13) {
		return *rec.ISBN13
	}

	author := ""
	if rec.PrimaryAuthor != nil {
		author = strings.ToLower(strings.TrimSpace(*rec.PrimaryAuthor))
	}
	year := yearSentinel
	if rec.PubYear != nil {
		year = strconv.Itoa(*rec.PubYear)
	}

	seed := strings.Join([]string{keyVersion, rec.TitleNormalized, author, year}, "|")
	sum := md5.Sum([]byte(seed))
	return hex.EncodeToString(sum[:])[:12]
}
