// Package landing reads and writes the raw landing files and maps each
// source's columns to the common record model consumed by the engine.
package landing

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/goodreads"
	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/googlebooks"
	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/models"
)

// csvHeader fixes the column order of the Google Books landing CSV.
var csvHeader = []string{
	"source", "query_used", "google_volume_id",
	"title_gb", "subtitle_gb", "authors_gb",
	"publisher", "published_date_raw", "page_count",
	"language_raw", "categories_raw",
	"isbn10_gb", "isbn13_gb",
	"price_amount", "price_currency",
	"info_link", "self_link",
}

// SaveGoodreads writes the scraped records as indented JSON.
func SaveGoodreads(path string, records []goodreads.Book) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create landing directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode goodreads records: %w", err)
	}
	return nil
}

// LoadGoodreads reads the scraped records back from the landing JSON.
func LoadGoodreads(path string) ([]goodreads.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var records []goodreads.Book
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// SaveGoogleBooks writes the enriched records as a headered CSV. Null
// fields become empty cells.
func SaveGoogleBooks(path string, records []googlebooks.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create landing directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Source, rec.QueryUsed, rec.VolumeID,
			strDeref(rec.Title), strDeref(rec.Subtitle), strDeref(rec.Authors),
			strDeref(rec.Publisher), strDeref(rec.PublishedDate), intCell(rec.PageCount),
			strDeref(rec.Language), strDeref(rec.Categories),
			strDeref(rec.ISBN10), strDeref(rec.ISBN13),
			floatCell(rec.PriceAmount), strDeref(rec.PriceCurrency),
			strDeref(rec.InfoLink), strDeref(rec.SelfLink),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// LoadGoogleBooks reads the enriched records back from the landing CSV.
func LoadGoogleBooks(path string) ([]googlebooks.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	cell := func(row []string, name string) *string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return nil
		}
		v := strings.TrimSpace(row[i])
		if v == "" {
			return nil
		}
		return &v
	}

	records := make([]googlebooks.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := googlebooks.Record{
			Source:        derefOr(cell(row, "source"), "google_books"),
			QueryUsed:     derefOr(cell(row, "query_used"), ""),
			VolumeID:      derefOr(cell(row, "google_volume_id"), ""),
			Title:         cell(row, "title_gb"),
			Subtitle:      cell(row, "subtitle_gb"),
			Authors:       cell(row, "authors_gb"),
			Publisher:     cell(row, "publisher"),
			PublishedDate: cell(row, "published_date_raw"),
			Language:      cell(row, "language_raw"),
			Categories:    cell(row, "categories_raw"),
			ISBN10:        cell(row, "isbn10_gb"),
			ISBN13:        cell(row, "isbn13_gb"),
			PriceCurrency: cell(row, "price_currency"),
			InfoLink:      cell(row, "info_link"),
			SelfLink:      cell(row, "self_link"),
		}
		if v := cell(row, "page_count"); v != nil {
			if n, err := strconv.Atoi(*v); err == nil {
				rec.PageCount = &n
			}
		}
		if v := cell(row, "price_amount"); v != nil {
			if f, err := strconv.ParseFloat(*v, 64); err == nil {
				rec.PriceAmount = &f
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadRawRecords reads both landing files and unions them into the common
// record model, Goodreads first. Fields a source does not provide stay
// nil.
func LoadRawRecords(goodreadsPath, googleBooksPath string) ([]models.RawRecord, error) {
	scraped, err := LoadGoodreads(goodreadsPath)
	if err != nil {
		return nil, err
	}
	enriched, err := LoadGoogleBooks(googleBooksPath)
	if err != nil {
		return nil, err
	}

	records := make([]models.RawRecord, 0, len(scraped)+len(enriched))
	for i, b := range scraped {
		records = append(records, goodreadsToRaw(b, i+1, filepath.Base(goodreadsPath)))
	}
	for i, r := range enriched {
		records = append(records, googleBooksToRaw(r, i+1, filepath.Base(googleBooksPath)))
	}
	return records, nil
}

func goodreadsToRaw(b goodreads.Book, rowNumber int, sourceFile string) models.RawRecord {
	rec := models.RawRecord{
		Source:     models.SourceGoodreads,
		SourceFile: sourceFile,
		RowNumber:  rowNumber,

		Title:        b.Title,
		PubDateRaw:   b.PublicationInfoRaw,
		Pages:        b.Pages,
		ISBN10:       b.ISBN10,
		ISBN13:       b.ISBN13,
		Format:       b.Format,
		Rating:       b.RatingValue,
		RatingsCount: b.RatingsCount,
	}
	if b.BookIDSource != "" {
		id := b.BookIDSource
		rec.SourceID = &id
	}
	if b.URL != "" {
		u := b.URL
		rec.DetailURL = &u
	}
	rec.Authors = splitList(b.Authors, ",")
	rec.PrimaryAuthor = firstOf(rec.Authors)
	return rec
}

func googleBooksToRaw(r googlebooks.Record, rowNumber int, sourceFile string) models.RawRecord {
	rec := models.RawRecord{
		Source:     models.SourceGoogleBooks,
		SourceFile: sourceFile,
		RowNumber:  rowNumber,

		Title:       r.Title,
		Publisher:   r.Publisher,
		PubDateRaw:  r.PublishedDate,
		Pages:       r.PageCount,
		LanguageRaw: r.Language,
		ISBN10:      r.ISBN10,
		ISBN13:      r.ISBN13,
		Price:       r.PriceAmount,
		Currency:    r.PriceCurrency,
		DetailURL:   r.InfoLink,
	}
	if r.VolumeID != "" {
		id := r.VolumeID
		rec.SourceID = &id
	}
	rec.Authors = splitList(r.Authors, ",")
	rec.PrimaryAuthor = firstOf(rec.Authors)
	rec.Categories = splitList(r.Categories, "|")
	return rec
}

func splitList(joined *string, sep string) []string {
	if joined == nil {
		return nil
	}
	var out []string
	for _, part := range strings.Split(*joined, sep) {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func firstOf(values []string) *string {
	if len(values) == 0 {
		return nil
	}
	return &values[0]
}

func strDeref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}

func intCell(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func floatCell(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
