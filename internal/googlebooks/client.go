// Package googlebooks enriches scraped records against the Google Books
// volumes API.
package googlebooks

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	books "google.golang.org/api/books/v1"
	"google.golang.org/api/option"

	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/goodreads"
)

// Record is one Google Books observation as stored in the landing CSV.
type Record struct {
	Source        string
	QueryUsed     string
	VolumeID      string
	Title         *string
	Subtitle      *string
	Authors       *string
	Publisher     *string
	PublishedDate *string
	PageCount     *int
	Language      *string
	Categories    *string
	ISBN10        *string
	ISBN13        *string
	PriceAmount   *float64
	PriceCurrency *string
	InfoLink      *string
	SelfLink      *string
}

// Client wraps the Google Books volumes API. The API works without a key
// under a tighter rate limit, so the key is optional.
type Client struct {
	svc   *books.Service
	pause time.Duration
}

// NewClient builds a Google Books client, authenticated when apiKey is
// non-empty.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	opt := option.WithoutAuthentication()
	if apiKey != "" {
		opt = option.WithAPIKey(apiKey)
	}
	svc, err := books.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create books service: %w", err)
	}
	return &Client{svc: svc, pause: 500 * time.Millisecond}, nil
}

// Enrich looks every scraped record up on Google Books and returns one
// landing record per hit. Records with no usable query or no results are
// skipped, not failed: a smaller landing set is valid data.
func (c *Client) Enrich(ctx context.Context, scraped []goodreads.Book) []Record {
	enriched := make([]Record, 0, len(scraped))

	for i, book := range scraped {
		query := BuildQuery(book)
		slog.Info("Querying Google Books", "progress", fmt.Sprintf("%d/%d", i+1, len(scraped)), "query", query)

		var volume *books.Volume
		if query != "" {
			volume = c.lookup(ctx, query)
		}

		// Second attempt with the bare title.
		if volume == nil && book.Title != nil {
			slog.Debug("No results, retrying with title only", "title", *book.Title)
			query = *book.Title
			volume = c.lookup(ctx, query)
		}

		if volume == nil {
			slog.Warn("No Google Books match, skipping", "id", book.BookIDSource)
			continue
		}

		enriched = append(enriched, RecordFromVolume(volume, query))
		time.Sleep(c.pause)
	}

	slog.Info("Enrichment finished", "records", len(enriched))
	return enriched
}

func (c *Client) lookup(ctx context.Context, query string) *books.Volume {
	res, err := c.svc.Volumes.List(query).MaxResults(1).Context(ctx).Do()
	if err != nil {
		slog.Warn("Google Books call failed", "query", query, "err", err)
		return nil
	}
	if len(res.Items) == 0 {
		return nil
	}
	return res.Items[0]
}

// BuildQuery derives the volumes query for a scraped record: an isbn:
// lookup when a plausible ISBN exists, otherwise title plus first author.
// Empty when the record has nothing to search by.
func BuildQuery(book goodreads.Book) string {
	if digits := cleanISBNDigits(book.ISBN13); digits != "" {
		return "isbn:" + digits
	}
	if digits := cleanISBNDigits(book.ISBN10); digits != "" {
		return "isbn:" + digits
	}

	var parts []string
	if book.Title != nil && strings.TrimSpace(*book.Title) != "" {
		parts = append(parts, strings.TrimSpace(*book.Title))
	}
	if book.Authors != nil {
		if first := strings.TrimSpace(strings.SplitN(*book.Authors, ",", 2)[0]); first != "" {
			parts = append(parts, first)
		}
	}
	return strings.Join(parts, " ")
}

func cleanISBNDigits(raw *string) string {
	if raw == nil {
		return ""
	}
	var b strings.Builder
	for _, r := range *raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 10 || len(digits) == 13 {
		return digits
	}
	return ""
}

// RecordFromVolume maps a volumes API result to the landing record shape.
func RecordFromVolume(volume *books.Volume, query string) Record {
	rec := Record{
		Source:    "google_books",
		QueryUsed: query,
		VolumeID:  volume.Id,
	}
	if volume.SelfLink != "" {
		rec.SelfLink = &volume.SelfLink
	}

	if info := volume.VolumeInfo; info != nil {
		rec.Title = nonEmpty(info.Title)
		rec.Subtitle = nonEmpty(info.Subtitle)
		rec.Publisher = nonEmpty(info.Publisher)
		rec.PublishedDate = nonEmpty(info.PublishedDate)
		rec.Language = nonEmpty(info.Language)
		rec.InfoLink = nonEmpty(info.InfoLink)
		if len(info.Authors) > 0 {
			joined := strings.Join(info.Authors, ", ")
			rec.Authors = &joined
		}
		if len(info.Categories) > 0 {
			joined := strings.Join(info.Categories, " | ")
			rec.Categories = &joined
		}
		if info.PageCount > 0 {
			pages := int(info.PageCount)
			rec.PageCount = &pages
		}
		for _, ident := range info.IndustryIdentifiers {
			switch ident.Type {
			case "ISBN_10":
				rec.ISBN10 = nonEmpty(ident.Identifier)
			case "ISBN_13":
				rec.ISBN13 = nonEmpty(ident.Identifier)
			}
		}
	}

	if sale := volume.SaleInfo; sale != nil {
		// Prefer the list price, fall back to the retail price.
		if sale.ListPrice != nil && sale.ListPrice.Amount > 0 {
			amount := sale.ListPrice.Amount
			rec.PriceAmount = &amount
			rec.PriceCurrency = nonEmpty(sale.ListPrice.CurrencyCode)
		} else if sale.RetailPrice != nil && sale.RetailPrice.Amount > 0 {
			amount := sale.RetailPrice.Amount
			rec.PriceAmount = &amount
			rec.PriceCurrency = nonEmpty(sale.RetailPrice.CurrencyCode)
		}
	}

	return rec
}

func nonEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
