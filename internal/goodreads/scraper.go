// Package goodreads scrapes book pages from the Goodreads website into
// landing records. Selector breakage surfaces as null fields, not errors;
// the integration engine downstream treats whatever was captured as valid
// input.
package goodreads

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const baseURL = "https://www.goodreads.com"

// userAgent mimics a desktop browser; Goodreads serves a degraded page to
// obvious scripts.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Book is one scraped Goodreads record as stored in the landing JSON.
// Pointer fields stay null when the page did not expose the value.
type Book struct {
	Source             string   `json:"source"`
	BookIDSource       string   `json:"book_id_source"`
	URL                string   `json:"url"`
	Title              *string  `json:"title"`
	Authors            *string  `json:"authors"`
	RatingValue        *float64 `json:"rating_value"`
	RatingsCount       *int     `json:"ratings_count"`
	Pages              *int     `json:"pages"`
	Format             *string  `json:"format"`
	PublicationInfoRaw *string  `json:"publication_info_raw"`
	ISBN10             *string  `json:"isbn10"`
	ISBN13             *string  `json:"isbn13"`
	SearchQuery        string   `json:"search_query"`
	ScrapedAt          string   `json:"scraped_at"`
}

// Scraper fetches and parses Goodreads search and book pages.
type Scraper struct {
	httpClient *http.Client
	pause      time.Duration
}

// NewScraper creates a scraper with a conservative request pause so we do
// not hammer Goodreads.
func NewScraper() *Scraper {
	return &Scraper{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		pause:      time.Second,
	}
}

var bookHrefRe = regexp.MustCompile(`/book/show/(\d+)`)

// SearchBookIDs walks the search result pages for query and collects up
// to maxBooks distinct book IDs.
func (s *Scraper) SearchBookIDs(query string, maxBooks, maxPages int) ([]string, error) {
	slog.Info("Searching Goodreads", "query", query, "max_books", maxBooks)

	var ids []string
	seen := make(map[string]bool)

	for page := 1; page <= maxPages && len(ids) < maxBooks; page++ {
		searchURL := fmt.Sprintf("%s/search?page=%d&q=%s", baseURL, page, url.QueryEscape(query))
		doc, err := s.fetchDocument(searchURL)
		if err != nil {
			slog.Warn("Could not fetch search page, stopping", "page", page, "err", err)
			break
		}

		rows := doc.Find("table.tableList tr")
		if rows.Length() == 0 {
			slog.Debug("No more search results", "page", page)
			break
		}

		rows.Each(func(_ int, row *goquery.Selection) {
			if len(ids) >= maxBooks {
				return
			}
			href, _ := row.Find("a.bookTitle").Attr("href")
			m := bookHrefRe.FindStringSubmatch(href)
			if m == nil || seen[m[1]] {
				return
			}
			seen[m[1]] = true
			ids = append(ids, m[1])
			slog.Debug("Found book", "id", m[1])
		})

		time.Sleep(s.pause / 2)
	}

	slog.Info("Search finished", "ids", len(ids))
	return ids, nil
}

// ScrapeBooks fetches and parses each book page. Pages that fail to
// download are skipped; whatever was scraped successfully is returned.
func (s *Scraper) ScrapeBooks(ids []string, query string) []Book {
	books := make([]Book, 0, len(ids))
	for i, id := range ids {
		slog.Info("Scraping book", "id", id, "progress", fmt.Sprintf("%d/%d", i+1, len(ids)))

		bookURL := fmt.Sprintf("%s/book/show/%s", baseURL, id)
		doc, err := s.fetchDocument(bookURL)
		if err != nil {
			slog.Warn("Skipping book after download error", "id", id, "err", err)
			continue
		}

		book := ParseBook(doc, id)
		book.URL = bookURL
		book.SearchQuery = query
		book.ScrapedAt = time.Now().UTC().Format(time.RFC3339)
		books = append(books, book)

		time.Sleep(s.pause)
	}
	slog.Info("Scraping finished", "books", len(books))
	return books
}

func (s *Scraper) fetchDocument(rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s returned status %d", rawURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", rawURL, err)
	}
	return doc, nil
}

var (
	isbn13Re = regexp.MustCompile(`\b\d{13}\b`)
	isbn10Re = regexp.MustCompile(`\b\d{10}\b`)
)

// ParseBook extracts the book fields from a Goodreads book page.
func ParseBook(doc *goquery.Document, id string) Book {
	book := Book{
		Source:       "goodreads",
		BookIDSource: id,
	}

	if title := text(doc.Find("h1[data-testid='bookTitle']")); title != "" {
		book.Title = &title
	}

	var authors []string
	doc.Find("span[data-testid='authorName'] a").Each(func(_ int, a *goquery.Selection) {
		if name := text(a); name != "" {
			authors = append(authors, name)
		}
	})
	if len(authors) > 0 {
		joined := strings.Join(authors, ", ")
		book.Authors = &joined
	}

	if v := text(doc.Find("div[data-testid='rating'] span[data-testid='ratingValue']")); v != "" {
		if rating, err := strconv.ParseFloat(v, 64); err == nil {
			book.RatingValue = &rating
		}
	}

	if v := text(doc.Find("div[data-testid='rating'] span[data-testid='ratingsCount']")); v != "" {
		fields := strings.Fields(strings.ReplaceAll(v, ",", ""))
		if len(fields) > 0 {
			if n, err := strconv.Atoi(fields[0]); err == nil {
				book.RatingsCount = &n
			}
		}
	}

	// "320 pages, Hardcover"
	if v := text(doc.Find("p[data-testid='pagesFormat']")); v != "" {
		for _, token := range strings.Fields(v) {
			if n, err := strconv.Atoi(token); err == nil {
				book.Pages = &n
				break
			}
		}
		if i := strings.LastIndex(v, ","); i >= 0 {
			if format := strings.TrimSpace(v[i+1:]); format != "" {
				book.Format = &format
			}
		}
	}

	if v := text(doc.Find("p[data-testid='publicationInfo']")); v != "" {
		book.PublicationInfoRaw = &v
	}

	// ISBNs are not in a stable element, so scan the page text.
	pageText := doc.Text()
	if m := isbn13Re.FindString(pageText); m != "" {
		book.ISBN13 = &m
	}
	if m := isbn10Re.FindString(pageText); m != "" {
		book.ISBN10 = &m
	}

	return book
}

func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.First().Text())
}
