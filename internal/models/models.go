package models

// Source identifies which collaborator produced a raw record.
type Source string

const (
	SourceGoodreads   Source = "goodreads"
	SourceGoogleBooks Source = "google_books"
)

// Priority returns the survivorship rank of the source (higher wins).
// Google Books carries richer bibliographic data, so it outranks the
// scraped Goodreads records.
func (s Source) Priority() int {
	switch s {
	case SourceGoogleBooks:
		return 2
	case SourceGoodreads:
		return 1
	default:
		return 0
	}
}

// RawRecord is one book observation from one source, mapped to the common
// field set. Fields a source does not provide stay nil; the loader never
// fabricates values. The normalizer and key builder fill the derived
// fields on a copy; a RawRecord is never mutated after ingestion.
type RawRecord struct {
	Source     Source
	SourceID   *string
	SourceFile string
	RowNumber  int

	Title         *string
	PrimaryAuthor *string
	Authors       []string
	Publisher     *string
	PubDateRaw    *string
	Pages         *int
	LanguageRaw   *string
	ISBN10        *string
	ISBN13        *string
	Format        *string
	Categories    []string
	Price         *float64
	Currency      *string
	Rating        *float64
	RatingsCount  *int
	DetailURL     *string

	// Derived by the normalizer.
	TitleNormalized string
	Language        *string
	PubDate         *string // ISO-8601 YYYY-MM-DD
	PubYear         *int
	ValidISBN13     bool
	ValidPubDate    bool
	ValidLanguage   bool
	ValidCurrency   bool

	// Derived by the key builder.
	CandidateKey string
}

// CanonicalBook is one row of dim_book: one physical/edition-level book
// after deduplication and survivorship merging across sources.
type CanonicalBook struct {
	BookID          string   `json:"book_id" parquet:"book_id"`
	Title           *string  `json:"titulo" parquet:"titulo,optional"`
	TitleNormalized string   `json:"titulo_normalizado" parquet:"titulo_normalizado"`
	PrimaryAuthor   *string  `json:"autor_principal" parquet:"autor_principal,optional"`
	Authors         []string `json:"autores" parquet:"autores,list"`
	Publisher       *string  `json:"editorial" parquet:"editorial,optional"`
	PubYear         *int     `json:"anio_publicacion" parquet:"anio_publicacion,optional"`
	PubDate         *string  `json:"fecha_publicacion" parquet:"fecha_publicacion,optional"`
	Language        *string  `json:"idioma" parquet:"idioma,optional"`
	ISBN10          *string  `json:"isbn10" parquet:"isbn10,optional"`
	ISBN13          *string  `json:"isbn13" parquet:"isbn13,optional"`
	Pages           *int     `json:"paginas" parquet:"paginas,optional"`
	Format          *string  `json:"formato" parquet:"formato,optional"`
	Categories      []string `json:"categorias" parquet:"categorias,list"`
	Price           *float64 `json:"precio" parquet:"precio,optional"`
	Currency        *string  `json:"moneda" parquet:"moneda,optional"`
	Rating          *float64 `json:"rating" parquet:"rating,optional"`
	RatingsCount    *int     `json:"ratings_count" parquet:"ratings_count,optional"`
	WinningSource   string   `json:"fuente_ganadora" parquet:"fuente_ganadora"`
	UpdatedAt       string   `json:"ts_ultima_actualizacion" parquet:"ts_ultima_actualizacion"`
}

// ProvenanceDetail is one row of book_source_detail: every raw record that
// entered a group, linked to the canonical book it was folded into.
// Rows are append-only within a run and replaced wholesale by the next run.
type ProvenanceDetail struct {
	BookID       string  `json:"book_id" parquet:"book_id"`
	CandidateKey string  `json:"book_id_candidato" parquet:"book_id_candidato"`
	Source       string  `json:"source" parquet:"source"`
	SourceID     *string `json:"source_id" parquet:"source_id,optional"`
	SourceFile   string  `json:"source_file" parquet:"source_file"`
	RowNumber    int     `json:"row_number" parquet:"row_number"`

	Title           *string  `json:"titulo" parquet:"titulo,optional"`
	TitleNormalized string   `json:"titulo_normalizado" parquet:"titulo_normalizado"`
	PrimaryAuthor   *string  `json:"autor_principal" parquet:"autor_principal,optional"`
	Authors         []string `json:"autores" parquet:"autores,list"`
	Publisher       *string  `json:"editorial" parquet:"editorial,optional"`
	PubDateRaw      *string  `json:"fecha_publicacion_raw" parquet:"fecha_publicacion_raw,optional"`
	PubDate         *string  `json:"fecha_publicacion" parquet:"fecha_publicacion,optional"`
	LanguageRaw     *string  `json:"idioma_raw" parquet:"idioma_raw,optional"`
	Language        *string  `json:"idioma" parquet:"idioma,optional"`
	ISBN10          *string  `json:"isbn10" parquet:"isbn10,optional"`
	ISBN13          *string  `json:"isbn13" parquet:"isbn13,optional"`
	Categories      []string `json:"categorias" parquet:"categorias,list"`
	Price           *float64 `json:"precio" parquet:"precio,optional"`
	Currency        *string  `json:"moneda" parquet:"moneda,optional"`
	Rating          *float64 `json:"rating" parquet:"rating,optional"`
	RatingsCount    *int     `json:"ratings_count" parquet:"ratings_count,optional"`

	ValidISBN13   bool `json:"valid_isbn13" parquet:"valid_isbn13"`
	ValidPubDate  bool `json:"valid_fecha_publicacion" parquet:"valid_fecha_publicacion"`
	ValidLanguage bool `json:"valid_idioma" parquet:"valid_idioma"`
	ValidCurrency bool `json:"valid_moneda" parquet:"valid_moneda"`

	// Winner marks the record that contributed at least one surviving
	// field value to the canonical row.
	Winner     bool   `json:"es_ganador" parquet:"es_ganador"`
	IngestedAt string `json:"ts_ingesta" parquet:"ts_ingesta"`
}

// QualityMetrics aggregates data-quality counters for a single run.
// Recomputed from scratch each run, never patched incrementally.
type QualityMetrics struct {
	TotalRecords     int `json:"total_registros"`
	TotalGoodreads   int `json:"total_goodreads"`
	TotalGoogleBooks int `json:"total_google_books"`
	TotalBooks       int `json:"total_libros"`

	PctValidISBN13   float64 `json:"porcentaje_valid_isbn13"`
	PctValidPubDate  float64 `json:"porcentaje_valid_fecha_publicacion"`
	PctValidLanguage float64 `json:"porcentaje_valid_idioma"`
	PctValidCurrency float64 `json:"porcentaje_valid_moneda"`

	DuplicateCandidateKeys int `json:"claves_candidatas_duplicadas"`
	SuspectedCollisions    int `json:"colisiones_sospechosas"`
}
