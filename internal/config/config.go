// Package config holds pipeline settings loaded from an optional YAML
// file, with environment variables for secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the full pipeline configuration.
type Config struct {
	Scrape struct {
		Query    string `yaml:"query"`
		MaxBooks int    `yaml:"max_books"`
		MaxPages int    `yaml:"max_pages"`
	} `yaml:"scrape"`

	Paths struct {
		Landing  string `yaml:"landing"`
		Standard string `yaml:"standard"`
		Docs     string `yaml:"docs"`
	} `yaml:"paths"`

	GoogleBooks struct {
		// Name of the environment variable holding the API key. The
		// key itself never lives in the config file.
		APIKeyEnv string `yaml:"api_key_env"`
	} `yaml:"google_books"`
}

// Default returns the configuration used when no config file overrides it.
func Default() Config {
	var c Config
	c.Scrape.Query = "data science"
	c.Scrape.MaxBooks = 12
	c.Scrape.MaxPages = 5
	c.Paths.Landing = "landing"
	c.Paths.Standard = "standard"
	c.Paths.Docs = "docs"
	c.GoogleBooks.APIKeyEnv = "GOOGLE_BOOKS_API_KEY"
	return c
}

// Load reads path over the defaults. A missing file is not an error: the
// defaults apply.
func Load(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return c, nil
}

// APIKey resolves the Google Books API key from the environment; empty
// means unauthenticated access.
func (c Config) APIKey() string {
	return os.Getenv(c.GoogleBooks.APIKeyEnv)
}

func (c Config) GoodreadsJSON() string  { return filepath.Join(c.Paths.Landing, "goodreads_books.json") }
func (c Config) GoogleBooksCSV() string { return filepath.Join(c.Paths.Landing, "googlebooks_books.csv") }
func (c Config) DimBookParquet() string { return filepath.Join(c.Paths.Standard, "dim_book.parquet") }
func (c Config) DetailParquet() string {
	return filepath.Join(c.Paths.Standard, "book_source_detail.parquet")
}
func (c Config) MetricsJSON() string { return filepath.Join(c.Paths.Docs, "quality_metrics.json") }
func (c Config) SchemaMD() string    { return filepath.Join(c.Paths.Docs, "schema.md") }
