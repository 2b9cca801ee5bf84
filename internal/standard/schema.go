package standard

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/Skade2050/Proyecto-UT1-SBD-RA1/internal/models"
)

// columnDescriptions documents the dim_book columns for schema.md.
var columnDescriptions = map[string]string{
	"book_id":                 "Canonical unique book identifier (valid ISBN-13, or a derived stable hash).",
	"titulo":                  "Display title with original casing.",
	"titulo_normalizado":      "Title lowercased and whitespace-collapsed, as used for keying.",
	"autor_principal":         "Primary (first) author.",
	"autores":                 "Full author list, unioned across sources, order-preserving and de-duplicated.",
	"editorial":               "Publisher.",
	"anio_publicacion":        "Publication year.",
	"fecha_publicacion":       "Publication date in ISO-8601 (YYYY-MM-DD); null when only the year is known.",
	"idioma":                  "Language as a BCP-47-like tag (e.g. en-EN, pt-BR).",
	"isbn10":                  "ISBN-10, kept as text; null when the check digit fails.",
	"isbn13":                  "ISBN-13, kept as text; null when the check digit fails.",
	"paginas":                 "Page count.",
	"formato":                 "Binding/format (hardcover, paperback, ebook, ...) when a source reports it.",
	"categorias":              "Merged category list across sources.",
	"precio":                  "List price when a source reports one.",
	"moneda":                  "Price currency as an ISO-4217 code.",
	"rating":                  "Average Goodreads rating.",
	"ratings_count":           "Number of Goodreads ratings.",
	"fuente_ganadora":         "Highest-priority source that contributed at least one field to this row.",
	"ts_ultima_actualizacion": "UTC timestamp of the run that produced this row.",
}

// WriteSchemaMD documents the dim_book table, one row per column, derived
// from the CanonicalBook struct so the doc cannot drift from the code.
func WriteSchemaMD(path string) error {
	var b strings.Builder
	b.WriteString("# dim_book schema\n\n")
	b.WriteString("Canonical book table, one row per book, after integrating all sources.\n\n")
	b.WriteString("| Column | Type | Description |\n")
	b.WriteString("|--------|------|-------------|\n")

	t := reflect.TypeOf(models.CanonicalBook{})
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("parquet")
		name := strings.SplitN(tag, ",", 2)[0]
		if name == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("| `%s` | `%s` | %s |\n", name, goTypeName(field.Type), columnDescriptions[name]))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create docs directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func goTypeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Pointer:
		return t.Elem().String() + " (nullable)"
	case reflect.Slice:
		return "list<" + t.Elem().String() + ">"
	default:
		return t.String()
	}
}
