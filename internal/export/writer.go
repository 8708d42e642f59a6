// Package export renders scaled ingredient lists as shopping-list files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"recipekit/internal/domain"
	"recipekit/internal/ingredient"
)

// BOM is the UTF-8 byte-order mark written before CSV output for Excel on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns is the header row shared by the CSV and XLSX exports.
var Columns = []string{
	"Ingredient",
	"Quantity",
	"Unit",
	"Preparation",
	"Metric Quantity",
	"Metric Unit",
	"Original Line",
	"Needs Review",
}

// Writer wraps csv.Writer for exporting scaled ingredients as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteIngredients writes one row per scaled ingredient.
func (w *Writer) WriteIngredients(items []domain.ScaledIngredient) error {
	for i := range items {
		if err := w.csv.Write(Row(items[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes BOM, header and rows, then flushes.
func WriteCSV(out io.Writer, items []domain.ScaledIngredient) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteIngredients(items); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Row converts a scaled ingredient to a row matching Columns. The unit is
// pluralized for the scaled amount and the metric columns are recomputed.
func Row(s domain.ScaledIngredient) []string {
	row := make([]string, len(Columns))
	p := s.Original
	row[0] = p.IngredientName
	row[1] = s.DisplayQuantity
	if unit := domain.Deref(p.Unit); unit != "" {
		amount := 1.0
		if s.ScaledQuantity != nil {
			amount = *s.ScaledQuantity
		}
		row[2] = ingredient.DisplayUnit(unit, amount)
		row[4], row[5] = ingredient.MetricEquivalent(s.DisplayQuantity, unit)
	}
	row[3] = domain.Deref(p.PreparationNotes)
	row[6] = p.OriginalText
	row[7] = formatBool(p.RequiresManualReview)
	return row
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a recipe name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "recipe"
	}
	return s
}

// BuildFilename returns {sanitized_name}_shopping_{YYYY-MM-DD}.{ext}.
func BuildFilename(recipeName, ext string, now time.Time) string {
	return fmt.Sprintf("%s_shopping_%s.%s", SanitizeFilename(recipeName), now.Format("2006-01-02"), ext)
}
