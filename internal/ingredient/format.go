package ingredient

import (
	"strings"

	"recipekit/internal/domain"
)

// FormatOptions controls Format output.
type FormatOptions struct {
	IncludeMetric bool
}

// Format renders a decomposition back into an ingredient line. Without metric
// output, ParseFallback(Format(p)) reproduces p's quantity, unit and name.
func Format(p domain.ParsedIngredient, opts FormatOptions) string {
	var parts []string
	amount := 1.0
	if p.Quantity != nil && *p.Quantity != "" {
		parts = append(parts, *p.Quantity)
		if q, ok := ParseQuantity(*p.Quantity); ok {
			amount = q.Value()
		}
	}
	if p.Unit != nil && *p.Unit != "" {
		parts = append(parts, DisplayUnit(*p.Unit, amount))
	}
	parts = append(parts, p.IngredientName)
	line := strings.Join(parts, " ")

	if opts.IncludeMetric && p.MetricQuantity != nil && p.MetricUnit != nil {
		line += " (" + *p.MetricQuantity + " " + *p.MetricUnit + ")"
	}
	if p.PreparationNotes != nil && *p.PreparationNotes != "" {
		line += ", " + *p.PreparationNotes
	}
	return line
}

// IsWellFormed reports whether p satisfies the decomposition invariants.
func IsWellFormed(p domain.ParsedIngredient) bool {
	if strings.TrimSpace(p.OriginalText) == "" {
		return false
	}
	if len([]rune(strings.TrimSpace(p.IngredientName))) < 2 {
		return false
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return false
	}
	return (p.MetricQuantity == nil) == (p.MetricUnit == nil)
}
