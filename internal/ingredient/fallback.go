package ingredient

import (
	"regexp"
	"strings"

	"recipekit/internal/domain"
)

const (
	// FallbackConfidence is assigned to every regex-guessed decomposition.
	FallbackConfidence = 0.5
	// ManualConfidence is assigned to user-authored decompositions.
	ManualConfidence = 1.0
)

var (
	leadingFormatRe = regexp.MustCompile(`^\s*(?:[-*•·]+\s*|\*{1,2}|_{1,2})`)
	emphasisRe      = regexp.MustCompile(`\*{1,2}|_{2}`)
	lineRe          = regexp.MustCompile(`(?i)^(` + QuantityPattern + `)\s*(?:(` + UnitPattern() + `)\.?(?:\s+|$))?(?:(?:of|with)\s+)?([^,]+?)\s*(?:,\s*(.*))?$`)
	unitTokenRe     = regexp.MustCompile(`(?i)(?:^|\s)(` + UnitPattern() + `)\.?(?:\s|$)`)
	leadingQtyRe    = regexp.MustCompile(`^(` + QuantityPattern + `)\s*`)
	prepositionRe   = regexp.MustCompile(`(?i)^(?:of|with)\s+`)
)

// NormalizeLine strips list markers and emphasis, rewrites unicode
// fractions and collapses whitespace.
func NormalizeLine(line string) string {
	s := NormalizeFractions(line)
	s = leadingFormatRe.ReplaceAllString(s, "")
	s = emphasisRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// ParseFallback decomposes a line with fixed patterns. The result always has
// ParsingMethod manual, Confidence 0.5 and RequiresManualReview set.
func ParseFallback(line string) domain.ParsedIngredient {
	quantity, unit, name, notes := splitLine(NormalizeLine(line))
	if strings.TrimSpace(name) == "" {
		name = strings.TrimSpace(line)
	}
	out := domain.ParsedIngredient{
		OriginalText:         line,
		Quantity:             domain.StringPtr(quantity),
		Unit:                 domain.StringPtr(unit),
		IngredientName:       name,
		PreparationNotes:     domain.StringPtr(notes),
		Confidence:           FallbackConfidence,
		RequiresManualReview: true,
		ParsingMethod:        domain.ParsingMethodManual,
	}
	setMetric(&out)
	return out
}

// splitLine returns the quantity, canonical unit, name and notes of a
// normalized line. It tries, in order: quantity with optional unit, a unit
// token anywhere in the line, and finally the whole line with unit "each".
func splitLine(s string) (quantity, unit, name, notes string) {
	if s == "" {
		return "", "", "", ""
	}
	if m := lineRe.FindStringSubmatch(s); m != nil {
		quantity = strings.Join(strings.Fields(m[1]), " ")
		if m[2] != "" {
			unit, _ = NormalizeUnit(m[2])
		}
		return quantity, unit, strings.TrimSpace(m[3]), strings.TrimSpace(m[4])
	}

	body, notes := cutNotes(s)
	if m := leadingQtyRe.FindStringSubmatch(body); m != nil {
		quantity = strings.Join(strings.Fields(m[1]), " ")
		body = body[len(m[0]):]
	}
	if loc := unitTokenRe.FindStringSubmatchIndex(body); loc != nil {
		unit, _ = NormalizeUnit(body[loc[2]:loc[3]])
		before := strings.TrimSpace(body[:loc[0]])
		after := strings.TrimSpace(prepositionRe.ReplaceAllString(strings.TrimSpace(body[loc[1]:]), ""))
		switch {
		case after != "":
			name = after
		case before != "":
			name = before
		}
		if name != "" {
			return quantity, unit, name, notes
		}
	}
	if quantity != "" && strings.TrimSpace(body) != "" {
		return quantity, "", strings.TrimSpace(body), notes
	}
	head, _ := cutNotes(s)
	return "", UnitEach, head, notes
}

func cutNotes(s string) (string, string) {
	before, after, found := strings.Cut(s, ",")
	if !found {
		return s, ""
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}

// CreateManual builds a decomposition authored by the user. It is trusted:
// confidence 1.0 and no manual review.
func CreateManual(original, quantity, unit, name, notes string) domain.ParsedIngredient {
	if unit != "" {
		unit, _ = NormalizeUnit(unit)
	}
	out := domain.ParsedIngredient{
		OriginalText:     original,
		Quantity:         domain.StringPtr(strings.TrimSpace(quantity)),
		Unit:             domain.StringPtr(unit),
		IngredientName:   strings.TrimSpace(name),
		PreparationNotes: domain.StringPtr(strings.TrimSpace(notes)),
		Confidence:       ManualConfidence,
		ParsingMethod:    domain.ParsingMethodManual,
	}
	setMetric(&out)
	return out
}

func setMetric(p *domain.ParsedIngredient) {
	if p.Quantity == nil || p.Unit == nil {
		return
	}
	q, u := MetricEquivalent(*p.Quantity, *p.Unit)
	if q != "" && u != "" {
		p.MetricQuantity = &q
		p.MetricUnit = &u
	}
}
