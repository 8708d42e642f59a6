package ingredient

import (
	"strings"

	"github.com/cockroachdb/errors"

	"recipekit/internal/domain"
)

// FromDecomposition converts an external decomposition of original into a
// ParsedIngredient. Units are normalized, a half-present metric pair is
// dropped and RequiresManualReview is set below threshold.
func FromDecomposition(original string, raw domain.RawDecomposition, threshold float64) (domain.ParsedIngredient, error) {
	if raw.Confidence < 0 || raw.Confidence > 1 {
		return domain.ParsedIngredient{}, errors.Newf("confidence %v out of range [0,1]", raw.Confidence)
	}
	name := strings.TrimSpace(raw.IngredientName)
	if name == "" {
		return domain.ParsedIngredient{}, errors.New("decomposition has no ingredient name")
	}

	out := domain.ParsedIngredient{
		OriginalText:         original,
		Quantity:             trimmed(raw.Quantity),
		IngredientName:       name,
		PreparationNotes:     trimmed(raw.PreparationNotes),
		Confidence:           raw.Confidence,
		RequiresManualReview: raw.Confidence < threshold,
		ParsingMethod:        domain.ParsingMethodAI,
	}
	if u := trimmed(raw.Unit); u != nil {
		canonical, _ := NormalizeUnit(*u)
		out.Unit = domain.StringPtr(canonical)
	}
	mq, mu := trimmed(raw.MetricQuantity), trimmed(raw.MetricUnit)
	if mq != nil && mu != nil {
		out.MetricQuantity, out.MetricUnit = mq, mu
	} else {
		setMetric(&out)
	}
	return out, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	return domain.StringPtr(strings.TrimSpace(*s))
}
