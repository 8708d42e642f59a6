package scaling

import (
	"recipekit/internal/domain"
	"recipekit/internal/ingredient"
)

// ScaleIngredient derives a scaled view of p. The original is carried along
// unchanged. Quantities that do not parse keep their text and get a nil
// ScaledQuantity. Ranges scale at both ends.
func ScaleIngredient(p domain.ParsedIngredient, m float64) domain.ScaledIngredient {
	out := domain.ScaledIngredient{Original: p, DisplayQuantity: domain.Deref(p.Quantity)}
	q, ok := ingredient.ParseQuantity(domain.Deref(p.Quantity))
	if !ok {
		return out
	}
	v := q.Value()
	out.ScaledQuantity = ScaleQuantity(&v, m)
	if q.IsRange {
		scaled := q.Scale(m)
		scaled.Low, scaled.High = round2(scaled.Low), round2(scaled.High)
		out.DisplayQuantity = scaled.String()
	} else {
		out.DisplayQuantity = ingredient.FormatAmount(*out.ScaledQuantity)
	}
	return out
}

// ScaleIngredients scales every ingredient by m, preserving order.
func ScaleIngredients(list []domain.ParsedIngredient, m float64) []domain.ScaledIngredient {
	out := make([]domain.ScaledIngredient, len(list))
	for i, p := range list {
		out[i] = ScaleIngredient(p, m)
	}
	return out
}

// Originals returns the unscaled ingredients behind a scaled list.
func Originals(list []domain.ScaledIngredient) []domain.ParsedIngredient {
	out := make([]domain.ParsedIngredient, len(list))
	for i, s := range list {
		out[i] = s.Original
	}
	return out
}

// FormatScaled renders a scaled ingredient as a line, with the unit
// pluralized for the new amount and the metric equivalent recomputed.
func FormatScaled(s domain.ScaledIngredient, includeMetric bool) string {
	p := s.Original
	p.Quantity = domain.StringPtr(s.DisplayQuantity)
	p.MetricQuantity, p.MetricUnit = nil, nil
	if p.Quantity != nil && p.Unit != nil {
		if mq, mu := ingredient.MetricEquivalent(*p.Quantity, *p.Unit); mq != "" {
			p.MetricQuantity, p.MetricUnit = &mq, &mu
		}
	}
	return ingredient.Format(p, ingredient.FormatOptions{IncludeMetric: includeMetric})
}
