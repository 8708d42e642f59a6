package decomposer

import (
	"context"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"recipekit/internal/domain"
	"recipekit/internal/logger"
	"recipekit/internal/port"
)

// MergeDecomposer runs two decomposers in parallel and merges results line by line.
type MergeDecomposer struct {
	primary   port.IngredientDecomposer
	secondary port.IngredientDecomposer
	log       *logger.Logger
}

// NewMergeDecomposer creates a MergeDecomposer from primary and secondary decomposers.
func NewMergeDecomposer(primary, secondary port.IngredientDecomposer, log *logger.Logger) *MergeDecomposer {
	return &MergeDecomposer{
		primary:   primary,
		secondary: secondary,
		log:       logger.OrNop(log).With("component", "decomposer.merge"),
	}
}

func (m *MergeDecomposer) Decompose(ctx context.Context, lines []string) ([]domain.RawDecomposition, error) {
	type result struct {
		out []domain.RawDecomposition
		err error
	}

	var wg sync.WaitGroup
	var pResult, sResult result

	wg.Add(2)
	go func() {
		defer wg.Done()
		out, err := m.primary.Decompose(ctx, lines)
		pResult = result{out, err}
	}()
	go func() {
		defer wg.Done()
		out, err := m.secondary.Decompose(ctx, lines)
		sResult = result{out, err}
	}()
	wg.Wait()

	if pResult.err == nil && len(pResult.out) != len(lines) {
		pResult.err = errors.Wrap(domain.ErrDecompositionMismatch, "primary")
	}
	if sResult.err == nil && len(sResult.out) != len(lines) {
		sResult.err = errors.Wrap(domain.ErrDecompositionMismatch, "secondary")
	}

	// Both failed
	if pResult.err != nil && sResult.err != nil {
		return nil, errors.Newf("both decomposers failed: primary: %v; secondary: %v", pResult.err, sResult.err)
	}

	// Only secondary succeeded
	if pResult.err != nil {
		m.log.Warn("primary decomposer failed, using secondary only", "error", pResult.err)
		return sResult.out, nil
	}

	// Only primary succeeded
	if sResult.err != nil {
		m.log.Warn("secondary decomposer failed, using primary only", "error", sResult.err)
		return pResult.out, nil
	}

	merged := make([]domain.RawDecomposition, len(lines))
	for i := range lines {
		merged[i] = mergeLine(pResult.out[i], sResult.out[i])
	}
	return merged, nil
}

// mergeLine keeps the primary decomposition, filling its gaps from the
// secondary. Agreement on the name boosts confidence; disagreement reduces it.
func mergeLine(p, s domain.RawDecomposition) domain.RawDecomposition {
	out := p
	if strings.TrimSpace(out.IngredientName) == "" && strings.TrimSpace(s.IngredientName) != "" {
		out.IngredientName = s.IngredientName
		out.Confidence = s.Confidence
	}
	out.Quantity = fill(out.Quantity, s.Quantity)
	out.Unit = fill(out.Unit, s.Unit)
	out.PreparationNotes = fill(out.PreparationNotes, s.PreparationNotes)
	if out.MetricQuantity == nil && out.MetricUnit == nil {
		out.MetricQuantity, out.MetricUnit = s.MetricQuantity, s.MetricUnit
	}

	if agrees(p, s) {
		// Agreement: boost confidence
		if out.Confidence < 1.0 {
			boosted := out.Confidence + (1.0-out.Confidence)*0.2
			if boosted > 1.0 {
				boosted = 1.0
			}
			out.Confidence = boosted
		}
		return out
	}
	if strings.TrimSpace(p.IngredientName) != "" && strings.TrimSpace(s.IngredientName) != "" {
		// Both answered but disagree, keep primary with reduced confidence
		out.Confidence *= 0.6
	}
	return out
}

func agrees(p, s domain.RawDecomposition) bool {
	return strings.EqualFold(strings.TrimSpace(p.IngredientName), strings.TrimSpace(s.IngredientName)) &&
		strings.TrimSpace(p.IngredientName) != "" &&
		sameValue(p.Quantity, s.Quantity) &&
		sameValue(p.Unit, s.Unit)
}

func sameValue(a, b *string) bool {
	return strings.EqualFold(strings.TrimSpace(domain.Deref(a)), strings.TrimSpace(domain.Deref(b)))
}

func fill(p, s *string) *string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return s
	}
	return p
}
