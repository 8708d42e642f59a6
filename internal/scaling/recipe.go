package scaling

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"recipekit/internal/domain"
	"recipekit/internal/ingredient"
)

// Options controls ScaleRecipe.
type Options struct {
	ScaleToTaste  bool
	MaxReferences int
}

// ScaledRecipe is a derived view of a draft at a new yield. The draft itself
// is never modified.
type ScaledRecipe struct {
	Name          string                    `json:"name"`
	OriginalYield float64                   `json:"originalYield"`
	TargetYield   float64                   `json:"targetYield"`
	Multiplier    float64                   `json:"multiplier"`
	Ingredients   []domain.ScaledIngredient `json:"ingredients"`
	Instructions  []ScaledInstruction       `json:"instructions"`
	Warnings      []string                  `json:"warnings"`
}

// ScaleRecipe scales draft to targetYield servings. The target must pass
// ValidateYield against the draft's own yield; a rejection is returned as a
// *YieldError. Drafts without parsed ingredients are parsed with the
// fallback parser first.
func ScaleRecipe(draft *domain.RecipeDraft, targetYield float64, opts Options) (*ScaledRecipe, error) {
	if draft == nil {
		return nil, errors.Wrap(domain.ErrInvalidRequest, "recipe is required")
	}
	original := ParseYield(draft.RecipeYield)
	if yerr := ValidateYield(targetYield, original); yerr != nil {
		return nil, yerr
	}
	m := CalculateMultiplier(targetYield, original)

	out := &ScaledRecipe{
		Name:          draft.Name,
		OriginalYield: original,
		TargetYield:   targetYield,
		Multiplier:    m,
		Warnings:      []string{},
	}

	parsed := draft.ParsedIngredients
	if len(parsed) != len(draft.RecipeIngredient) {
		parsed = make([]domain.ParsedIngredient, len(draft.RecipeIngredient))
		for i, line := range draft.RecipeIngredient {
			parsed[i] = ingredient.ParseFallback(line)
		}
		if len(parsed) > 0 {
			out.Warnings = append(out.Warnings, "ingredients were not parsed; quantities come from the fallback parser")
		}
	}
	out.Ingredients = ScaleIngredients(parsed, m)
	for _, si := range out.Ingredients {
		if si.ScaledQuantity == nil && si.Original.Quantity != nil {
			out.Warnings = append(out.Warnings, fmt.Sprintf("could not scale quantity %q of %s", *si.Original.Quantity, si.Original.IngredientName))
		}
	}

	out.Instructions = ScaleInstructions(draft.RecipeInstructions, out.Ingredients, InstructionOptions{
		ScaleToTaste:  opts.ScaleToTaste,
		MaxReferences: opts.MaxReferences,
	})
	for i, si := range out.Instructions {
		for _, w := range si.Warnings {
			out.Warnings = append(out.Warnings, fmt.Sprintf("step %d: %s", i+1, w))
		}
	}
	return out, nil
}
