package scaling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipekit/internal/domain"
	"recipekit/internal/ingredient"
	"recipekit/internal/scaling"
)

func TestScaleIngredient(t *testing.T) {
	tests := []struct {
		line    string
		m       float64
		display string
		scaled  *float64
	}{
		{"2 cups flour", 2, "4", ptrF(4)},
		{"1 1/2 cups milk", 0.5, "3/4", ptrF(0.75)},
		{"2-3 cloves garlic", 2, "4-6", ptrF(5)},
		{"1 egg", 0.3333, "1/3", ptrF(0.33)},
		{"1 cup oats", 0.4, "0.4", ptrF(0.4)},
		{"salt to taste", 2, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			p := ingredient.ParseFallback(tt.line)
			s := scaling.ScaleIngredient(p, tt.m)
			assert.Equal(t, tt.display, s.DisplayQuantity)
			assert.Equal(t, tt.scaled, s.ScaledQuantity)
			assert.Equal(t, p, s.Original, "original is never modified")
		})
	}
}

func TestFormatScaled(t *testing.T) {
	s := scaling.ScaleIngredient(ingredient.ParseFallback("1 cup sugar, sifted"), 2)
	assert.Equal(t, "2 cups sugar (480 ml), sifted", scaling.FormatScaled(s, true))
	assert.Equal(t, "2 cups sugar, sifted", scaling.FormatScaled(s, false))
}

func TestScaleRecipe(t *testing.T) {
	lines := []string{"2 cups flour", "3 eggs", "1 tsp salt"}
	parsed := make([]domain.ParsedIngredient, len(lines))
	for i, l := range lines {
		parsed[i] = ingredient.ParseFallback(l)
	}
	draft := &domain.RecipeDraft{
		Name:               "Bread",
		RecipeYield:        "6-8 servings",
		RecipeIngredient:   lines,
		ParsedIngredients:  parsed,
		RecipeInstructions: []string{"Add 2 cups flour to the bowl", "Whisk 3 eggs", "Season with 1 tsp salt"},
	}

	out, err := scaling.ScaleRecipe(draft, 14, scaling.Options{})
	require.NoError(t, err)
	assert.Equal(t, 7.0, out.OriginalYield)
	assert.Equal(t, 2.0, out.Multiplier)
	require.Len(t, out.Ingredients, 3)
	assert.Equal(t, "4", out.Ingredients[0].DisplayQuantity)
	assert.Equal(t, "6", out.Ingredients[1].DisplayQuantity)
	assert.Equal(t, "Add 4 cups flour to the bowl", out.Instructions[0].Scaled)
	assert.Equal(t, "Whisk 6 eggs", out.Instructions[1].Scaled)
	assert.False(t, out.Instructions[2].WasScaled)
	assert.Empty(t, out.Warnings)

	assert.Equal(t, parsed, scaling.Originals(out.Ingredients))
	assert.Equal(t, "2 cups flour", draft.RecipeInstructions[0][4:16], "draft untouched")
}

func TestScaleRecipe_UnparsedDraftUsesFallback(t *testing.T) {
	draft := &domain.RecipeDraft{Name: "Eggs", RecipeYield: "2", RecipeIngredient: []string{"2 eggs"}}
	out, err := scaling.ScaleRecipe(draft, 1, scaling.Options{})
	require.NoError(t, err)
	assert.Equal(t, "1", out.Ingredients[0].DisplayQuantity)
	assert.Contains(t, out.Warnings[0], "fallback parser")
}

func TestScaleRecipe_RejectsYield(t *testing.T) {
	draft := &domain.RecipeDraft{Name: "Soup", RecipeYield: "4 servings"}

	_, err := scaling.ScaleRecipe(draft, 100, scaling.Options{})
	var yerr *scaling.YieldError
	require.ErrorAs(t, err, &yerr)
	assert.Equal(t, scaling.YieldAboveMaximum, yerr.Type)
	assert.ErrorIs(t, err, domain.ErrInvalidYield)

	_, err = scaling.ScaleRecipe(nil, 4, scaling.Options{})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func ptrF(v float64) *float64 { return &v }
