package ingredient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recipekit/internal/ingredient"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in      string
		value   float64
		isRange bool
		ok      bool
	}{
		{"2", 2, false, true},
		{"1.5", 1.5, false, true},
		{"1/2", 0.5, false, true},
		{"1 1/2", 1.5, false, true},
		{"1½", 1.5, false, true},
		{"¾", 0.75, false, true},
		{"2-4", 3, true, true},
		{"2 to 3", 2.5, true, true},
		{"1/0", 0, false, false},
		{"some", 0, false, false},
		{"", 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			q, ok := ingredient.ParseQuantity(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.value, q.Value(), 1e-9)
				assert.Equal(t, tt.isRange, q.IsRange)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2, "2"},
		{0.5, "1/2"},
		{1.5, "1 1/2"},
		{0.333, "1/3"},
		{2.667, "2 2/3"},
		{0.75, "3/4"},
		{1.23, "1.23"},
		{2.999, "3"},
		{0, "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ingredient.FormatAmount(tt.in), "%v", tt.in)
	}
}

func TestQuantity_ScaleAndString(t *testing.T) {
	q, _ := ingredient.ParseQuantity("2-3")
	assert.Equal(t, "4-6", q.Scale(2).String())
}

func TestUnits(t *testing.T) {
	u, ok := ingredient.NormalizeUnit("Tbsp.")
	assert.True(t, ok)
	assert.Equal(t, "tablespoon", u)

	u, ok = ingredient.NormalizeUnit("fl  oz")
	assert.True(t, ok)
	assert.Equal(t, "fluid ounce", u)

	u, ok = ingredient.NormalizeUnit("Handfulz")
	assert.False(t, ok)
	assert.Equal(t, "handfulz", u)

	assert.Equal(t, "cups", ingredient.DisplayUnit("cup", 2))
	assert.Equal(t, "cup", ingredient.DisplayUnit("cups", 1))
	assert.Equal(t, "pinches", ingredient.DisplayUnit("pinch", 0.5))
	assert.Equal(t, "widget", ingredient.DisplayUnit("widget", 2))

	q, unit := ingredient.MetricEquivalent("1/2", "cup")
	assert.Equal(t, "120", q)
	assert.Equal(t, "ml", unit)

	q, unit = ingredient.MetricEquivalent("1", "tsp")
	assert.Equal(t, "5", q)
	assert.Equal(t, "ml", unit)

	q, unit = ingredient.MetricEquivalent("2", "clove")
	assert.Empty(t, q)
	assert.Empty(t, unit)
}
