package decomposer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"recipekit/internal/decomposer"
	"recipekit/internal/domain"
	"recipekit/mocks"
)

func ptr(s string) *string { return &s }

func TestMergeDecomposer_AgreementBoosts(t *testing.T) {
	p := new(mocks.MockIngredientDecomposer)
	s := new(mocks.MockIngredientDecomposer)
	p.On("Decompose", mock.Anything, lines).Return([]domain.RawDecomposition{
		{Quantity: ptr("2"), Unit: ptr("cup"), IngredientName: "flour", Confidence: 0.5},
		{Quantity: ptr("1"), Unit: ptr("tsp"), IngredientName: "salt", Confidence: 0.9},
	}, nil)
	s.On("Decompose", mock.Anything, lines).Return([]domain.RawDecomposition{
		{Quantity: ptr("2"), Unit: ptr("Cup"), IngredientName: "Flour", Confidence: 0.7},
		{Quantity: ptr("1"), Unit: ptr("tsp"), IngredientName: "kosher salt", Confidence: 0.9, PreparationNotes: ptr("fine")},
	}, nil)

	out, err := decomposer.NewMergeDecomposer(p, s, nil).Decompose(context.Background(), lines)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.InDelta(t, 0.6, out[0].Confidence, 1e-9)
	assert.Equal(t, "flour", out[0].IngredientName)

	assert.Equal(t, "salt", out[1].IngredientName)
	assert.InDelta(t, 0.54, out[1].Confidence, 1e-9)
	assert.Equal(t, ptr("fine"), out[1].PreparationNotes)
}

func TestMergeDecomposer_OneSideFails(t *testing.T) {
	p := new(mocks.MockIngredientDecomposer)
	s := new(mocks.MockIngredientDecomposer)
	p.On("Decompose", mock.Anything, lines).Return(nil, errors.New("primary down"))
	s.On("Decompose", mock.Anything, lines).Return(decomposed("flour", "salt"), nil)

	out, err := decomposer.NewMergeDecomposer(p, s, nil).Decompose(context.Background(), lines)
	require.NoError(t, err)
	assert.Equal(t, decomposed("flour", "salt"), out)
}

func TestMergeDecomposer_WrongLengthCountsAsFailure(t *testing.T) {
	p := new(mocks.MockIngredientDecomposer)
	s := new(mocks.MockIngredientDecomposer)
	p.On("Decompose", mock.Anything, lines).Return(decomposed("flour"), nil)
	s.On("Decompose", mock.Anything, lines).Return(decomposed("flour", "salt"), nil)

	out, err := decomposer.NewMergeDecomposer(p, s, nil).Decompose(context.Background(), lines)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestMergeDecomposer_BothFail(t *testing.T) {
	p := new(mocks.MockIngredientDecomposer)
	s := new(mocks.MockIngredientDecomposer)
	p.On("Decompose", mock.Anything, lines).Return(nil, errors.New("a"))
	s.On("Decompose", mock.Anything, lines).Return(nil, errors.New("b"))

	_, err := decomposer.NewMergeDecomposer(p, s, nil).Decompose(context.Background(), lines)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both decomposers failed")
}
