package ingredient_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"recipekit/internal/batch"
	"recipekit/internal/domain"
	"recipekit/internal/ingredient"
	"recipekit/mocks"
)

var parserCfg = ingredient.ParserConfig{MaxLineLength: 40, ConfidenceThreshold: 0.7}

func raw(name string, conf float64) domain.RawDecomposition {
	return domain.RawDecomposition{IngredientName: name, Confidence: conf}
}

func TestParser_NoDecomposerUsesFallback(t *testing.T) {
	p := ingredient.NewParser(nil, batch.NewCoordinator(batch.Config{MaxBatchSize: 2}), parserCfg, nil)

	out, err := p.ParseAll(context.Background(), []string{"2 cups flour", "1 cup sugar"}, nil)
	require.NoError(t, err)
	require.Len(t, out.Ingredients, 2)
	assert.False(t, out.DecomposerUsed)
	assert.Empty(t, out.Failed)
	assert.Equal(t, "flour", out.Ingredients[0].IngredientName)
	assert.Equal(t, domain.ParsingMethodManual, out.Ingredients[1].ParsingMethod)
}

func TestParser_MixedOutcomesStayAligned(t *testing.T) {
	dec := new(mocks.MockIngredientDecomposer)
	long := "1 cup " + strings.Repeat("very ", 10) + "long"
	lines := []string{"2 cups flour", "1 cup sugar", long, "3 eggs", "1 tsp salt"}

	dec.On("Decompose", mock.Anything, []string{"2 cups flour", "1 cup sugar"}).
		Return([]domain.RawDecomposition{raw("flour", 0.9), raw("sugar", 0.5)}, nil).Once()
	dec.On("Decompose", mock.Anything, []string{"3 eggs", "1 tsp salt"}).
		Return(nil, errors.New("upstream 500")).Once()

	p := ingredient.NewParser(dec, batch.NewCoordinator(batch.Config{MaxBatchSize: 2}), parserCfg, nil)
	out, err := p.ParseAll(context.Background(), lines, nil)
	require.NoError(t, err)
	dec.AssertExpectations(t)

	require.Len(t, out.Ingredients, len(lines))
	for i, ing := range out.Ingredients {
		assert.Equal(t, lines[i], ing.OriginalText)
	}
	assert.Equal(t, domain.ParsingMethodAI, out.Ingredients[0].ParsingMethod)
	assert.False(t, out.Ingredients[0].RequiresManualReview)
	assert.True(t, out.Ingredients[1].RequiresManualReview)
	assert.Equal(t, domain.ParsingMethodManual, out.Ingredients[2].ParsingMethod, "over-long line never sent")
	assert.Equal(t, domain.ParsingMethodManual, out.Ingredients[3].ParsingMethod)
	assert.Equal(t, []string{"3 eggs", "1 tsp salt"}, out.Failed)
	assert.True(t, out.DecomposerUsed)
}

func TestParser_RejectedDecompositionFallsBack(t *testing.T) {
	dec := new(mocks.MockIngredientDecomposer)
	dec.On("Decompose", mock.Anything, []string{"2 cups flour"}).
		Return([]domain.RawDecomposition{raw("", 0.9)}, nil)

	p := ingredient.NewParser(dec, batch.NewCoordinator(batch.Config{}), parserCfg, nil)
	out, err := p.ParseAll(context.Background(), []string{"2 cups flour"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"2 cups flour"}, out.Failed)
	assert.Equal(t, "flour", out.Ingredients[0].IngredientName)
}

func TestParser_Cancelled(t *testing.T) {
	dec := new(mocks.MockIngredientDecomposer)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := ingredient.NewParser(dec, batch.NewCoordinator(batch.Config{}), parserCfg, nil)
	out, err := p.ParseAll(ctx, []string{"2 cups flour"}, nil)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrCancelled)
	dec.AssertNotCalled(t, "Decompose", mock.Anything, mock.Anything)
}
