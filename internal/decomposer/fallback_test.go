package decomposer_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"recipekit/internal/decomposer"
	"recipekit/internal/domain"
	"recipekit/internal/port"
	"recipekit/mocks"
)

var lines = []string{"2 cups flour", "1 tsp salt"}

func decomposed(names ...string) []domain.RawDecomposition {
	out := make([]domain.RawDecomposition, len(names))
	for i, n := range names {
		out[i] = domain.RawDecomposition{IngredientName: n, Confidence: 0.8}
	}
	return out
}

func TestFallbackDecomposer_FirstSucceeds(t *testing.T) {
	d1 := new(mocks.MockIngredientDecomposer)
	d2 := new(mocks.MockIngredientDecomposer)
	d1.On("Decompose", mock.Anything, lines).Return(decomposed("flour", "salt"), nil)

	fd := decomposer.NewFallbackDecomposer([]port.IngredientDecomposer{d1, d2}, []string{"claude", "gemini"}, nil)
	out, err := fd.Decompose(context.Background(), lines)

	require.NoError(t, err)
	assert.Equal(t, "flour", out[0].IngredientName)
	d2.AssertNotCalled(t, "Decompose", mock.Anything, mock.Anything)
}

func TestFallbackDecomposer_FirstFails_SecondSucceeds(t *testing.T) {
	d1 := new(mocks.MockIngredientDecomposer)
	d2 := new(mocks.MockIngredientDecomposer)
	d1.On("Decompose", mock.Anything, lines).Return(nil, errors.New("generic error"))
	d2.On("Decompose", mock.Anything, lines).Return(decomposed("flour", "salt"), nil)

	fd := decomposer.NewFallbackDecomposer([]port.IngredientDecomposer{d1, d2}, []string{"claude", "gemini"}, nil)
	out, err := fd.Decompose(context.Background(), lines)

	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestFallbackDecomposer_RateLimitOpensCircuit(t *testing.T) {
	d1 := new(mocks.MockIngredientDecomposer)
	d2 := new(mocks.MockIngredientDecomposer)
	d1.On("Decompose", mock.Anything, lines).
		Return(nil, decomposer.NewRateLimitError("claude", 2, errors.New("429"), 30*time.Second)).Once()
	d2.On("Decompose", mock.Anything, lines).Return(decomposed("flour", "salt"), nil)

	fd := decomposer.NewFallbackDecomposer([]port.IngredientDecomposer{d1, d2}, []string{"claude", "gemini"}, nil)

	_, err := fd.Decompose(context.Background(), lines)
	require.NoError(t, err)
	_, err = fd.Decompose(context.Background(), lines)
	require.NoError(t, err)

	d1.AssertNumberOfCalls(t, "Decompose", 1)
	d2.AssertNumberOfCalls(t, "Decompose", 2)
}

func TestFallbackDecomposer_AllRateLimited(t *testing.T) {
	d1 := new(mocks.MockIngredientDecomposer)
	d2 := new(mocks.MockIngredientDecomposer)
	d1.On("Decompose", mock.Anything, lines).Return(nil, decomposer.NewRateLimitError("claude", 2, errors.New("429"), 30*time.Second))
	d2.On("Decompose", mock.Anything, lines).Return(nil, decomposer.NewRateLimitError("gemini", 2, errors.New("429"), 10*time.Second))

	fd := decomposer.NewFallbackDecomposer([]port.IngredientDecomposer{d1, d2}, []string{"claude", "gemini"}, nil)
	_, err := fd.Decompose(context.Background(), lines)

	var rlErr *decomposer.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "all", rlErr.Provider)
	assert.InDelta(t, 10, rlErr.RetryAfter.Seconds(), 1)
	assert.Equal(t, 2, rlErr.Lines)
}

func TestFallbackDecomposer_AllFail(t *testing.T) {
	d1 := new(mocks.MockIngredientDecomposer)
	d2 := new(mocks.MockIngredientDecomposer)
	d1.On("Decompose", mock.Anything, lines).Return(nil, decomposer.NewRateLimitError("claude", 2, errors.New("429"), 30*time.Second))
	d2.On("Decompose", mock.Anything, lines).Return(nil, errors.New("server error"))

	fd := decomposer.NewFallbackDecomposer([]port.IngredientDecomposer{d1, d2}, []string{"claude", "gemini"}, nil)
	_, err := fd.Decompose(context.Background(), lines)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all decomposers failed")
	var rlErr *decomposer.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
}

func TestRateLimitError(t *testing.T) {
	err := decomposer.NewRateLimitError("openai", 3, errors.New("slow down"), 0)
	assert.Equal(t, decomposer.DefaultRetryAfter, err.RetryAfter)
	assert.Equal(t, 3, err.Lines)
	assert.Contains(t, err.Error(), "openai rate limited on 3 line(s)")
	assert.Equal(t, "slow down", errors.Unwrap(err).Error())
}

func TestRetryAfter(t *testing.T) {
	now := time.Date(2015, 10, 21, 7, 28, 0, 0, time.UTC)
	header := func(v string) http.Header {
		h := http.Header{}
		if v != "" {
			h.Set("Retry-After", v)
		}
		return h
	}

	assert.Equal(t, 12*time.Second, decomposer.RetryAfter(header("12"), now))
	assert.Zero(t, decomposer.RetryAfter(header(""), now))
	assert.Zero(t, decomposer.RetryAfter(header("-5"), now))
	assert.Zero(t, decomposer.RetryAfter(header("soon"), now))
	assert.Equal(t, 90*time.Second, decomposer.RetryAfter(header("Wed, 21 Oct 2015 07:29:30 GMT"), now))
	assert.Zero(t, decomposer.RetryAfter(header("Wed, 21 Oct 2015 07:00:00 GMT"), now))
}
