package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"recipekit/internal/domain"
)

// MockIngredientDecomposer is a mock implementation of port.IngredientDecomposer.
type MockIngredientDecomposer struct {
	mock.Mock
}

func (m *MockIngredientDecomposer) Decompose(ctx context.Context, lines []string) ([]domain.RawDecomposition, error) {
	args := m.Called(ctx, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawDecomposition), args.Error(1)
}
