package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"recipekit/internal/domain"
)

// MockDecompositionCache is a mock implementation of port.DecompositionCache.
type MockDecompositionCache struct {
	mock.Mock
}

func (m *MockDecompositionCache) GetMany(ctx context.Context, keys []string) (map[string]domain.RawDecomposition, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.RawDecomposition), args.Error(1)
}

func (m *MockDecompositionCache) SetMany(ctx context.Context, entries map[string]domain.RawDecomposition) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}
