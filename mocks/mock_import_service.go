package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"recipekit/internal/batch"
	"recipekit/internal/domain"
	"recipekit/internal/ingredient"
)

// MockImportService is a mock implementation of importer.Service.
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Import(ctx context.Context, input domain.RawImportInput, onProgress batch.ProgressFunc) (*domain.ImportResult, error) {
	args := m.Called(ctx, input, onProgress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportResult), args.Error(1)
}

func (m *MockImportService) ParseIngredients(ctx context.Context, lines []string) (*ingredient.ParseOutcome, error) {
	args := m.Called(ctx, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingredient.ParseOutcome), args.Error(1)
}

func (m *MockImportService) ListHistory(ctx context.Context, limit int) ([]domain.ImportLogEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ImportLogEntry), args.Error(1)
}
