package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"recipekit/internal/domain"
)

// MockImportLogRepository is a mock implementation of port.ImportLogRepository.
type MockImportLogRepository struct {
	mock.Mock
}

func (m *MockImportLogRepository) Create(ctx context.Context, entry *domain.ImportLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockImportLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.ImportLogEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ImportLogEntry), args.Error(1)
}
