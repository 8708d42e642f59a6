package port

import (
	"context"

	"recipekit/internal/domain"
)

// ImportLogRepository records import attempts for history views.
type ImportLogRepository interface {
	Create(ctx context.Context, entry *domain.ImportLogEntry) error
	ListRecent(ctx context.Context, limit int) ([]domain.ImportLogEntry, error)
}
