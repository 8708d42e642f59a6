package port

import (
	"context"

	"recipekit/internal/domain"
)

// IngredientDecomposer abstracts the external ingredient decomposition service.
// Implementations return exactly one RawDecomposition per input line, in input order.
// A failure of the batch is a single error; there is no partial-batch result.
type IngredientDecomposer interface {
	Decompose(ctx context.Context, lines []string) ([]domain.RawDecomposition, error)
}

// DecompositionCache stores decompositions keyed by a normalized ingredient line.
type DecompositionCache interface {
	// GetMany returns the cached entries for the given keys. Missing keys are absent from the map.
	GetMany(ctx context.Context, keys []string) (map[string]domain.RawDecomposition, error)
	SetMany(ctx context.Context, entries map[string]domain.RawDecomposition) error
}
