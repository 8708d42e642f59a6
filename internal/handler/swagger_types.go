package handler

import (
	"recipekit/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// ImportRequest is the body of the import endpoints.
type ImportRequest struct {
	Text      string `json:"text" example:"{\"@context\":\"https://schema.org\",\"@type\":\"Recipe\",\"name\":\"Pancakes\"}"`
	SourceURL string `json:"source_url" example:"https://example.com/pancakes"`
}

// ScaleRequest is the body of the scale and export endpoints. A zero
// TargetYield keeps the recipe's own yield.
type ScaleRequest struct {
	Recipe       domain.RecipeDraft `json:"recipe" binding:"required"`
	TargetYield  float64            `json:"target_yield" example:"8"`
	ScaleToTaste bool               `json:"scale_to_taste" example:"false"`
}

// ParseIngredientsRequest is the body of the ingredient parse endpoint.
type ParseIngredientsRequest struct {
	Lines []string `json:"lines" binding:"required" example:"2 cups flour,1 tsp salt"`
}

// --- Response Types ---

// ParseIngredientsResponse is the data of a successful ingredient parse.
type ParseIngredientsResponse struct {
	Ingredients    []domain.ParsedIngredient `json:"ingredients"`
	Failed         []string                  `json:"failed"`
	DecomposerUsed bool                      `json:"decomposer_used"`
	DurationMs     int64                     `json:"duration_ms"`
}

// ExtractionInstructionsResponse carries the browser-console extraction steps.
type ExtractionInstructionsResponse struct {
	Instructions string `json:"instructions"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database,omitempty" example:"ok"`
	Error    string `json:"error,omitempty"`
}
