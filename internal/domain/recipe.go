package domain

// RawImportInput is the text a user pasted plus the page it came from, if known.
type RawImportInput struct {
	Text      string `json:"text"`
	SourceURL string `json:"source_url,omitempty"`
}

// Nutrition holds the numeric part of schema.org NutritionInformation fields.
type Nutrition struct {
	Calories            string `json:"calories,omitempty"`
	FatContent          string `json:"fatContent,omitempty"`
	SaturatedFatContent string `json:"saturatedFatContent,omitempty"`
	CarbohydrateContent string `json:"carbohydrateContent,omitempty"`
	SugarContent        string `json:"sugarContent,omitempty"`
	FiberContent        string `json:"fiberContent,omitempty"`
	ProteinContent      string `json:"proteinContent,omitempty"`
	CholesterolContent  string `json:"cholesterolContent,omitempty"`
	SodiumContent       string `json:"sodiumContent,omitempty"`
}

// IsEmpty reports whether every field is absent.
func (n Nutrition) IsEmpty() bool {
	return n == Nutrition{}
}

// RecipeDraft is the canonical internal recipe produced by an import.
type RecipeDraft struct {
	Name               string             `json:"name"`
	Image              string             `json:"image"`
	Description        string             `json:"description,omitempty"`
	Author             string             `json:"author,omitempty"`
	SourceURL          string             `json:"sourceUrl,omitempty"`
	RecipeIngredient   []string           `json:"recipeIngredient"`
	RecipeInstructions []string           `json:"recipeInstructions"`
	RecipeCategory     []string           `json:"recipeCategory"`
	RecipeCuisine      []string           `json:"recipeCuisine"`
	Keywords           []string           `json:"keywords"`
	SuitableForDiet    []string           `json:"suitableForDiet"`
	RecipeYield        string             `json:"recipeYield,omitempty"`
	PrepTime           string             `json:"prepTime,omitempty"`
	CookTime           string             `json:"cookTime,omitempty"`
	TotalTime          string             `json:"totalTime,omitempty"`
	Nutrition          *Nutrition         `json:"nutrition,omitempty"`
	ParsedIngredients  []ParsedIngredient `json:"parsedIngredients,omitempty"`
}

// ParsedIngredient is one ingredient line decomposed into structured parts.
// Values are never mutated after creation; scaling derives a ScaledIngredient.
type ParsedIngredient struct {
	OriginalText         string        `json:"originalText"`
	Quantity             *string       `json:"quantity"`
	Unit                 *string       `json:"unit"`
	IngredientName       string        `json:"ingredientName"`
	PreparationNotes     *string       `json:"preparationNotes"`
	MetricQuantity       *string       `json:"metricQuantity,omitempty"`
	MetricUnit           *string       `json:"metricUnit,omitempty"`
	Confidence           float64       `json:"confidence"`
	RequiresManualReview bool          `json:"requiresManualReview"`
	ParsingMethod        ParsingMethod `json:"parsingMethod"`
}

// RawDecomposition is what the external decomposition service returns per line.
type RawDecomposition struct {
	Quantity         *string `json:"quantity,omitempty"`
	Unit             *string `json:"unit,omitempty"`
	IngredientName   string  `json:"ingredientName"`
	PreparationNotes *string `json:"preparationNotes,omitempty"`
	MetricQuantity   *string `json:"metricQuantity,omitempty"`
	MetricUnit       *string `json:"metricUnit,omitempty"`
	Confidence       float64 `json:"confidence"`
}

// ScaledIngredient pairs an unmodified ParsedIngredient with its scaled amount.
type ScaledIngredient struct {
	Original        ParsedIngredient `json:"original"`
	ScaledQuantity  *float64         `json:"scaledQuantity"`
	DisplayQuantity string           `json:"displayQuantity"`
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
