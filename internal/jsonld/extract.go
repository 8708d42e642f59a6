package jsonld

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"recipekit/internal/domain"
)

const recipeType = "Recipe"

// FindRecipeNode locates the Recipe node in a parsed JSON-LD value. It checks,
// in order, a top-level array, an object's @graph array, the object itself,
// and finally @graph arrays nested in top-level array elements.
// The first match wins.
func FindRecipeNode(v any) (map[string]any, bool) {
	switch val := v.(type) {
	case []any:
		if node, ok := scanNodes(val); ok {
			return node, true
		}
		for _, el := range val {
			if obj, ok := el.(map[string]any); ok {
				if graph, ok := obj["@graph"].([]any); ok {
					if node, ok := scanNodes(graph); ok {
						return node, true
					}
				}
			}
		}
	case map[string]any:
		if graph, ok := val["@graph"].([]any); ok {
			if node, ok := scanNodes(graph); ok {
				return node, true
			}
		}
		if isRecipe(val) {
			return val, true
		}
	}
	return nil, false
}

func scanNodes(nodes []any) (map[string]any, bool) {
	for _, el := range nodes {
		if obj, ok := el.(map[string]any); ok && isRecipe(obj) {
			return obj, true
		}
	}
	return nil, false
}

func isRecipe(node map[string]any) bool {
	switch t := node["@type"].(type) {
	case string:
		return t == recipeType
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == recipeType {
				return true
			}
		}
	}
	return false
}

// GetType returns the first @type found in v, for diagnostics when no Recipe
// node exists. It returns "" when v carries no type at all.
func GetType(v any) string {
	switch val := v.(type) {
	case map[string]any:
		if t := firstType(val); t != "" {
			return t
		}
		if graph, ok := val["@graph"].([]any); ok {
			return GetType(graph)
		}
	case []any:
		for _, el := range val {
			if t := GetType(el); t != "" {
				return t
			}
		}
	}
	return ""
}

func firstType(node map[string]any) string {
	switch t := node["@type"].(type) {
	case string:
		return t
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				return s
			}
		}
	}
	return ""
}

// MapToDraft maps a schema.org Recipe node onto a RecipeDraft. Every field is
// extracted independently and a malformed field yields its zero value.
func MapToDraft(node map[string]any, sourceURL string) domain.RecipeDraft {
	draft := domain.RecipeDraft{
		Name:               strings.TrimSpace(asString(node["name"])),
		Image:              extractImage(node["image"]),
		Description:        strings.TrimSpace(asString(node["description"])),
		Author:             extractAuthor(node["author"]),
		SourceURL:          sourceURL,
		RecipeIngredient:   extractIngredients(node["recipeIngredient"]),
		RecipeInstructions: extractInstructions(node["recipeInstructions"]),
		RecipeCategory:     toStringSlice(node["recipeCategory"]),
		RecipeCuisine:      toStringSlice(node["recipeCuisine"]),
		Keywords:           toStringSlice(node["keywords"]),
		SuitableForDiet:    toStringSlice(node["suitableForDiet"]),
		RecipeYield:        extractYield(node["recipeYield"]),
		PrepTime:           asString(node["prepTime"]),
		CookTime:           asString(node["cookTime"]),
		TotalTime:          asString(node["totalTime"]),
		Nutrition:          extractNutrition(node["nutrition"]),
	}
	if draft.SourceURL == "" {
		draft.SourceURL = asString(node["url"])
	}
	return draft
}

func asString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	return ""
}

func extractImage(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case map[string]any:
		return strings.TrimSpace(asString(val["url"]))
	case []any:
		if len(val) == 0 {
			return ""
		}
		switch first := val[0].(type) {
		case string:
			return strings.TrimSpace(first)
		case map[string]any:
			return strings.TrimSpace(asString(first["url"]))
		}
	}
	return ""
}

func extractAuthor(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case map[string]any:
		return strings.TrimSpace(asString(val["name"]))
	case []any:
		if len(val) > 0 {
			return extractAuthor(val[0])
		}
	}
	return ""
}

func extractIngredients(v any) []string {
	items, ok := v.([]any)
	if !ok {
		if s := strings.TrimSpace(asString(v)); s != "" {
			return []string{s}
		}
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(asString(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// extractInstructions flattens strings, HowToStep objects and HowToSection
// groups into instruction lines. Non-array input yields an empty list.
func extractInstructions(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = appendInstruction(out, item)
	}
	return out
}

func appendInstruction(out []string, item any) []string {
	switch val := item.(type) {
	case string:
		if s := strings.TrimSpace(val); s != "" {
			out = append(out, s)
		}
	case map[string]any:
		if nested, ok := val["itemListElement"].([]any); ok {
			for _, step := range nested {
				out = appendInstruction(out, step)
			}
			return out
		}
		text := strings.TrimSpace(asString(val["text"]))
		if text == "" {
			return out
		}
		name := strings.TrimSpace(asString(val["name"]))
		if name != "" && !strings.HasPrefix(text, name) {
			text = fmt.Sprintf("%s: %s", name, text)
		}
		out = append(out, text)
	}
	return out
}

var numberRunRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// extractNutrition keeps the first number of each field, dropping unit text.
// It returns nil when no field carries a number.
func extractNutrition(v any) *domain.Nutrition {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	n := domain.Nutrition{
		Calories:            firstNumber(obj["calories"]),
		FatContent:          firstNumber(obj["fatContent"]),
		SaturatedFatContent: firstNumber(obj["saturatedFatContent"]),
		CarbohydrateContent: firstNumber(obj["carbohydrateContent"]),
		SugarContent:        firstNumber(obj["sugarContent"]),
		FiberContent:        firstNumber(obj["fiberContent"]),
		ProteinContent:      firstNumber(obj["proteinContent"]),
		CholesterolContent:  firstNumber(obj["cholesterolContent"]),
		SodiumContent:       firstNumber(obj["sodiumContent"]),
	}
	if n.IsEmpty() {
		return nil
	}
	return &n
}

func firstNumber(v any) string {
	return numberRunRe.FindString(asString(v))
}

// toStringSlice normalizes a scalar-or-array field to a slice.
// Comma-separated keyword strings stay as a single entry.
func toStringSlice(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := strings.TrimSpace(asString(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := strings.TrimSpace(asString(val)); s != "" {
			return []string{s}
		}
	}
	return []string{}
}

func extractYield(v any) string {
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s := strings.TrimSpace(asString(item)); s != "" {
				return s
			}
		}
		return ""
	default:
		return strings.TrimSpace(asString(val))
	}
}
