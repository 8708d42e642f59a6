package decomposer

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"

	"recipekit/internal/domain"
)

// ParseIngredientsJSON decodes a model's text output into decompositions and
// checks that it answers every input line.
func ParseIngredientsJSON(text string, expected int) ([]domain.RawDecomposition, error) {
	text = stripFence(strings.TrimSpace(text))

	var parsed struct {
		Ingredients []domain.RawDecomposition `json:"ingredients"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, errors.Wrapf(err, "parsing LLM JSON output (raw: %s)", Truncate(text, 500))
	}
	if len(parsed.Ingredients) != expected {
		return nil, errors.Wrapf(domain.ErrDecompositionMismatch, "got %d results for %d lines", len(parsed.Ingredients), expected)
	}
	return parsed.Ingredients, nil
}

func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// Truncate shortens s to maxLen bytes for error messages.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
