// Package scaling rescales a recipe to a new yield: the yield itself, every
// parsed ingredient quantity and the quantities mentioned in instructions.
package scaling

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"recipekit/internal/domain"
)

const (
	minYieldFactor = 0.5
	maxYieldFactor = 10
)

var (
	yieldRangeRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:-|–|to)\s*(\d+(?:\.\d+)?)`)
	firstIntRe   = regexp.MustCompile(`\d+`)
)

// ParseYield turns a schema.org recipeYield value into a serving count. The
// result is always at least 1: absent, zero, negative or digit-free input
// yields 1. "6-8 servings" yields the rounded midpoint 7.
func ParseYield(v any) float64 {
	switch y := v.(type) {
	case nil:
		return 1
	case float64:
		return positiveOrOne(y)
	case float32:
		return positiveOrOne(float64(y))
	case int:
		return positiveOrOne(float64(y))
	case int64:
		return positiveOrOne(float64(y))
	case json.Number:
		f, err := y.Float64()
		if err != nil {
			return parseYieldString(y.String())
		}
		return positiveOrOne(f)
	case string:
		return parseYieldString(y)
	case []any:
		for _, item := range y {
			if n := ParseYield(item); n > 1 {
				return n
			}
		}
		return 1
	default:
		return 1
	}
}

func positiveOrOne(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 1
	}
	return f
}

func parseYieldString(s string) float64 {
	if m := yieldRangeRe.FindStringSubmatch(s); m != nil {
		low, _ := strconv.ParseFloat(m[1], 64)
		high, _ := strconv.ParseFloat(m[2], 64)
		return positiveOrOne(math.Round((low + high) / 2))
	}
	if m := firstIntRe.FindString(s); m != "" {
		n, _ := strconv.ParseFloat(m, 64)
		return positiveOrOne(n)
	}
	return 1
}

// CalculateMultiplier returns current/original rounded to four decimal
// places, or exactly 1 when original is zero.
func CalculateMultiplier(current, original float64) float64 {
	if original == 0 {
		return 1.0
	}
	return math.Round(current/original*10000) / 10000
}

// YieldErrorType classifies an out-of-range target yield.
type YieldErrorType string

const (
	YieldInvalidNumber YieldErrorType = "invalid_number"
	YieldBelowMinimum  YieldErrorType = "below_minimum"
	YieldAboveMaximum  YieldErrorType = "above_maximum"
)

// YieldError describes why a target yield was rejected. SuggestedValue is the
// nearest accepted yield, when there is one.
type YieldError struct {
	Type           YieldErrorType `json:"type"`
	Message        string         `json:"message"`
	SuggestedValue *float64       `json:"suggestedValue,omitempty"`
}

func (e *YieldError) Error() string {
	return e.Message
}

// Unwrap lets callers match any yield error with domain.ErrInvalidYield.
func (e *YieldError) Unwrap() error {
	return domain.ErrInvalidYield
}

// ValidateYield checks value against [original×0.5, original×10]. It returns
// nil when value is acceptable. A non-positive original is treated as 1.
func ValidateYield(value, original float64) *YieldError {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &YieldError{Type: YieldInvalidNumber, Message: "yield must be a finite number"}
	}
	if !(original > 0) || math.IsInf(original, 0) {
		original = 1
	}
	lo, hi := original*minYieldFactor, original*maxYieldFactor
	switch {
	case value < lo:
		return &YieldError{
			Type:           YieldBelowMinimum,
			Message:        fmt.Sprintf("yield %s is below the minimum of %s", trimFloat(value), trimFloat(lo)),
			SuggestedValue: &lo,
		}
	case value > hi:
		return &YieldError{
			Type:           YieldAboveMaximum,
			Message:        fmt.Sprintf("yield %s is above the maximum of %s", trimFloat(value), trimFloat(hi)),
			SuggestedValue: &hi,
		}
	}
	return nil
}

// ScaleQuantity multiplies q by m and rounds to two decimal places. A nil
// quantity stays nil.
func ScaleQuantity(q *float64, m float64) *float64 {
	if q == nil {
		return nil
	}
	v := round2(*q * m)
	return &v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', -1, 64)
}
