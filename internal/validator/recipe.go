package validator

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"recipekit/internal/domain"
)

const (
	minIngredientLineLen  = 3
	maxIngredientLineLen  = 200
	minInstructionLineLen = 5
)

// Engine runs every registered rule against a draft.
type Engine struct {
	registry *Registry
}

// NewEngine creates an engine over the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// NewDefaultEngine creates an engine with BuiltinRules registered.
func NewDefaultEngine() *Engine {
	r := NewRegistry()
	for _, rule := range BuiltinRules() {
		r.Register(rule)
	}
	return NewEngine(r)
}

// Validate splits rule output into blocking errors and advisory warnings.
func (e *Engine) Validate(d *domain.RecipeDraft) Result {
	res := Result{
		Errors:   []domain.ValidationIssue{},
		Warnings: []domain.ValidationIssue{},
	}
	for _, rule := range e.registry.All() {
		for _, issue := range rule.Check(d) {
			if issue.Severity == domain.SeverityError {
				res.Errors = append(res.Errors, issue)
			} else {
				res.Warnings = append(res.Warnings, issue)
			}
		}
	}
	res.IsValid = len(res.Errors) == 0
	return res
}

var defaultEngine = NewDefaultEngine()

// Validate checks d with the builtin rules.
func Validate(d *domain.RecipeDraft) Result {
	return defaultEngine.Validate(d)
}

// HasMinimumViableContent reports whether the draft is worth offering to the
// user even when other validation fails: name and image are both non-blank.
func HasMinimumViableContent(d *domain.RecipeDraft) bool {
	return d != nil && nonBlank(d.Name) && nonBlank(d.Image)
}

// IsValidURL accepts only absolute http and https URLs.
func IsValidURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// ValidateIngredientLines flags very short and very long ingredient lines.
func ValidateIngredientLines(lines []string) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	for i, line := range lines {
		n := utf8.RuneCountInString(strings.TrimSpace(line))
		switch {
		case n < minIngredientLineLen:
			issues = append(issues, lineIssue("recipeIngredient", i, "Ingredient line is very short"))
		case n > maxIngredientLineLen:
			issues = append(issues, lineIssue("recipeIngredient", i, "Ingredient line is very long and may need splitting"))
		}
	}
	return issues
}

// ValidateInstructionLines flags very short instruction lines.
func ValidateInstructionLines(lines []string) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	for i, line := range lines {
		if utf8.RuneCountInString(strings.TrimSpace(line)) < minInstructionLineLen {
			issues = append(issues, lineIssue("recipeInstructions", i, "Instruction line is very short"))
		}
	}
	return issues
}

func lineIssue(field string, i int, msg string) domain.ValidationIssue {
	return domain.ValidationIssue{
		Type:     domain.IssueDataQuality,
		Field:    fmt.Sprintf("%s[%d]", field, i),
		Message:  msg,
		Severity: domain.SeverityWarning,
	}
}
