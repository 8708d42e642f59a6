package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"recipekit/internal/domain"
)

// requiredFieldRule fails when a required field is blank.
type requiredFieldRule struct {
	ruleKey string
	field   string
	label   string
	extract func(*domain.RecipeDraft) string
}

func (r *requiredFieldRule) RuleKey() string           { return r.ruleKey }
func (r *requiredFieldRule) Severity() domain.Severity { return domain.SeverityError }

func (r *requiredFieldRule) Check(d *domain.RecipeDraft) []domain.ValidationIssue {
	if strings.TrimSpace(r.extract(d)) != "" {
		return nil
	}
	return []domain.ValidationIssue{{
		Type:     domain.IssueMissingRequiredField,
		Field:    r.field,
		Message:  fmt.Sprintf("%s is required", r.label),
		Severity: domain.SeverityError,
	}}
}

// optionalFieldRule warns when an optional field is absent.
type optionalFieldRule struct {
	ruleKey string
	field   string
	message string
	present func(*domain.RecipeDraft) bool
}

func (r *optionalFieldRule) RuleKey() string           { return r.ruleKey }
func (r *optionalFieldRule) Severity() domain.Severity { return domain.SeverityWarning }

func (r *optionalFieldRule) Check(d *domain.RecipeDraft) []domain.ValidationIssue {
	if r.present(d) {
		return nil
	}
	return []domain.ValidationIssue{{
		Type:       domain.IssueMissingOptionalField,
		Field:      r.field,
		Message:    r.message,
		Severity:   domain.SeverityWarning,
		Actionable: true,
	}}
}

// qualityRule warns when a present value looks wrong. check returns the
// warning message, or "" when the draft passes.
type qualityRule struct {
	ruleKey string
	field   string
	check   func(*domain.RecipeDraft) string
}

func (r *qualityRule) RuleKey() string           { return r.ruleKey }
func (r *qualityRule) Severity() domain.Severity { return domain.SeverityWarning }

func (r *qualityRule) Check(d *domain.RecipeDraft) []domain.ValidationIssue {
	msg := r.check(d)
	if msg == "" {
		return nil
	}
	return []domain.ValidationIssue{{
		Type:     domain.IssueDataQuality,
		Field:    r.field,
		Message:  msg,
		Severity: domain.SeverityWarning,
	}}
}

func nonBlank(s string) bool { return strings.TrimSpace(s) != "" }

// BuiltinRules returns the standard recipe rules in evaluation order.
func BuiltinRules() []Rule {
	return []Rule{
		&requiredFieldRule{
			ruleKey: "required.name", field: "name", label: "Recipe name",
			extract: func(d *domain.RecipeDraft) string { return d.Name },
		},
		&requiredFieldRule{
			ruleKey: "required.image", field: "image", label: "Recipe image",
			extract: func(d *domain.RecipeDraft) string { return d.Image },
		},
		&optionalFieldRule{
			ruleKey: "optional.ingredients", field: "recipeIngredient",
			message: "No ingredients found; add them before saving",
			present: func(d *domain.RecipeDraft) bool { return len(d.RecipeIngredient) > 0 },
		},
		&optionalFieldRule{
			ruleKey: "optional.instructions", field: "recipeInstructions",
			message: "No instructions found; add them before saving",
			present: func(d *domain.RecipeDraft) bool { return len(d.RecipeInstructions) > 0 },
		},
		&optionalFieldRule{
			ruleKey: "optional.yield", field: "recipeYield",
			message: "No yield found; scaling will assume 1 serving",
			present: func(d *domain.RecipeDraft) bool { return nonBlank(d.RecipeYield) },
		},
		&optionalFieldRule{
			ruleKey: "optional.times", field: "totalTime",
			message: "No prep, cook or total time found",
			present: func(d *domain.RecipeDraft) bool {
				return nonBlank(d.PrepTime) || nonBlank(d.CookTime) || nonBlank(d.TotalTime)
			},
		},
		&qualityRule{
			ruleKey: "quality.image_url", field: "image",
			check: func(d *domain.RecipeDraft) string {
				if nonBlank(d.Image) && !IsValidURL(d.Image) {
					return "Image is not a valid http or https URL"
				}
				return ""
			},
		},
		&qualityRule{
			ruleKey: "quality.ingredient_count", field: "recipeIngredient",
			check: func(d *domain.RecipeDraft) string {
				if n := len(d.RecipeIngredient); n >= 1 && n <= 2 {
					return fmt.Sprintf("Only %d ingredient(s) found; the list may be incomplete", n)
				}
				return ""
			},
		},
		&qualityRule{
			ruleKey: "quality.instruction_count", field: "recipeInstructions",
			check: func(d *domain.RecipeDraft) string {
				if len(d.RecipeInstructions) == 1 {
					return "Only one instruction step found; steps may have been merged"
				}
				return ""
			},
		},
		&qualityRule{
			ruleKey: "quality.name_length", field: "name",
			check: func(d *domain.RecipeDraft) string {
				name := strings.TrimSpace(d.Name)
				if name != "" && utf8.RuneCountInString(name) < 3 {
					return "Recipe name is very short"
				}
				return ""
			},
		},
	}
}
