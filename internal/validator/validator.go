// Package validator checks a RecipeDraft for required fields and data quality.
package validator

import "recipekit/internal/domain"

// Rule is a single recipe validation rule.
type Rule interface {
	Check(d *domain.RecipeDraft) []domain.ValidationIssue
	RuleKey() string
	Severity() domain.Severity
}

// Result is the verdict of validating one draft.
type Result struct {
	Errors   []domain.ValidationIssue
	Warnings []domain.ValidationIssue
	IsValid  bool
}
