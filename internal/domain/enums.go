package domain

// ImportState is the state of a single import attempt.
type ImportState string

const (
	ImportStateIdle               ImportState = "idle"
	ImportStatePreprocessing      ImportState = "preprocessing"
	ImportStateValidating         ImportState = "validating"
	ImportStateExtracting         ImportState = "extracting"
	ImportStateParsingIngredients ImportState = "parsing-ingredients"
	ImportStateComplete           ImportState = "complete"
	ImportStateFailed             ImportState = "failed"
)

// IsTerminal reports whether no further transitions are possible.
func (s ImportState) IsTerminal() bool {
	return s == ImportStateComplete || s == ImportStateFailed
}

// IssueType classifies a validation error or warning.
type IssueType string

const (
	IssueInvalidFormat        IssueType = "invalid_format"
	IssueSchemaMismatch       IssueType = "schema_mismatch"
	IssueMissingRequiredField IssueType = "missing_required_field"
	IssueMissingOptionalField IssueType = "missing_optional_field"
	IssueDataQuality          IssueType = "data_quality"
	IssueCancelled            IssueType = "cancelled"
)

// Severity controls whether an issue blocks an import.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ParsingMethod records how a ParsedIngredient was produced.
type ParsingMethod string

const (
	ParsingMethodAI     ParsingMethod = "ai"
	ParsingMethodManual ParsingMethod = "manual"
)
