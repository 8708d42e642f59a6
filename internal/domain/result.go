package domain

import (
	"time"

	"github.com/google/uuid"
)

// ValidationIssue is a tagged error or warning attached to an import result.
type ValidationIssue struct {
	Type       IssueType `json:"type"`
	Field      string    `json:"field,omitempty"`
	Message    string    `json:"message"`
	Details    []string  `json:"details,omitempty"`
	Severity   Severity  `json:"severity"`
	Actionable bool      `json:"actionable,omitempty"`
}

// ImportMetadata describes how an import attempt ran.
type ImportMetadata struct {
	ImportID             uuid.UUID   `json:"importId"`
	ParsedAt             time.Time   `json:"parsedAt"`
	SourceURL            string      `json:"sourceUrl,omitempty"`
	RawJSONLD            string      `json:"rawJsonLd"`
	ParsingDurationMs    int64       `json:"parsingDurationMs"`
	FinalState           ImportState `json:"finalState"`
	MinimumViableContent bool        `json:"minimumViableContent"`
	FailedIngredients    []string    `json:"failedIngredients,omitempty"`
}

// ImportResult is returned by the import entry point.
type ImportResult struct {
	Success  bool              `json:"success"`
	Recipe   *RecipeDraft      `json:"recipe,omitempty"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
	Metadata ImportMetadata    `json:"metadata"`
}

// ImportLogEntry is the persisted summary of one import attempt.
type ImportLogEntry struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	SourceURL    string      `db:"source_url" json:"source_url"`
	RecipeName   string      `db:"recipe_name" json:"recipe_name"`
	Success      bool        `db:"success" json:"success"`
	FinalState   ImportState `db:"final_state" json:"final_state"`
	ErrorCount   int         `db:"error_count" json:"error_count"`
	WarningCount int         `db:"warning_count" json:"warning_count"`
	DurationMs   int64       `db:"duration_ms" json:"duration_ms"`
	ArchiveKey   string      `db:"archive_key" json:"archive_key"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
}

// BatchProgress is reported after each decomposition chunk.
type BatchProgress struct {
	CurrentBatch             int   `json:"currentBatch"`
	TotalBatches             int   `json:"totalBatches"`
	ParsedCount              int   `json:"parsedCount"`
	TotalCount               int   `json:"totalCount"`
	EstimatedTimeRemainingMs int64 `json:"estimatedTimeRemainingMs"`
	CanCancel                bool  `json:"canCancel"`
}
