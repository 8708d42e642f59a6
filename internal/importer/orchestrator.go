// Package importer sequences the recipe import pipeline: preprocessing, JSON
// validation, Recipe node extraction, recipe validation and ingredient
// parsing. Each import attempt owns one Orchestrator.
package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"recipekit/internal/batch"
	"recipekit/internal/config"
	"recipekit/internal/domain"
	"recipekit/internal/ingredient"
	"recipekit/internal/jsonld"
	"recipekit/internal/logger"
	"recipekit/internal/validator"
)

// transitions lists every allowed state change. Anything else is a bug.
var transitions = map[domain.ImportState][]domain.ImportState{
	domain.ImportStateIdle:               {domain.ImportStatePreprocessing},
	domain.ImportStatePreprocessing:      {domain.ImportStateValidating, domain.ImportStateFailed},
	domain.ImportStateValidating:         {domain.ImportStateExtracting, domain.ImportStateFailed},
	domain.ImportStateExtracting:         {domain.ImportStateParsingIngredients, domain.ImportStateComplete, domain.ImportStateFailed},
	domain.ImportStateParsingIngredients: {domain.ImportStateComplete},
}

// CanTransition reports whether from -> to is part of the import state machine.
func CanTransition(from, to domain.ImportState) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Orchestrator runs a single import attempt. It is not safe for concurrent use
// and cannot be reused once Run has been called.
type Orchestrator struct {
	cfg     config.ImportConfig
	engine  *validator.Engine
	parser  *ingredient.Parser
	log     *logger.Logger
	now     func() time.Time
	id      uuid.UUID
	state   domain.ImportState
	history []domain.ImportState
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithClock overrides the time source used for metadata and durations.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithID fixes the import id instead of generating one.
func WithID(id uuid.UUID) Option {
	return func(o *Orchestrator) { o.id = id }
}

// NewOrchestrator creates an orchestrator in the idle state. A nil engine uses
// the built-in rules; a nil parser skips ingredient parsing.
func NewOrchestrator(cfg config.ImportConfig, engine *validator.Engine, parser *ingredient.Parser, log *logger.Logger, opts ...Option) *Orchestrator {
	if engine == nil {
		engine = validator.NewDefaultEngine()
	}
	o := &Orchestrator{
		cfg:     cfg,
		engine:  engine,
		parser:  parser,
		log:     logger.OrNop(log),
		now:     time.Now,
		state:   domain.ImportStateIdle,
		history: []domain.ImportState{domain.ImportStateIdle},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.id == uuid.Nil {
		o.id = uuid.New()
	}
	o.log = o.log.With("component", "importer", "import_id", o.id.String())
	return o
}

// State returns the current state.
func (o *Orchestrator) State() domain.ImportState {
	return o.state
}

// History returns every state visited so far, starting with idle.
func (o *Orchestrator) History() []domain.ImportState {
	out := make([]domain.ImportState, len(o.history))
	copy(out, o.history)
	return out
}

// ID returns the import id used in the result metadata.
func (o *Orchestrator) ID() uuid.UUID {
	return o.id
}

func (o *Orchestrator) transition(to domain.ImportState) error {
	if !CanTransition(o.state, to) {
		return errors.Wrapf(domain.ErrInvalidTransition, "%s -> %s", o.state, to)
	}
	o.log.Debug("import state", "from", o.state, "to", to)
	o.state = to
	o.history = append(o.history, to)
	return nil
}

// Run executes the pipeline for input. Malformed user input never produces an
// error; it ends in the failed state with issues on the result. The only
// errors are reuse of the orchestrator and internal transition bugs.
func (o *Orchestrator) Run(ctx context.Context, input domain.RawImportInput, onProgress batch.ProgressFunc) (*domain.ImportResult, error) {
	if o.state != domain.ImportStateIdle {
		return nil, domain.ErrOrchestratorUsed
	}
	start := o.now()
	res := &domain.ImportResult{
		Errors:   []domain.ValidationIssue{},
		Warnings: []domain.ValidationIssue{},
		Metadata: domain.ImportMetadata{
			ImportID:  o.id,
			ParsedAt:  start.UTC(),
			SourceURL: input.SourceURL,
		},
	}
	finish := func(state domain.ImportState) (*domain.ImportResult, error) {
		if err := o.transition(state); err != nil {
			return nil, err
		}
		res.Success = state == domain.ImportStateComplete
		res.Metadata.FinalState = state
		res.Metadata.ParsingDurationMs = o.now().Sub(start).Milliseconds()
		o.log.Info("import finished",
			"state", state,
			"errors", len(res.Errors),
			"warnings", len(res.Warnings),
			"duration_ms", res.Metadata.ParsingDurationMs,
		)
		return res, nil
	}
	fail := func(issue domain.ValidationIssue) (*domain.ImportResult, error) {
		res.Errors = append(res.Errors, issue)
		return finish(domain.ImportStateFailed)
	}

	if err := o.transition(domain.ImportStatePreprocessing); err != nil {
		return nil, err
	}
	if size := len(input.Text); size > o.cfg.MaxInputBytes {
		return fail(domain.ValidationIssue{
			Type:     domain.IssueInvalidFormat,
			Message:  fmt.Sprintf("input size %d bytes exceeds the maximum of %d bytes", size, o.cfg.MaxInputBytes),
			Severity: domain.SeverityError,
		})
	}
	cleaned := jsonld.Preprocess(input.Text)
	res.Metadata.RawJSONLD = cleaned

	if err := o.transition(domain.ImportStateValidating); err != nil {
		return nil, err
	}
	parsed := jsonld.ValidateJSON(cleaned)
	if !parsed.Valid {
		msg := "invalid JSON: " + parsed.Error
		if parsed.Line > 0 {
			msg = fmt.Sprintf("%s (line %d, column %d)", msg, parsed.Line, parsed.Column)
		}
		return fail(domain.ValidationIssue{
			Type:     domain.IssueInvalidFormat,
			Message:  msg,
			Details:  jsonld.DetectIssues(input.Text),
			Severity: domain.SeverityError,
		})
	}

	if err := o.transition(domain.ImportStateExtracting); err != nil {
		return nil, err
	}
	node, ok := jsonld.FindRecipeNode(parsed.Data)
	if !ok {
		msg := "no Recipe node found in JSON-LD"
		if found := jsonld.GetType(parsed.Data); found != "" {
			msg = fmt.Sprintf("%s; found @type %q", msg, found)
		}
		return fail(domain.ValidationIssue{
			Type:     domain.IssueSchemaMismatch,
			Field:    "@type",
			Message:  msg,
			Severity: domain.SeverityError,
		})
	}
	draft := jsonld.MapToDraft(node, input.SourceURL)

	verdict := o.engine.Validate(&draft)
	res.Warnings = append(res.Warnings, verdict.Warnings...)
	res.Warnings = append(res.Warnings, validator.ValidateIngredientLines(draft.RecipeIngredient)...)
	res.Warnings = append(res.Warnings, validator.ValidateInstructionLines(draft.RecipeInstructions)...)
	res.Metadata.MinimumViableContent = validator.HasMinimumViableContent(&draft)
	if !verdict.IsValid {
		res.Errors = append(res.Errors, verdict.Errors...)
		if o.cfg.Lenient {
			res.Recipe = &draft
		}
		return finish(domain.ImportStateFailed)
	}

	if o.parser != nil && o.cfg.ParseIngredients && len(draft.RecipeIngredient) > 0 {
		if err := o.transition(domain.ImportStateParsingIngredients); err != nil {
			return nil, err
		}
		o.parseIngredients(ctx, &draft, res, onProgress)
	}

	res.Recipe = &draft
	return finish(domain.ImportStateComplete)
}

// parseIngredients never fails the import. Problems become warnings and the
// draft keeps its unparsed lines.
func (o *Orchestrator) parseIngredients(ctx context.Context, draft *domain.RecipeDraft, res *domain.ImportResult, onProgress batch.ProgressFunc) {
	outcome, err := o.parser.ParseAll(ctx, draft.RecipeIngredient, onProgress)
	if err != nil {
		issue := domain.ValidationIssue{
			Type:     domain.IssueDataQuality,
			Field:    "recipeIngredient",
			Message:  "ingredient parsing unavailable",
			Severity: domain.SeverityWarning,
		}
		if errors.Is(err, domain.ErrCancelled) {
			issue.Type = domain.IssueCancelled
			issue.Message = "ingredient parsing was cancelled; ingredients left unparsed"
		}
		o.log.Warn("ingredient parsing did not complete", "error", err)
		res.Warnings = append(res.Warnings, issue)
		return
	}

	draft.ParsedIngredients = outcome.Ingredients
	if len(outcome.Failed) > 0 {
		res.Metadata.FailedIngredients = outcome.Failed
		res.Warnings = append(res.Warnings, domain.ValidationIssue{
			Type:       domain.IssueDataQuality,
			Field:      "recipeIngredient",
			Message:    fmt.Sprintf("ingredient parsing unavailable for %d line(s); used the fallback parser", len(outcome.Failed)),
			Details:    outcome.Failed,
			Severity:   domain.SeverityWarning,
			Actionable: true,
		})
	}

	var review []string
	for _, p := range outcome.Ingredients {
		if p.RequiresManualReview {
			review = append(review, p.OriginalText)
		}
	}
	if len(review) > 0 {
		res.Warnings = append(res.Warnings, domain.ValidationIssue{
			Type:       domain.IssueDataQuality,
			Field:      "parsedIngredients",
			Message:    fmt.Sprintf("%d ingredient(s) need manual review", len(review)),
			Details:    review,
			Severity:   domain.SeverityWarning,
			Actionable: true,
		})
	}
	o.log.Info("ingredients parsed",
		"count", len(outcome.Ingredients),
		"failed", len(outcome.Failed),
		"decomposer_used", outcome.DecomposerUsed,
		"duration_ms", outcome.Duration.Milliseconds(),
	)
}
