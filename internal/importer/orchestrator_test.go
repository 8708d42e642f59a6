package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"recipekit/internal/batch"
	"recipekit/internal/config"
	"recipekit/internal/domain"
	"recipekit/internal/importer"
	"recipekit/internal/ingredient"
	"recipekit/mocks"
)

const cakeJSON = `{"@type":"Recipe","name":"Chocolate Cake","image":"https://x/cake.jpg","recipeIngredient":["2 cups flour","1 cup sugar"],"recipeInstructions":["Mix ingredients","Bake at 350F"]}`

func fallbackParser() *ingredient.Parser {
	return ingredient.NewParser(nil, batch.NewCoordinator(batch.Config{MaxBatchSize: 20}),
		ingredient.ParserConfig{MaxLineLength: 500, ConfidenceThreshold: 0.7}, nil)
}

func run(t *testing.T, cfg config.ImportConfig, parser *ingredient.Parser, text string) (*domain.ImportResult, *importer.Orchestrator) {
	t.Helper()
	o := importer.NewOrchestrator(cfg, nil, parser, nil)
	res, err := o.Run(context.Background(), domain.RawImportInput{Text: text}, nil)
	require.NoError(t, err)
	return res, o
}

func issueTypes(issues []domain.ValidationIssue) []domain.IssueType {
	out := make([]domain.IssueType, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Type)
	}
	return out
}

func TestOrchestrator_ChocolateCake(t *testing.T) {
	res, o := run(t, config.DefaultImportConfig(), fallbackParser(), cakeJSON)

	assert.True(t, res.Success)
	assert.Empty(t, res.Errors)
	require.NotNil(t, res.Recipe)
	assert.Equal(t, "Chocolate Cake", res.Recipe.Name)
	require.Len(t, res.Recipe.ParsedIngredients, 2)
	assert.Equal(t, "flour", res.Recipe.ParsedIngredients[0].IngredientName)
	assert.Equal(t, domain.ImportStateComplete, res.Metadata.FinalState)
	assert.True(t, res.Metadata.MinimumViableContent)
	assert.Equal(t, o.ID(), res.Metadata.ImportID)
	assert.Equal(t, []domain.ImportState{
		domain.ImportStateIdle,
		domain.ImportStatePreprocessing,
		domain.ImportStateValidating,
		domain.ImportStateExtracting,
		domain.ImportStateParsingIngredients,
		domain.ImportStateComplete,
	}, o.History())
}

func TestOrchestrator_SchemaMismatch(t *testing.T) {
	res, o := run(t, config.DefaultImportConfig(), nil, `{"@type":"Article","name":"Not a recipe"}`)

	assert.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, domain.IssueSchemaMismatch, res.Errors[0].Type)
	assert.Contains(t, res.Errors[0].Message, `"Article"`)
	assert.Nil(t, res.Recipe)
	assert.Equal(t, domain.ImportStateFailed, o.State())
}

func TestOrchestrator_OversizedInput(t *testing.T) {
	cfg := config.DefaultImportConfig()
	cfg.MaxInputBytes = 64
	// 30 runes but 60 bytes, plus the JSON wrapper.
	text := `{"name":"` + strings.Repeat("é", 30) + `"}`

	res, o := run(t, cfg, nil, text)
	assert.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, domain.IssueInvalidFormat, res.Errors[0].Type)
	assert.Contains(t, res.Errors[0].Message, "size")
	assert.Equal(t, []domain.ImportState{
		domain.ImportStateIdle, domain.ImportStatePreprocessing, domain.ImportStateFailed,
	}, o.History())
}

func TestOrchestrator_InvalidJSONCarriesHints(t *testing.T) {
	text := "```json\n{\"@type\": \"Recipe\", \"name\": \"Cake\",}\n```"
	res, _ := run(t, config.DefaultImportConfig(), nil, text)

	assert.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, domain.IssueInvalidFormat, res.Errors[0].Type)
	assert.Contains(t, res.Errors[0].Message, "line 1")
	assert.Contains(t, res.Errors[0].Details, "input is wrapped in a markdown code fence")
	assert.Contains(t, res.Errors[0].Details, "contains a trailing comma before a closing bracket")
}

func TestOrchestrator_EmptyInput(t *testing.T) {
	res, _ := run(t, config.DefaultImportConfig(), nil, "   ")
	assert.False(t, res.Success)
	assert.Equal(t, []domain.IssueType{domain.IssueInvalidFormat}, issueTypes(res.Errors))
}

func TestOrchestrator_EscapedConsoleOutput(t *testing.T) {
	text := `"{\"@type\":\"Recipe\",\"name\":\"Soup\",\"image\":\"https://x/soup.jpg\"}"`
	res, _ := run(t, config.DefaultImportConfig(), nil, text)

	assert.True(t, res.Success)
	assert.Equal(t, "Soup", res.Recipe.Name)
	assert.Contains(t, issueTypes(res.Warnings), domain.IssueMissingOptionalField)
}

func TestOrchestrator_MissingRequiredFields(t *testing.T) {
	text := `{"@type":"Recipe","name":"Stew","recipeIngredient":["1 onion"]}`

	t.Run("strict withholds the draft", func(t *testing.T) {
		res, _ := run(t, config.DefaultImportConfig(), fallbackParser(), text)
		assert.False(t, res.Success)
		assert.Equal(t, []domain.IssueType{domain.IssueMissingRequiredField}, issueTypes(res.Errors))
		assert.Nil(t, res.Recipe)
		assert.NotEmpty(t, res.Warnings)
		assert.False(t, res.Metadata.MinimumViableContent)
	})

	t.Run("lenient attaches the draft", func(t *testing.T) {
		cfg := config.DefaultImportConfig()
		cfg.Lenient = true
		res, o := run(t, cfg, fallbackParser(), text)
		assert.False(t, res.Success)
		require.NotNil(t, res.Recipe)
		assert.Equal(t, "Stew", res.Recipe.Name)
		assert.Nil(t, res.Recipe.ParsedIngredients)
		assert.Equal(t, domain.ImportStateFailed, o.State())
	})
}

func TestOrchestrator_NoIngredientsSkipsParsing(t *testing.T) {
	res, o := run(t, config.DefaultImportConfig(), fallbackParser(),
		`{"@type":"Recipe","name":"Toast","image":"https://x/t.jpg"}`)
	assert.True(t, res.Success)
	assert.NotContains(t, o.History(), domain.ImportStateParsingIngredients)
	assert.Nil(t, res.Recipe.ParsedIngredients)
}

func TestOrchestrator_ParsingDisabled(t *testing.T) {
	cfg := config.DefaultImportConfig()
	cfg.ParseIngredients = false
	res, o := run(t, cfg, fallbackParser(), cakeJSON)
	assert.True(t, res.Success)
	assert.NotContains(t, o.History(), domain.ImportStateParsingIngredients)
}

func TestOrchestrator_CancelledParsingStillCompletes(t *testing.T) {
	dec := new(mocks.MockIngredientDecomposer)
	parser := ingredient.NewParser(dec, batch.NewCoordinator(batch.Config{}),
		ingredient.ParserConfig{MaxLineLength: 500, ConfidenceThreshold: 0.7}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := importer.NewOrchestrator(config.DefaultImportConfig(), nil, parser, nil)
	res, err := o.Run(ctx, domain.RawImportInput{Text: cakeJSON}, nil)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, domain.ImportStateComplete, o.State())
	assert.Nil(t, res.Recipe.ParsedIngredients)
	assert.Contains(t, issueTypes(res.Warnings), domain.IssueCancelled)
	dec.AssertNotCalled(t, "Decompose", mock.Anything, mock.Anything)
}

func TestOrchestrator_DecomposerFailureFallsBack(t *testing.T) {
	dec := new(mocks.MockIngredientDecomposer)
	dec.On("Decompose", mock.Anything, []string{"2 cups flour", "1 cup sugar"}).
		Return(nil, errors.New("provider down"))
	parser := ingredient.NewParser(dec, batch.NewCoordinator(batch.Config{}),
		ingredient.ParserConfig{MaxLineLength: 500, ConfidenceThreshold: 0.7}, nil)

	var progress []domain.BatchProgress
	o := importer.NewOrchestrator(config.DefaultImportConfig(), nil, parser, nil)
	res, err := o.Run(context.Background(), domain.RawImportInput{Text: cakeJSON}, func(p domain.BatchProgress) {
		progress = append(progress, p)
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	require.Len(t, res.Recipe.ParsedIngredients, 2)
	assert.Equal(t, domain.ParsingMethodManual, res.Recipe.ParsedIngredients[0].ParsingMethod)
	assert.Equal(t, []string{"2 cups flour", "1 cup sugar"}, res.Metadata.FailedIngredients)
	assert.NotEmpty(t, progress)
}

func TestOrchestrator_SingleUse(t *testing.T) {
	o := importer.NewOrchestrator(config.DefaultImportConfig(), nil, nil, nil)
	_, err := o.Run(context.Background(), domain.RawImportInput{Text: cakeJSON}, nil)
	require.NoError(t, err)

	_, err = o.Run(context.Background(), domain.RawImportInput{Text: cakeJSON}, nil)
	assert.ErrorIs(t, err, domain.ErrOrchestratorUsed)
}

func TestOrchestrator_Metadata(t *testing.T) {
	id := uuid.MustParse("6f1c1c5e-8d0b-4a57-9d58-2b5f0d3c9a11")
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ticks := 0
	clock := func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks-1) * 40 * time.Millisecond)
	}

	o := importer.NewOrchestrator(config.DefaultImportConfig(), nil, nil, nil,
		importer.WithID(id), importer.WithClock(clock))
	res, err := o.Run(context.Background(), domain.RawImportInput{Text: " " + cakeJSON, SourceURL: "https://example.com/cake"}, nil)
	require.NoError(t, err)

	assert.Equal(t, id, res.Metadata.ImportID)
	assert.Equal(t, base, res.Metadata.ParsedAt)
	assert.Equal(t, int64(40), res.Metadata.ParsingDurationMs)
	assert.Equal(t, "https://example.com/cake", res.Metadata.SourceURL)
	assert.Equal(t, cakeJSON, res.Metadata.RawJSONLD)
	assert.Equal(t, "https://example.com/cake", res.Recipe.SourceURL)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, importer.CanTransition(domain.ImportStateIdle, domain.ImportStatePreprocessing))
	assert.True(t, importer.CanTransition(domain.ImportStateExtracting, domain.ImportStateComplete))
	assert.False(t, importer.CanTransition(domain.ImportStateIdle, domain.ImportStateComplete))
	assert.False(t, importer.CanTransition(domain.ImportStateParsingIngredients, domain.ImportStateFailed))
	assert.False(t, importer.CanTransition(domain.ImportStateComplete, domain.ImportStateIdle))
	assert.False(t, importer.CanTransition(domain.ImportStateFailed, domain.ImportStatePreprocessing))
}
