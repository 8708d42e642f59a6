package ingredient

import (
	"context"
	"time"
	"unicode/utf8"

	"recipekit/internal/batch"
	"recipekit/internal/domain"
	"recipekit/internal/logger"
	"recipekit/internal/port"
)

// Parser decomposes ingredient lists through an external decomposer, falling
// back to ParseFallback for every line the decomposer could not handle.
type Parser struct {
	decomposer    port.IngredientDecomposer
	coordinator   *batch.Coordinator
	maxLineLength int
	threshold     float64
	log           *logger.Logger
}

// ParserConfig holds the limits applied by Parser.
type ParserConfig struct {
	MaxLineLength       int
	ConfidenceThreshold float64
}

// NewParser creates a Parser. A nil decomposer makes every line use the fallback.
func NewParser(decomposer port.IngredientDecomposer, coordinator *batch.Coordinator, cfg ParserConfig, log *logger.Logger) *Parser {
	return &Parser{
		decomposer:    decomposer,
		coordinator:   coordinator,
		maxLineLength: cfg.MaxLineLength,
		threshold:     cfg.ConfidenceThreshold,
		log:           logger.OrNop(log).With("component", "ingredient"),
	}
}

// ParseOutcome is index-aligned with the input lines.
type ParseOutcome struct {
	Ingredients []domain.ParsedIngredient
	// Failed holds the original text of lines the decomposer could not handle.
	Failed []string
	// DecomposerUsed is false when no line reached the external decomposer.
	DecomposerUsed bool
	Duration       time.Duration
}

// ParseAll decomposes every line. The only error is cancellation (wrapping
// domain.ErrCancelled) or a failure to schedule work; decomposition failures
// are absorbed per line.
func (p *Parser) ParseAll(ctx context.Context, lines []string, onProgress batch.ProgressFunc) (*ParseOutcome, error) {
	start := time.Now()
	out := &ParseOutcome{Ingredients: make([]domain.ParsedIngredient, len(lines))}
	done := make([]bool, len(lines))
	failed := make([]bool, len(lines))

	var sendIdx []int
	var send []string
	for i, line := range lines {
		if p.decomposer == nil || (p.maxLineLength > 0 && utf8.RuneCountInString(line) > p.maxLineLength) {
			continue
		}
		sendIdx = append(sendIdx, i)
		send = append(send, line)
	}

	if len(send) > 0 {
		res, err := p.coordinator.Run(ctx, send, p.decomposer.Decompose, batch.RunOptions{OnProgress: onProgress})
		if err != nil {
			return nil, err
		}
		out.DecomposerUsed = true
		for _, item := range res.Items {
			idx := sendIdx[item.Index]
			parsed, err := FromDecomposition(lines[idx], item.Decomposition, p.threshold)
			if err != nil {
				p.log.Warn("rejected decomposition", "line", lines[idx], "error", err)
				failed[idx] = true
				continue
			}
			out.Ingredients[idx] = parsed
			done[idx] = true
		}
		for _, f := range res.Failed {
			failed[sendIdx[f.Index]] = true
		}
	}

	for i, line := range lines {
		if !done[i] {
			out.Ingredients[i] = ParseFallback(line)
		}
		if failed[i] {
			out.Failed = append(out.Failed, line)
		}
	}
	out.Duration = time.Since(start)
	return out, nil
}
