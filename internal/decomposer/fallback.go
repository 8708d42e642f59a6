package decomposer

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"recipekit/internal/domain"
	"recipekit/internal/logger"
	"recipekit/internal/port"
)

// circuitState tracks rate-limit backoff for a single provider.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackDecomposer tries providers in order, skipping those with open circuits.
// It implements port.IngredientDecomposer.
type FallbackDecomposer struct {
	decomposers []port.IngredientDecomposer
	circuits    []*circuitState
	names       []string
	log         *logger.Logger
	now         func() time.Time
}

// NewFallbackDecomposer creates a FallbackDecomposer from an ordered list of providers and their names.
func NewFallbackDecomposer(decomposers []port.IngredientDecomposer, names []string, log *logger.Logger) *FallbackDecomposer {
	circuits := make([]*circuitState, len(decomposers))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackDecomposer{
		decomposers: decomposers,
		circuits:    circuits,
		names:       names,
		log:         logger.OrNop(log).With("component", "decomposer.fallback"),
		now:         time.Now,
	}
}

func (f *FallbackDecomposer) Decompose(ctx context.Context, lines []string) ([]domain.RawDecomposition, error) {
	now := f.now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, d := range f.decomposers {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			f.log.Debug("skipping provider", "provider", f.names[i], "circuit_open_until", resetAt.Format(time.RFC3339))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := d.Decompose(ctx, lines)
		if err == nil {
			return out, nil
		}

		f.log.Warn("provider failed", "provider", f.names[i], "error", err)
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	// Either every provider was skipped or every attempt was rate limited.
	if lastErr == nil || allRateLimited {
		retryAfter := earliestReset.Sub(now)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", len(lines), errors.New("all decomposers rate limited"), retryAfter)
	}

	return nil, errors.Wrap(lastErr, "all decomposers failed")
}
