package decomposer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"recipekit/internal/domain"
	"recipekit/internal/logger"
	"recipekit/internal/port"
)

// CachedDecomposer answers lines from a DecompositionCache and sends only the
// misses to the wrapped decomposer. Cache failures degrade to a full call.
type CachedDecomposer struct {
	next  port.IngredientDecomposer
	cache port.DecompositionCache
	log   *logger.Logger
}

// NewCachedDecomposer wraps next with cache.
func NewCachedDecomposer(next port.IngredientDecomposer, cache port.DecompositionCache, log *logger.Logger) *CachedDecomposer {
	return &CachedDecomposer{
		next:  next,
		cache: cache,
		log:   logger.OrNop(log).With("component", "decomposer.cache"),
	}
}

// CacheKey is the cache key for an ingredient line: a hash of its
// lowercased, whitespace-collapsed form.
func CacheKey(line string) string {
	norm := strings.Join(strings.Fields(strings.ToLower(line)), " ")
	sum := sha256.Sum256([]byte(norm))
	return hex.EncodeToString(sum[:])
}

func (c *CachedDecomposer) Decompose(ctx context.Context, lines []string) ([]domain.RawDecomposition, error) {
	keys := make([]string, len(lines))
	for i, line := range lines {
		keys[i] = CacheKey(line)
	}

	hits, err := c.cache.GetMany(ctx, keys)
	if err != nil {
		c.log.Warn("cache read failed", "error", err)
		hits = nil
	}

	out := make([]domain.RawDecomposition, len(lines))
	var missIdx []int
	var misses []string
	for i, key := range keys {
		if d, ok := hits[key]; ok {
			out[i] = d
			continue
		}
		missIdx = append(missIdx, i)
		misses = append(misses, lines[i])
	}
	if len(misses) == 0 {
		return out, nil
	}

	fresh, err := c.next.Decompose(ctx, misses)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(misses) {
		return nil, domain.ErrDecompositionMismatch
	}

	entries := make(map[string]domain.RawDecomposition, len(fresh))
	for j, d := range fresh {
		i := missIdx[j]
		out[i] = d
		entries[keys[i]] = d
	}
	if err := c.cache.SetMany(ctx, entries); err != nil {
		c.log.Warn("cache write failed", "error", err)
	}
	c.log.Debug("decomposed", "lines", len(lines), "cache_hits", len(lines)-len(misses))
	return out, nil
}
