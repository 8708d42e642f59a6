// Package providers registers the HTTP decomposition providers and assembles
// the configured decomposer chain.
package providers

import (
	"github.com/cockroachdb/errors"

	"recipekit/internal/config"
	"recipekit/internal/decomposer"
	"recipekit/internal/decomposer/claude"
	"recipekit/internal/decomposer/gemini"
	"recipekit/internal/decomposer/openai"
	"recipekit/internal/logger"
	"recipekit/internal/port"
)

// RegisterAll registers the claude, gemini and openai factories.
func RegisterAll() {
	decomposer.RegisterProvider("claude", func(cfg *config.ProviderConfig) (port.IngredientDecomposer, error) {
		return claude.NewDecomposer(cfg), nil
	})
	decomposer.RegisterProvider("gemini", func(cfg *config.ProviderConfig) (port.IngredientDecomposer, error) {
		return gemini.NewDecomposer(cfg), nil
	})
	decomposer.RegisterProvider("openai", func(cfg *config.ProviderConfig) (port.IngredientDecomposer, error) {
		return openai.NewDecomposer(cfg), nil
	})
}

// Build assembles the decomposer described by cfg. It returns nil with no
// error when no provider is configured; callers then use the fallback parser.
// A non-nil cache wraps the whole chain.
func Build(cfg *config.DecomposerConfig, cache port.DecompositionCache, log *logger.Logger) (port.IngredientDecomposer, error) {
	configured := cfg.Configured()
	if len(configured) == 0 {
		return nil, nil
	}

	var chain port.IngredientDecomposer
	switch cfg.Mode {
	case "merge":
		if len(configured) < 2 {
			return nil, errors.New("decomposer merge mode requires primary and secondary providers")
		}
		primary, err := decomposer.NewDecomposer(configured[0])
		if err != nil {
			return nil, errors.Wrap(err, "creating primary decomposer")
		}
		secondary, err := decomposer.NewDecomposer(configured[1])
		if err != nil {
			return nil, errors.Wrap(err, "creating secondary decomposer")
		}
		chain = decomposer.NewMergeDecomposer(primary, secondary, log)
	case "", "fallback":
		decs := make([]port.IngredientDecomposer, 0, len(configured))
		names := make([]string, 0, len(configured))
		for _, pc := range configured {
			d, err := decomposer.NewDecomposer(pc)
			if err != nil {
				return nil, errors.Wrapf(err, "creating %s decomposer", pc.Provider)
			}
			decs = append(decs, d)
			names = append(names, pc.Provider)
		}
		chain = decomposer.NewFallbackDecomposer(decs, names, log)
	default:
		return nil, errors.Newf("unknown decomposer mode: %s", cfg.Mode)
	}

	if cache != nil {
		chain = decomposer.NewCachedDecomposer(chain, cache, log)
	}
	return chain, nil
}
