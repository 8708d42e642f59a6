// Package decomposer provides the external ingredient decomposition service:
// HTTP providers, a rate-limit aware fallback chain, a dual-provider merge and
// a cache wrapper, all behind port.IngredientDecomposer.
package decomposer

import (
	"sort"

	"github.com/cockroachdb/errors"

	"recipekit/internal/config"
	"recipekit/internal/port"
)

// ProviderFactory creates an IngredientDecomposer from a provider config.
type ProviderFactory func(cfg *config.ProviderConfig) (port.IngredientDecomposer, error)

// registry of provider factories, populated explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// RegisteredProviders returns the registered provider names, sorted.
func RegisteredProviders() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDecomposer creates a decomposer from a provider config using the registered factory.
func NewDecomposer(cfg *config.ProviderConfig) (port.IngredientDecomposer, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, errors.Newf("unknown decomposer provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
