package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipekit/internal/logger"
)

func TestNew_DevelopmentAndProduction(t *testing.T) {
	for _, mode := range []string{"development", "production"} {
		l, err := logger.New(mode, "debug")
		require.NoError(t, err)
		assert.NotNil(t, l.SugaredLogger)
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	l, err := logger.New("development", "chatty")
	require.NoError(t, err)
	assert.False(t, l.SugaredLogger.Desugar().Core().Enabled(-1))
	assert.True(t, l.SugaredLogger.Desugar().Core().Enabled(0))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, logger.OrNop(nil))
	l := logger.Nop()
	assert.Same(t, l, logger.OrNop(l))
	l.With("component", "test").Info("discarded")
}
