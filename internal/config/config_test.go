package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipekit/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 2*1024*1024, cfg.Import.MaxInputBytes)
	assert.Equal(t, 20, cfg.Import.MaxBatchSize)
	assert.Equal(t, 500, cfg.Import.MaxIngredientLength)
	assert.InDelta(t, 0.7, cfg.Import.ConfidenceThreshold, 1e-9)
	assert.True(t, cfg.Import.ParseIngredients)
	assert.False(t, cfg.Import.Lenient)
	assert.Equal(t, "fallback", cfg.Decomposer.Mode)
	assert.Equal(t, "memory", cfg.Cache.Provider)
	assert.Equal(t, 720*time.Hour, cfg.Cache.TTL)
	assert.False(t, cfg.DB.Enabled)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RECIPEKIT_IMPORT_MAX_BATCH_SIZE", "8")
	t.Setenv("RECIPEKIT_IMPORT_LENIENT", "true")
	t.Setenv("RECIPEKIT_DECOMPOSER_PRIMARY_PROVIDER", "claude")
	t.Setenv("RECIPEKIT_DECOMPOSER_PRIMARY_API_KEY", "sk-test")
	t.Setenv("RECIPEKIT_DECOMPOSER_SECONDARY_PROVIDER", "gemini")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Import.MaxBatchSize)
	assert.True(t, cfg.Import.Lenient)
	require.NotNil(t, cfg.Decomposer.PrimaryConfig())
	assert.Equal(t, "claude", cfg.Decomposer.PrimaryConfig().Provider)
	assert.Equal(t, "sk-test", cfg.Decomposer.PrimaryConfig().APIKey)
	assert.Equal(t, 60, cfg.Decomposer.PrimaryConfig().TimeoutSecs)
	assert.Nil(t, cfg.Decomposer.TertiaryConfig())
	assert.Len(t, cfg.Decomposer.Configured(), 2)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "9090")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestLoad_InvalidThreshold(t *testing.T) {
	t.Setenv("RECIPEKIT_IMPORT_CONFIDENCE_THRESHOLD", "1.5")
	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confidence_threshold")
}

func TestImportConfig_Validate(t *testing.T) {
	assert.NoError(t, config.DefaultImportConfig().Validate())

	bad := config.DefaultImportConfig()
	bad.MaxBatchSize = 0
	assert.Error(t, bad.Validate())

	bad = config.DefaultImportConfig()
	bad.MaxInputBytes = -1
	assert.Error(t, bad.Validate())
}

func TestDecomposerConfig_NoneConfigured(t *testing.T) {
	cfg := config.DecomposerConfig{}
	assert.Nil(t, cfg.PrimaryConfig())
	assert.Nil(t, cfg.SecondaryConfig())
	assert.Empty(t, cfg.Configured())
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{User: "u", Password: "p", Host: "h", Port: 5432, Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", db.DSN())
}

func TestImportConfig_DefaultBatchEstimate(t *testing.T) {
	assert.Equal(t, 3*time.Second, config.DefaultImportConfig().DefaultBatchEstimate())
}
