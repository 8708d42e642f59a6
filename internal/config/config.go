package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Import     ImportConfig
	Decomposer DecomposerConfig
	Cache      CacheConfig
	DB         DBConfig
	Archive    ArchiveConfig
	CORS       CORSConfig
}

// ImportConfig holds the size and format limits of the import pipeline.
// These are not negotiable per call.
type ImportConfig struct {
	MaxInputBytes            int     `mapstructure:"max_input_bytes"`
	MaxBatchSize             int     `mapstructure:"max_batch_size"`
	MaxIngredientLength      int     `mapstructure:"max_ingredient_length"`
	ConfidenceThreshold      float64 `mapstructure:"confidence_threshold"`
	DefaultBatchEstimateMs   int     `mapstructure:"default_batch_estimate_ms"`
	Lenient                  bool    `mapstructure:"lenient"`
	ParseIngredients         bool    `mapstructure:"parse_ingredients"`
	MaxInstructionReferences int     `mapstructure:"max_instruction_references"`
}

// DefaultImportConfig returns the documented defaults.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		MaxInputBytes:            2 * 1024 * 1024,
		MaxBatchSize:             20,
		MaxIngredientLength:      500,
		ConfidenceThreshold:      0.7,
		DefaultBatchEstimateMs:   3000,
		ParseIngredients:         true,
		MaxInstructionReferences: 20,
	}
}

// Validate rejects limits that would make the pipeline misbehave.
func (c ImportConfig) Validate() error {
	switch {
	case c.MaxInputBytes <= 0:
		return errors.New("import.max_input_bytes must be positive")
	case c.MaxBatchSize <= 0:
		return errors.New("import.max_batch_size must be positive")
	case c.MaxIngredientLength <= 0:
		return errors.New("import.max_ingredient_length must be positive")
	case c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1:
		return errors.Newf("import.confidence_threshold must be within [0,1], got %v", c.ConfidenceThreshold)
	case c.DefaultBatchEstimateMs < 0:
		return errors.New("import.default_batch_estimate_ms must not be negative")
	case c.MaxInstructionReferences <= 0:
		return errors.New("import.max_instruction_references must be positive")
	}
	return nil
}

// DefaultBatchEstimate returns the per-batch estimate used before any batch completes.
func (c ImportConfig) DefaultBatchEstimate() time.Duration {
	return time.Duration(c.DefaultBatchEstimateMs) * time.Millisecond
}

// ProviderConfig holds settings for a single AI decomposition provider.
type ProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// DecomposerConfig holds AI ingredient decomposition settings with multi-provider support.
type DecomposerConfig struct {
	// Mode is "fallback" (try providers in order) or "merge" (primary and secondary in parallel).
	Mode              string         `mapstructure:"mode"`
	RequestsPerMinute int            `mapstructure:"requests_per_minute"`
	Primary           ProviderConfig `mapstructure:"primary"`
	Secondary         ProviderConfig `mapstructure:"secondary"`
	Tertiary          ProviderConfig `mapstructure:"tertiary"`
}

// PrimaryConfig returns the primary provider config, or nil if not configured.
func (d *DecomposerConfig) PrimaryConfig() *ProviderConfig {
	if d.Primary.Provider != "" {
		return &d.Primary
	}
	return nil
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (d *DecomposerConfig) SecondaryConfig() *ProviderConfig {
	if d.Secondary.Provider != "" {
		return &d.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (d *DecomposerConfig) TertiaryConfig() *ProviderConfig {
	if d.Tertiary.Provider != "" {
		return &d.Tertiary
	}
	return nil
}

// Configured returns the configured providers in priority order.
func (d *DecomposerConfig) Configured() []*ProviderConfig {
	var out []*ProviderConfig
	for _, p := range []*ProviderConfig{d.PrimaryConfig(), d.SecondaryConfig(), d.TertiaryConfig()} {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// CacheConfig selects the decomposition cache backend.
type CacheConfig struct {
	Provider      string        `mapstructure:"provider"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings for the import log.
type DBConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// ArchiveConfig holds the S3 settings for archiving raw pasted payloads.
type ArchiveConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the RECIPEKIT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RECIPEKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultImportConfig()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.mode", "development")
	v.SetDefault("log.level", "debug")

	// Import defaults
	v.SetDefault("import.max_input_bytes", defaults.MaxInputBytes)
	v.SetDefault("import.max_batch_size", defaults.MaxBatchSize)
	v.SetDefault("import.max_ingredient_length", defaults.MaxIngredientLength)
	v.SetDefault("import.confidence_threshold", defaults.ConfidenceThreshold)
	v.SetDefault("import.default_batch_estimate_ms", defaults.DefaultBatchEstimateMs)
	v.SetDefault("import.lenient", defaults.Lenient)
	v.SetDefault("import.parse_ingredients", defaults.ParseIngredients)
	v.SetDefault("import.max_instruction_references", defaults.MaxInstructionReferences)

	// Decomposer defaults
	v.SetDefault("decomposer.mode", "fallback")
	v.SetDefault("decomposer.requests_per_minute", 0)
	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("decomposer."+tier+".provider", "")
		v.SetDefault("decomposer."+tier+".api_key", "")
		v.SetDefault("decomposer."+tier+".default_model", "")
		v.SetDefault("decomposer."+tier+".timeout_secs", 60)
	}

	// Cache defaults
	v.SetDefault("cache.provider", "memory")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.ttl", "720h")

	// DB defaults
	v.SetDefault("db.enabled", false)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "recipekit")
	v.SetDefault("db.password", "recipekit_secret")
	v.SetDefault("db.name", "recipekit_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// Archive defaults
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.region", "us-east-1")
	v.SetDefault("archive.bucket", "recipekit-imports")
	v.SetDefault("archive.endpoint", "")
	v.SetDefault("archive.prefix", "imports/")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                       "RECIPEKIT_SERVER_PORT",
		"server.read_timeout":               "RECIPEKIT_SERVER_READ_TIMEOUT",
		"server.write_timeout":              "RECIPEKIT_SERVER_WRITE_TIMEOUT",
		"server.environment":                "RECIPEKIT_SERVER_ENVIRONMENT",
		"log.mode":                          "RECIPEKIT_LOG_MODE",
		"log.level":                         "RECIPEKIT_LOG_LEVEL",
		"import.max_input_bytes":            "RECIPEKIT_IMPORT_MAX_INPUT_BYTES",
		"import.max_batch_size":             "RECIPEKIT_IMPORT_MAX_BATCH_SIZE",
		"import.max_ingredient_length":      "RECIPEKIT_IMPORT_MAX_INGREDIENT_LENGTH",
		"import.confidence_threshold":       "RECIPEKIT_IMPORT_CONFIDENCE_THRESHOLD",
		"import.default_batch_estimate_ms":  "RECIPEKIT_IMPORT_DEFAULT_BATCH_ESTIMATE_MS",
		"import.lenient":                    "RECIPEKIT_IMPORT_LENIENT",
		"import.parse_ingredients":          "RECIPEKIT_IMPORT_PARSE_INGREDIENTS",
		"import.max_instruction_references": "RECIPEKIT_IMPORT_MAX_INSTRUCTION_REFERENCES",
		"decomposer.mode":                   "RECIPEKIT_DECOMPOSER_MODE",
		"decomposer.requests_per_minute":    "RECIPEKIT_DECOMPOSER_REQUESTS_PER_MINUTE",
		"cache.provider":                    "RECIPEKIT_CACHE_PROVIDER",
		"cache.redis_addr":                  "RECIPEKIT_CACHE_REDIS_ADDR",
		"cache.redis_password":              "RECIPEKIT_CACHE_REDIS_PASSWORD",
		"cache.redis_db":                    "RECIPEKIT_CACHE_REDIS_DB",
		"cache.ttl":                         "RECIPEKIT_CACHE_TTL",
		"db.enabled":                        "RECIPEKIT_DB_ENABLED",
		"db.host":                           "RECIPEKIT_DB_HOST",
		"db.port":                           "RECIPEKIT_DB_PORT",
		"db.user":                           "RECIPEKIT_DB_USER",
		"db.password":                       "RECIPEKIT_DB_PASSWORD",
		"db.name":                           "RECIPEKIT_DB_NAME",
		"db.sslmode":                        "RECIPEKIT_DB_SSLMODE",
		"db.max_open":                       "RECIPEKIT_DB_MAX_OPEN",
		"db.max_idle":                       "RECIPEKIT_DB_MAX_IDLE",
		"archive.enabled":                   "RECIPEKIT_ARCHIVE_ENABLED",
		"archive.region":                    "RECIPEKIT_ARCHIVE_REGION",
		"archive.bucket":                    "RECIPEKIT_ARCHIVE_BUCKET",
		"archive.endpoint":                  "RECIPEKIT_ARCHIVE_ENDPOINT",
		"archive.access_key":                "RECIPEKIT_ARCHIVE_ACCESS_KEY",
		"archive.secret_key":                "RECIPEKIT_ARCHIVE_SECRET_KEY",
		"archive.prefix":                    "RECIPEKIT_ARCHIVE_PREFIX",
		"cors.allowed_origins":              "RECIPEKIT_CORS_ALLOWED_ORIGINS",
	}
	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		upper := strings.ToUpper(tier)
		for _, field := range []string{"provider", "api_key", "default_model", "timeout_secs"} {
			envBindings["decomposer."+tier+"."+field] = "RECIPEKIT_DECOMPOSER_" + upper + "_" + strings.ToUpper(field)
		}
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if RECIPEKIT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("RECIPEKIT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Mode:  v.GetString("log.mode"),
		Level: v.GetString("log.level"),
	}
	cfg.Import = ImportConfig{
		MaxInputBytes:            v.GetInt("import.max_input_bytes"),
		MaxBatchSize:             v.GetInt("import.max_batch_size"),
		MaxIngredientLength:      v.GetInt("import.max_ingredient_length"),
		ConfidenceThreshold:      v.GetFloat64("import.confidence_threshold"),
		DefaultBatchEstimateMs:   v.GetInt("import.default_batch_estimate_ms"),
		Lenient:                  v.GetBool("import.lenient"),
		ParseIngredients:         v.GetBool("import.parse_ingredients"),
		MaxInstructionReferences: v.GetInt("import.max_instruction_references"),
	}
	if err := cfg.Import.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid import config")
	}

	provider := func(tier string) ProviderConfig {
		return ProviderConfig{
			Provider:     v.GetString("decomposer." + tier + ".provider"),
			APIKey:       v.GetString("decomposer." + tier + ".api_key"),
			DefaultModel: v.GetString("decomposer." + tier + ".default_model"),
			TimeoutSecs:  v.GetInt("decomposer." + tier + ".timeout_secs"),
		}
	}
	cfg.Decomposer = DecomposerConfig{
		Mode:              v.GetString("decomposer.mode"),
		RequestsPerMinute: v.GetInt("decomposer.requests_per_minute"),
		Primary:           provider("primary"),
		Secondary:         provider("secondary"),
		Tertiary:          provider("tertiary"),
	}

	cfg.Cache = CacheConfig{
		Provider:      v.GetString("cache.provider"),
		RedisAddr:     v.GetString("cache.redis_addr"),
		RedisPassword: v.GetString("cache.redis_password"),
		RedisDB:       v.GetInt("cache.redis_db"),
		TTL:           v.GetDuration("cache.ttl"),
	}
	cfg.DB = DBConfig{
		Enabled:  v.GetBool("db.enabled"),
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Archive = ArchiveConfig{
		Enabled:   v.GetBool("archive.enabled"),
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
		Prefix:    v.GetString("archive.prefix"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}
