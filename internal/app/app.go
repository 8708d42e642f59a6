// Package app assembles the import pipeline from configuration. Both the
// HTTP server and the CLI build their dependencies through New.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"golang.org/x/time/rate"

	"recipekit/internal/batch"
	"recipekit/internal/cache/memory"
	"recipekit/internal/cache/redis"
	"recipekit/internal/config"
	"recipekit/internal/decomposer/providers"
	"recipekit/internal/importer"
	"recipekit/internal/ingredient"
	"recipekit/internal/logger"
	"recipekit/internal/port"
	"recipekit/internal/repository/postgres"
	s3storage "recipekit/internal/storage/s3"
	"recipekit/internal/validator"
)

// App holds the wired components. DB is nil when import history is disabled.
type App struct {
	Config  *config.Config
	Service importer.Service
	Parser  *ingredient.Parser
	DB      *sqlx.DB

	closers []func() error
	log     *logger.Logger
}

// New wires the cache, decomposer chain, batch coordinator, parser, optional
// history store and archive, and the import service.
func New(cfg *config.Config, log *logger.Logger) (*App, error) {
	log = logger.OrNop(log)
	if err := cfg.Import.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid import config")
	}
	a := &App{Config: cfg, log: log}

	cache, err := a.newCache(&cfg.Cache)
	if err != nil {
		return nil, a.fail(err)
	}

	providers.RegisterAll()
	dec, err := providers.Build(&cfg.Decomposer, cache, log)
	if err != nil {
		return nil, a.fail(errors.Wrap(err, "building decomposer"))
	}
	if dec == nil {
		log.Warn("no decomposition provider configured; ingredients use the fallback parser")
	}

	coordOpts := []batch.Option{batch.WithLogger(log)}
	if l := Limiter(cfg.Decomposer.RequestsPerMinute); l != nil {
		coordOpts = append(coordOpts, batch.WithLimiter(l))
	}
	coordinator := batch.NewCoordinator(batch.Config{
		MaxBatchSize:    cfg.Import.MaxBatchSize,
		DefaultEstimate: cfg.Import.DefaultBatchEstimate(),
	}, coordOpts...)

	a.Parser = ingredient.NewParser(dec, coordinator, ingredient.ParserConfig{
		MaxLineLength:       cfg.Import.MaxIngredientLength,
		ConfidenceThreshold: cfg.Import.ConfidenceThreshold,
	}, log)

	deps := importer.ServiceDeps{
		Config:        cfg.Import,
		Engine:        validator.NewDefaultEngine(),
		Parser:        a.Parser,
		ArchivePrefix: cfg.Archive.Prefix,
		Logger:        log,
	}

	if cfg.DB.Enabled {
		db, err := postgres.NewDB(context.Background(), &cfg.DB)
		if err != nil {
			return nil, a.fail(err)
		}
		a.DB = db
		a.closers = append(a.closers, db.Close)
		deps.LogRepo = postgres.NewImportLogRepo(db)
	}

	if cfg.Archive.Enabled {
		store, err := s3storage.NewS3Client(&cfg.Archive)
		if err != nil {
			return nil, a.fail(errors.Wrap(err, "initializing archive"))
		}
		deps.Archive = store
	}

	a.Service = importer.NewService(deps)
	return a, nil
}

// Limiter returns a limiter allowing rpm calls per minute, or nil when rpm is
// not positive.
func Limiter(rpm int) *rate.Limiter {
	if rpm <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
}

func (a *App) newCache(cfg *config.CacheConfig) (port.DecompositionCache, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "none":
		return nil, nil
	case "memory":
		return memory.New(cfg.TTL), nil
	case "redis":
		c, err := redis.New(cfg, a.log)
		if err != nil {
			return nil, errors.Wrap(err, "connecting decomposition cache")
		}
		a.closers = append(a.closers, c.Close)
		return c, nil
	default:
		return nil, errors.Newf("unknown cache provider: %s", cfg.Provider)
	}
}

// fail releases anything opened so far and returns err.
func (a *App) fail(err error) error {
	_ = a.Close()
	return err
}

// Close releases connections in reverse order of opening.
func (a *App) Close() error {
	var errs error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = errors.CombineErrors(errs, err)
		}
	}
	a.closers = nil
	return errs
}
