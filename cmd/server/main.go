// @title        RecipeKit API
// @version      1.0
// @description  Recipe import from pasted schema.org JSON-LD, ingredient parsing, scaling and shopping-list export.
// @BasePath     /api/v1
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"recipekit/internal/app"
	"recipekit/internal/config"
	"recipekit/internal/handler"
	"recipekit/internal/logger"
	"recipekit/internal/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return errors.Wrap(err, "failed to build logger")
	}
	defer log.Sync()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := app.New(cfg, log)
	if err != nil {
		return errors.Wrap(err, "failed to initialize")
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("closing resources", "error", err)
		}
	}()

	// Initialize handlers
	r := router.Setup(router.Handlers{
		Recipe:     handler.NewRecipeHandler(a.Service, cfg.Import),
		Ingredient: handler.NewIngredientHandler(a.Service),
		History:    handler.NewHistoryHandler(a.Service),
		Health:     handler.NewHealthHandler(a.DB),
	}, cfg.CORS.AllowedOrigins, log)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", cfg.Server.Port, "history", a.DB != nil, "archive", cfg.Archive.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrap(err, "server failed")
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "graceful shutdown")
	}
	return nil
}
