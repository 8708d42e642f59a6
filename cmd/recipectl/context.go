package main

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"recipekit/internal/app"
	"recipekit/internal/config"
	"recipekit/internal/logger"
)

type commandContext struct {
	logLevel *string

	appOnce sync.Once
	app     *app.App
	appErr  error
}

func newCommandContext(logLevel *string) *commandContext {
	return &commandContext{logLevel: logLevel}
}

// ensureApp loads configuration and wires the pipeline once per invocation.
func (c *commandContext) ensureApp() (*app.App, error) {
	c.appOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			c.appErr = errors.Wrap(err, "loading config")
			return
		}
		log, err := logger.New(cfg.Log.Mode, strings.TrimSpace(*c.logLevel))
		if err != nil {
			c.appErr = errors.Wrap(err, "building logger")
			return
		}
		c.app, c.appErr = app.New(cfg, log)
	})
	return c.app, c.appErr
}

func (c *commandContext) close() {
	if c.app != nil {
		_ = c.app.Close()
	}
}

// readInput reads the named file, or stdin for "-" or no argument.
func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(err, "reading stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", args[0])
	}
	return string(data), nil
}
