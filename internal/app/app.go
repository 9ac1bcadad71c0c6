// Package app wires the engine together: it loads the corpus
// configuration, compiles the catalog into a plan, and reports the
// result. Execution of the plan is left to an external scheduler.
package app

import (
	"io"
	"log/slog"

	"github.com/korpuslab/taskweave/internal/catalog"
)

// App is one configured engine instance.
type App struct {
	cfg      *Config
	registry *catalog.Registry
	logger   *slog.Logger
	out      io.Writer
	errOut   io.Writer
}

// New creates an App over a validated config and a populated catalog.
// Listings go to outW, logs to errW.
func New(cfg *Config, registry *catalog.Registry, outW, errW io.Writer) *App {
	return &App{
		cfg:      cfg,
		registry: registry,
		logger:   newLogger(cfg.LogLevel, cfg.LogFormat, errW),
		out:      outW,
		errOut:   errW,
	}
}
