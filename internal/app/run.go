package app

import (
	"context"
	"fmt"

	"github.com/korpuslab/taskweave/internal/config"
	"github.com/korpuslab/taskweave/internal/corpus"
	"github.com/korpuslab/taskweave/internal/ctxlog"
	"github.com/korpuslab/taskweave/internal/plan"
	"github.com/korpuslab/taskweave/internal/printer"
	"github.com/korpuslab/taskweave/internal/task"
)

// Run executes one graph-construction pass: corpus config in, computed
// plan and listings out.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.")

	cfg, missing, err := config.Load(ctx, a.cfg.ConfigPath)
	if err != nil {
		return err
	}
	if a.cfg.Language != "" {
		if cfg.Metadata == nil {
			cfg.Metadata = &config.Metadata{}
		}
		cfg.Metadata.Language = a.cfg.Language
	}

	crp := corpus.New(cfg)
	env := &task.Env{
		Config:        cfg,
		ConfigMissing: missing,
		Layout:        cfg.Layout(),
		Documents:     crp.Documents,
	}

	storage := plan.NewStorage()
	entries := a.registry.Entries()
	if len(entries) == 0 {
		a.logger.Warn("Catalog is empty, nothing to build.")
	}
	for _, entry := range entries {
		t, err := task.Build(ctx, entry, env)
		if err != nil {
			return fmt.Errorf("failed to build task graph: %w", err)
		}
		if t == nil {
			continue
		}
		storage.Add(t)
	}
	a.logger.Debug("Task construction complete.", "tasks", len(storage.Tasks))

	p, err := plan.Compute(ctx, storage, plan.Options{StrictOrder: a.cfg.StrictOrder})
	if err != nil {
		return err
	}
	graph, err := p.Graph()
	if err != nil {
		return err
	}
	a.logger.Info("Plan ready.",
		"tasks", len(storage.Tasks),
		"nodes", graph.Len(),
		"precedence_edges", len(p.Edges),
		"collisions", len(p.Collisions))

	printer.Collisions(a.errOut, p.Collisions)

	switch a.cfg.List {
	case "targets":
		printer.Targets(a.out, storage)
	case "annotations":
		printer.Annotations(a.out, storage)
	}

	a.logger.Debug("App.Run finished.")
	return nil
}
