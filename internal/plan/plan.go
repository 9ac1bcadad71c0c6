package plan

import (
	"context"
	"fmt"
	"strings"

	"github.com/korpuslab/taskweave/internal/ctxlog"
	"github.com/korpuslab/taskweave/internal/dag"
	"github.com/korpuslab/taskweave/internal/task"
)

// Options control plan computation.
type Options struct {
	// StrictOrder turns unresolved output collisions from warnings into
	// a hard error.
	StrictOrder bool
}

// Plan is the complete result of graph construction: the classified task
// set, the precedence partial order, and any unresolved collisions.
type Plan struct {
	Storage    *Storage
	Edges      []Edge
	Collisions []Collision
}

// Compute resolves the ordering over the stored tasks. Collisions are
// logged as warnings naming both tasks and the overlapping outputs;
// under Options.StrictOrder they fail the build instead.
func Compute(ctx context.Context, storage *Storage, opts Options) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)

	edges, collisions := ResolveOrder(storage.Tasks)
	for _, c := range collisions {
		logger.Warn("Tasks have common outputs, set their 'order' values to disambiguate.",
			"task_a", c.A.TargetName(), "task_b", c.B.TargetName(),
			"outputs", strings.Join(c.Outputs, ", "))
	}
	if opts.StrictOrder && len(collisions) > 0 {
		return nil, fmt.Errorf("%d output collision(s) without a disambiguating order", len(collisions))
	}

	logger.Debug("Plan computed.", "tasks", len(storage.Tasks),
		"precedence_edges", len(edges), "collisions", len(collisions))
	return &Plan{Storage: storage, Edges: edges, Collisions: collisions}, nil
}

// Graph assembles the dependency graph the scheduler walks: one node per
// task, an edge from every producer to every consumer of the same path
// template, plus the precedence edges. The graph is validated acyclic.
func (p *Plan) Graph() (*dag.Graph, error) {
	g := dag.New()
	for _, t := range p.Storage.Tasks {
		g.Add(t.RuleName())
	}

	producers := make(map[string][]*task.Task)
	for _, t := range p.Storage.Tasks {
		for _, out := range t.Outputs {
			key := normalizePath(t, out)
			producers[key] = append(producers[key], t)
		}
	}

	for _, consumer := range p.Storage.Tasks {
		for _, in := range consumer.Inputs {
			for _, producer := range producers[normalizePath(consumer, in)] {
				if producer == consumer {
					continue
				}
				if err := g.Connect(producer.RuleName(), consumer.RuleName()); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, e := range p.Edges {
		if err := g.Connect(e.Before.RuleName(), e.After.RuleName()); err != nil {
			return nil, err
		}
	}

	if err := g.DetectCycles(); err != nil {
		return nil, fmt.Errorf("error validating dependency graph: %w", err)
	}
	return g, nil
}

// normalizePath strips the annotation-dir prefix so that per-document
// paths recorded relative to the annotation dir match their prefixed
// counterparts on the other side of the edge.
func normalizePath(t *task.Task, p string) string {
	return strings.TrimPrefix(p, t.Layout().AnnotationDir+"/")
}
