// Package scheduler declares the contract between the rule-synthesis
// engine and the external execution engine. The engine in this
// repository only produces the plan; walking the graph, matching
// wildcard templates against concrete files, caching completed tasks and
// running task instances in parallel all belong to the scheduler
// implementation.
package scheduler

import (
	"context"

	"github.com/korpuslab/taskweave/internal/plan"
	"github.com/korpuslab/taskweave/internal/task"
)

// Scheduler consumes a computed plan and executes it. Implementations
// instantiate tasks per document through task.Resolver, which is pure
// and safe to invoke from concurrent workers.
type Scheduler interface {
	// Schedule walks the plan's dependency graph and runs one task
	// instance per document (or one per corpus for corpus-common
	// outputs), honoring the plan's precedence edges when several tasks
	// could produce the same output.
	Schedule(ctx context.Context, p *plan.Plan) error
}

// Instantiate is a convenience wrapper: it resolves one task's
// parameters for the given bindings.
func Instantiate(t *task.Task, b task.Bindings) (map[string]any, error) {
	return t.Resolver()(b)
}
