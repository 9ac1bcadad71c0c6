package plan

import (
	"sort"

	"github.com/korpuslab/taskweave/internal/task"
)

// Edge is a precedence constraint: when both tasks could produce the
// same output, Before wins over After.
type Edge struct {
	Before *task.Task
	After  *task.Task
}

// Collision records two tasks producing the same outputs without a
// disambiguating order. The operator must set distinct order values to
// resolve it.
type Collision struct {
	A       *task.Task
	B       *task.Task
	Outputs []string
}

// ResolveOrder examines every unordered pair of tasks. Pairs whose
// output sets intersect either contribute a precedence edge (both have
// an order and the orders differ, ascending order wins) or a collision
// record. The scan is quadratic over the task count, which is bounded by
// the catalog, not the corpus.
func ResolveOrder(tasks []*task.Task) ([]Edge, []Collision) {
	var edges []Edge
	var collisions []Collision

	for i := 0; i < len(tasks); i++ {
		for j := i + 1; j < len(tasks); j++ {
			a, b := tasks[i], tasks[j]
			common := commonOutputs(a, b)
			if len(common) == 0 {
				continue
			}
			if a.Order == nil || b.Order == nil || *a.Order == *b.Order {
				collisions = append(collisions, Collision{A: a, B: b, Outputs: common})
				continue
			}
			if *a.Order < *b.Order {
				edges = append(edges, Edge{Before: a, After: b})
			} else {
				edges = append(edges, Edge{Before: b, After: a})
			}
		}
	}
	return edges, collisions
}

// commonOutputs returns the sorted intersection of two output sets.
func commonOutputs(a, b *task.Task) []string {
	set := make(map[string]struct{}, len(a.Outputs))
	for _, out := range a.Outputs {
		set[out] = struct{}{}
	}
	var common []string
	seen := make(map[string]struct{})
	for _, out := range b.Outputs {
		if _, ok := set[out]; !ok {
			continue
		}
		if _, dup := seen[out]; dup {
			continue
		}
		seen[out] = struct{}{}
		common = append(common, out)
	}
	sort.Strings(common)
	return common
}
