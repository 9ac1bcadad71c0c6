package dag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGraph_AddAndConnect(t *testing.T) {
	t.Parallel()

	g := New()
	g.Add("a::f")
	g.Add("b::f")
	g.Add("a::f") // duplicate is a no-op
	require.Equal(t, 2, g.Len())

	require.NoError(t, g.Connect("a::f", "b::f"))

	deps, err := g.Dependencies("b::f")
	require.NoError(t, err)
	require.Equal(t, []string{"a::f"}, deps)

	dependents, err := g.Dependents("a::f")
	require.NoError(t, err)
	require.Equal(t, []string{"b::f"}, dependents)
}

func TestGraph_ConnectErrors(t *testing.T) {
	t.Parallel()

	g := New()
	g.Add("a")

	require.Error(t, g.Connect("a", "a"))
	require.Error(t, g.Connect("a", "missing"))
	require.Error(t, g.Connect("missing", "a"))
	_, err := g.Dependencies("missing")
	require.Error(t, err)
}

func TestGraph_DetectCycles(t *testing.T) {
	t.Parallel()

	g := New()
	g.Add("a")
	g.Add("b")
	g.Add("c")
	require.NoError(t, g.Connect("a", "b"))
	require.NoError(t, g.Connect("b", "c"))
	require.NoError(t, g.DetectCycles())

	require.NoError(t, g.Connect("c", "a"))
	err := g.DetectCycles()
	require.Error(t, err)
	require.Contains(t, err.Error(), "cycle")
}

func TestGraph_TopoSort(t *testing.T) {
	t.Parallel()

	g := New()
	for _, id := range []string{"d", "c", "b", "a"} {
		g.Add(id)
	}
	require.NoError(t, g.Connect("a", "b"))
	require.NoError(t, g.Connect("b", "d"))
	require.NoError(t, g.Connect("c", "d"))

	order, err := g.TopoSort()
	require.NoError(t, err)
	require.Len(t, order, 4)

	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	require.Less(t, pos["a"], pos["b"])
	require.Less(t, pos["b"], pos["d"])
	require.Less(t, pos["c"], pos["d"])
}

func TestGraph_TopoSortFailsOnCycle(t *testing.T) {
	t.Parallel()

	g := New()
	g.Add("a")
	g.Add("b")
	require.NoError(t, g.Connect("a", "b"))
	require.NoError(t, g.Connect("b", "a"))

	_, err := g.TopoSort()
	require.Error(t, err)
}

func TestGraph_TopoSortIsDeterministic(t *testing.T) {
	t.Parallel()

	build := func() *Graph {
		g := New()
		for _, id := range []string{"z", "y", "x", "w"} {
			g.Add(id)
		}
		return g
	}

	first, err := build().TopoSort()
	require.NoError(t, err)
	second, err := build().TopoSort()
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, []string{"w", "x", "y", "z"}, first)
}
