package graph

// Demo topology constructors for the six named scenarios of spec.md §8.
// These exist purely for cmd/simulate and tests; production node hosting
// gets its topology from pkg/graphio instead.

// Path returns a path graph 1-2-...-n. n<=0 yields an empty graph; n==1
// yields a single isolated node.
func Path(n int) *Graph {
	g := NewGraph()
	if n <= 0 {
		return g
	}
	if n == 1 {
		g.AddIsolatedNode(1)
		return g
	}
	for i := 1; i < n; i++ {
		g.AddEdge(NewEdge(i, i+1))
	}
	return g
}

// Cycle returns a cycle graph 1-2-...-n-1. Requires n>=3.
func Cycle(n int) *Graph {
	g := Path(n)
	if n >= 3 {
		g.AddEdge(NewEdge(n, 1))
	}
	return g
}

// Complete returns K_n, the complete graph on n nodes.
func Complete(n int) *Graph {
	g := NewGraph()
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			g.AddEdge(NewEdge(i, j))
		}
	}
	if n == 1 {
		g.AddIsolatedNode(1)
	}
	return g
}

// Star returns a star with node 1 as the center and n-1 leaves.
func Star(n int) *Graph {
	g := NewGraph()
	if n <= 1 {
		if n == 1 {
			g.AddIsolatedNode(1)
		}
		return g
	}
	for leaf := 2; leaf <= n; leaf++ {
		g.AddEdge(NewEdge(1, leaf))
	}
	return g
}

// Empty returns a graph with n isolated nodes and no edges at all.
func Empty(n int) *Graph {
	g := NewGraph()
	for i := 1; i <= n; i++ {
		g.AddIsolatedNode(i)
	}
	return g
}
