package graph

import "sort"

// Edge is an unordered adjacency between two node IDs. A weighted Edge
// made sense for modularity bookkeeping; a Maximal Independent Set only
// ever asks "are u and v adjacent", so weight is dropped entirely here
// rather than carried as an unused field.
type Edge struct {
	U int
	V int
}

func NewEdge(u, v int) Edge {
	return Edge{U: u, V: v}
}

// Graph is a static, undirected adjacency list. Per §4.3 the topology
// never changes after construction — AddEdge is only ever called while
// building a demo or test topology, never once a run has started.
type Graph struct {
	Adj    map[int][]Neighbor
	Degree map[int]int

	// ids tracks insertion order so NodeIDs is deterministic regardless of
	// Go's map iteration order.
	ids     []int
	knownID map[int]bool
}

type Neighbor struct {
	NodeID int
}

func NewGraph() *Graph {
	return &Graph{
		Adj:     make(map[int][]Neighbor),
		Degree:  make(map[int]int),
		knownID: make(map[int]bool),
	}
}

func (g *Graph) addNode(id int) {
	if g.knownID[id] {
		return
	}
	g.knownID[id] = true
	g.ids = append(g.ids, id)
}

func (g *Graph) AddEdge(edge Edge) {
	g.addNode(edge.U)
	g.addNode(edge.V)
	if edge.U == edge.V {
		return
	}

	g.Adj[edge.U] = append(g.Adj[edge.U], Neighbor{NodeID: edge.V})
	g.Adj[edge.V] = append(g.Adj[edge.V], Neighbor{NodeID: edge.U})

	g.Degree[edge.U]++
	g.Degree[edge.V]++
}

func (g *Graph) AddEdges(edges []Edge) {
	for _, edge := range edges {
		g.AddEdge(edge)
	}
}

// AddIsolatedNode registers id with no edges, for topologies like S4's
// single node or the empty graph that include a node with no neighbors.
func (g *Graph) AddIsolatedNode(id int) {
	g.addNode(id)
}

func (g *Graph) AreAdjacent(u, v int) bool {
	for _, nb := range g.Adj[u] {
		if nb.NodeID == v {
			return true
		}
	}
	return false
}

// NodeIDs returns every node registered via AddEdge or AddIsolatedNode,
// sorted ascending.
func (g *Graph) NodeIDs() []int {
	ids := make([]int, len(g.ids))
	copy(ids, g.ids)
	sort.Ints(ids)
	return ids
}
