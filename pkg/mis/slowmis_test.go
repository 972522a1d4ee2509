package mis

import "testing"

func buildSlowMISNodes(t *testing.T, s *sim, adjacency map[int][]int) map[int]*Node {
	t.Helper()
	nodes := make(map[int]*Node)
	for id, neighbors := range adjacency {
		host := newSimHost(s, id, neighbors)
		n, err := NewNode(id, NewSlowMISStrategy(), host, nil)
		if err != nil {
			t.Fatalf("NewNode(%d): %v", id, err)
		}
		for _, nb := range neighbors {
			n.AddNeighbor(nb)
		}
		nodes[id] = n
	}
	return nodes
}

func startAll(nodes map[int]*Node) {
	for _, n := range nodes {
		n.Start()
	}
}

func assertIndependenceAndMaximality(t *testing.T, nodes map[int]*Node, adjacency map[int][]int) {
	t.Helper()
	for id, n := range nodes {
		if !n.Terminal() {
			t.Fatalf("node %d did not reach a terminal state", id)
		}
	}
	for id, neighbors := range adjacency {
		n := nodes[id]
		if n.State() == StateInMIS {
			for _, nb := range neighbors {
				if nodes[nb].State() == StateInMIS {
					t.Fatalf("independence violated: %d and %d both IN_MIS", id, nb)
				}
			}
		}
		if n.State() == StateDormant {
			foundJoined := false
			for _, nb := range neighbors {
				if nodes[nb].State() == StateInMIS {
					foundJoined = true
				}
			}
			if !foundJoined {
				t.Fatalf("maximality violated: DORMANT node %d has no IN_MIS neighbor", id)
			}
		}
	}
}

// Scenario S1: path of 5 nodes, IDs 1..5, edges 1-2,2-3,3-4,4-5.
func TestSlowMIS_S1_PathOfFive(t *testing.T) {
	adjacency := map[int][]int{
		1: {2},
		2: {1, 3},
		3: {2, 4},
		4: {3, 5},
		5: {4},
	}
	s := newSim()
	nodes := buildSlowMISNodes(t, s, adjacency)
	startAll(nodes)
	s.run(nodes, 10000)

	assertIndependenceAndMaximality(t, nodes, adjacency)

	want := map[int]State{1: StateInMIS, 2: StateDormant, 3: StateInMIS, 4: StateDormant, 5: StateInMIS}
	for id, state := range want {
		if nodes[id].State() != state {
			t.Errorf("node %d: want %s, got %s", id, state, nodes[id].State())
		}
	}
}

// Scenario S2: triangle K3, IDs 1,2,3.
func TestSlowMIS_S2_Triangle(t *testing.T) {
	adjacency := map[int][]int{
		1: {2, 3},
		2: {1, 3},
		3: {1, 2},
	}
	s := newSim()
	nodes := buildSlowMISNodes(t, s, adjacency)
	startAll(nodes)
	s.run(nodes, 10000)

	assertIndependenceAndMaximality(t, nodes, adjacency)

	if nodes[3].State() != StateInMIS {
		t.Errorf("node 3 (highest ID, no higher neighbor): want IN_MIS, got %s", nodes[3].State())
	}
	if nodes[1].State() != StateDormant || nodes[2].State() != StateDormant {
		t.Errorf("nodes 1,2: want DORMANT, got %s, %s", nodes[1].State(), nodes[2].State())
	}
}

func TestSlowMIS_IsolatedNodeJoinsImmediately(t *testing.T) {
	s := newSim()
	nodes := buildSlowMISNodes(t, s, map[int][]int{1: {}})
	startAll(nodes)
	s.run(nodes, 100)

	if nodes[1].State() != StateInMIS {
		t.Fatalf("isolated node: want IN_MIS, got %s", nodes[1].State())
	}
}

func TestSlowMIS_TwoNodeGraphExactlyOneJoins(t *testing.T) {
	adjacency := map[int][]int{1: {2}, 2: {1}}
	s := newSim()
	nodes := buildSlowMISNodes(t, s, adjacency)
	startAll(nodes)
	s.run(nodes, 1000)

	assertIndependenceAndMaximality(t, nodes, adjacency)
	joined := 0
	for _, n := range nodes {
		if n.State() == StateInMIS {
			joined++
		}
	}
	if joined != 1 {
		t.Fatalf("want exactly one node IN_MIS, got %d", joined)
	}
}

func TestSlowMIS_EmptyGraphAllJoin(t *testing.T) {
	adjacency := map[int][]int{1: {}, 2: {}, 3: {}}
	s := newSim()
	nodes := buildSlowMISNodes(t, s, adjacency)
	startAll(nodes)
	s.run(nodes, 1000)

	for id, n := range nodes {
		if n.State() != StateInMIS {
			t.Errorf("node %d in empty graph: want IN_MIS, got %s", id, n.State())
		}
	}
}

func TestSlowMIS_CompleteGraphExactlyOneJoins(t *testing.T) {
	adjacency := map[int][]int{
		1: {2, 3, 4},
		2: {1, 3, 4},
		3: {1, 2, 4},
		4: {1, 2, 3},
	}
	s := newSim()
	nodes := buildSlowMISNodes(t, s, adjacency)
	startAll(nodes)
	s.run(nodes, 10000)

	assertIndependenceAndMaximality(t, nodes, adjacency)
	joined := 0
	for _, n := range nodes {
		if n.State() == StateInMIS {
			joined++
		}
	}
	if joined != 1 {
		t.Fatalf("K4: want exactly one node IN_MIS, got %d", joined)
	}
	if nodes[4].State() != StateInMIS {
		t.Errorf("highest ID should join in K_n under Slow-MIS, got %s", nodes[4].State())
	}
}

func TestSlowMIS_TerminateNoticeIdempotent(t *testing.T) {
	s := newSim()
	nodes := buildSlowMISNodes(t, s, map[int][]int{1: {2}, 2: {1}})
	startAll(nodes)
	s.run(nodes, 1000)

	rec := nodes[2].NeighborRecord(1)
	if rec == nil {
		t.Fatal("expected neighbor record for 1")
	}
	before := *rec
	nodes[2].HandleMessage(&TerminateNotice{SenderID: 1, Phase: 0})
	if *rec != before {
		t.Fatalf("duplicate TerminateNotice changed state: before=%+v after=%+v", before, *rec)
	}
}
