package mis

import (
	"testing"
	"time"
)

func buildFastMISNodes(t *testing.T, s *sim, adjacency map[int][]int, draws map[int][]float64) map[int]*Node {
	t.Helper()
	nodes := make(map[int]*Node)
	for id, neighbors := range adjacency {
		host := newSimHost(s, id, neighbors, draws[id]...)
		strat := NewFastMISStrategy(0, 10*time.Millisecond, 2*time.Millisecond)
		n, err := NewNode(id, strat, host, nil)
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

// Scenario S3: two-node graph, A draws 0.2, B draws 0.7. A joins, B terminates.
func TestFastMIS_S3_TwoNode(t *testing.T) {
	adjacency := map[int][]int{1: {2}, 2: {1}}
	draws := map[int][]float64{1: {0.2}, 2: {0.7}}
	s := newSim()
	nodes := buildFastMISNodes(t, s, adjacency, draws)
	startAll(nodes)
	s.run(nodes, 10000)

	assertIndependenceAndMaximality(t, nodes, adjacency)
	if nodes[1].State() != StateInMIS {
		t.Errorf("node 1 (lower draw): want IN_MIS, got %s", nodes[1].State())
	}
	if nodes[2].State() != StateDormant {
		t.Errorf("node 2 (higher draw): want DORMANT, got %s", nodes[2].State())
	}
}

func TestFastMIS_IsolatedNodeJoinsAtPhaseStart(t *testing.T) {
	s := newSim()
	nodes := buildFastMISNodes(t, s, map[int][]int{1: {}}, nil)
	startAll(nodes)
	s.run(nodes, 100)

	if nodes[1].State() != StateInMIS {
		t.Fatalf("isolated node: want IN_MIS, got %s", nodes[1].State())
	}
	if nodes[1].Outcome().RoundsOrPhasesUsed < 1 {
		t.Errorf("expected at least one phase to have elapsed")
	}
}

// Scenario S5: star graph, 1 center + 4 leaves. Center always loses to
// whichever leaf draws a smaller value; eventually every node is terminal
// and the result is a valid MIS.
func TestFastMIS_S5_Star(t *testing.T) {
	adjacency := map[int][]int{
		1: {2, 3, 4, 5}, // center
		2: {1},
		3: {1},
		4: {1},
		5: {1},
	}
	draws := map[int][]float64{
		1: {0.9, 0.9, 0.9, 0.9, 0.9, 0.9},
		2: {0.1, 0.1, 0.1},
		3: {0.4, 0.4, 0.4},
		4: {0.5, 0.5, 0.5},
		5: {0.6, 0.6, 0.6},
	}
	s := newSim()
	nodes := buildFastMISNodes(t, s, adjacency, draws)
	startAll(nodes)
	s.run(nodes, 50000)

	assertIndependenceAndMaximality(t, nodes, adjacency)
	if nodes[2].State() != StateInMIS {
		t.Errorf("leaf 2 has the smallest draw every phase: want IN_MIS, got %s", nodes[2].State())
	}
	if nodes[1].State() != StateDormant {
		t.Errorf("center should terminate DORMANT once any leaf joins, got %s", nodes[1].State())
	}
}

func TestFastMIS_CompleteGraphExactlyOneJoins(t *testing.T) {
	adjacency := map[int][]int{
		1: {2, 3},
		2: {1, 3},
		3: {1, 2},
	}
	draws := map[int][]float64{
		1: {0.5, 0.5, 0.5, 0.5},
		2: {0.2, 0.2, 0.2, 0.2},
		3: {0.8, 0.8, 0.8, 0.8},
	}
	s := newSim()
	nodes := buildFastMISNodes(t, s, adjacency, draws)
	startAll(nodes)
	s.run(nodes, 50000)

	assertIndependenceAndMaximality(t, nodes, adjacency)
	joined := 0
	for _, n := range nodes {
		if n.State() == StateInMIS {
			joined++
		}
	}
	if joined != 1 {
		t.Fatalf("K3: want exactly one node IN_MIS, got %d", joined)
	}
}

func TestFastMIS_StaleRoundMessageDiscarded(t *testing.T) {
	s := newSim()
	nodes := buildFastMISNodes(t, s, map[int][]int{1: {2}, 2: {1}}, map[int][]float64{1: {0.5}, 2: {0.5}})
	n := nodes[1]
	n.Start()
	n.BeginNewRound() // simulate local round having already advanced to 1

	n.HandleMessage(&RandomValue{SenderID: 2, Round: 99, Value: 0.1})
	rec := n.NeighborRecord(2)
	if rec.RandomReportedRound == 99 {
		t.Fatalf("stale-round message was not discarded")
	}
}
