package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/distributed-mis/pkg/graph"
	"github.com/distributed-mis/pkg/mis"
)

func runToCompletion(t *testing.T, r *Run, timeout time.Duration) RunComplete {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer r.Shutdown()

	rc, err := r.Wait(ctx)
	if err != nil {
		t.Fatalf("run did not complete within %s: %v", timeout, err)
	}
	return rc
}

func assertMIS(t *testing.T, rc RunComplete, g *graph.Graph) {
	t.Helper()
	inMIS := make(map[int]bool)
	for _, o := range rc.Outcomes {
		inMIS[o.NodeID] = o.InMIS
	}

	for _, id := range g.NodeIDs() {
		for _, nb := range g.Adj[id] {
			if inMIS[id] && inMIS[nb.NodeID] {
				t.Fatalf("nodes %d and %d are adjacent and both IN_MIS", id, nb.NodeID)
			}
		}
		if !inMIS[id] {
			hasInMISNeighbor := false
			for _, nb := range g.Adj[id] {
				if inMIS[nb.NodeID] {
					hasInMISNeighbor = true
				}
			}
			if !hasInMISNeighbor && len(g.Adj[id]) > 0 {
				t.Fatalf("node %d is DORMANT with no IN_MIS neighbor", id)
			}
		}
	}
}

func TestRun_SlowMIS_PathOfFive(t *testing.T) {
	g := graph.Path(5)
	r, err := NewRun("m0", g, func(int) mis.Strategy { return mis.NewSlowMISStrategy() }, "slow-mis", nil, nil, nil)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}

	rc := runToCompletion(t, r, 5*time.Second)
	assertMIS(t, rc, g)
}

func TestRun_DesireLevelMIS_IsolatedNodeJoins(t *testing.T) {
	g := graph.Empty(1)
	r, err := NewRun("m0", g, func(int) mis.Strategy {
		return mis.NewDesireLevelStrategy(0, 5*time.Millisecond, time.Millisecond)
	}, "desire-level-mis", nil, nil, nil)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}

	rc := runToCompletion(t, r, 5*time.Second)
	if len(rc.Outcomes) != 1 || !rc.Outcomes[0].InMIS {
		t.Fatalf("isolated node: want exactly one IN_MIS outcome, got %+v", rc.Outcomes)
	}
}

func TestRun_FastMIS_StarReachesValidMIS(t *testing.T) {
	g := graph.Star(5)
	r, err := NewRun("m0", g, func(int) mis.Strategy {
		return mis.NewFastMISStrategy(0, 10*time.Millisecond, 2*time.Millisecond)
	}, "fast-mis", nil, nil, nil)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}

	rc := runToCompletion(t, r, 10*time.Second)
	assertMIS(t, rc, g)
}
