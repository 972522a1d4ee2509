package runtime

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/distributed-mis/pkg/actor"
	"github.com/distributed-mis/pkg/graph"
	"github.com/distributed-mis/pkg/mis"
)

// Run is a single-process hosting of every node in g on one ActorSystem,
// each node driven by its own NodeActor and reporting to a shared
// Supervisor. This is what cmd/simulate builds for a demo topology, and
// what cmd/node builds for every node of its CSV topology.
type Run struct {
	System     *actor.ActorSystem
	Supervisor *SupervisorActor
	Nodes      map[int]*NodeActor
}

// StrategyFactory builds the per-node Strategy for a run. Every node in a
// single run shares one algorithm (spec.md never mixes algorithms within
// a run), but each node gets its own Strategy instance since strategies
// carry per-node-instance state (e.g. discovered neighbors).
type StrategyFactory func(nodeID int) mis.Strategy

// NewRun wires one NodeActor per vertex of g, registers them plus a
// Supervisor on a fresh ActorSystem, and connects every edge in both
// directions (g.Adj is already symmetric per pkg/graph.AddEdge).
//
// transport and provider are optional (nil is fine for a single-process
// demo); cmd/node passes a *cluster.Transport/*cluster.SimpleProvider so
// the ActorSystem can resolve and log sends to actors hosted elsewhere,
// even though every node in g still runs locally in this process.
func NewRun(machineID string, g *graph.Graph, newStrategy StrategyFactory, algorithm string, transport actor.Transport, provider actor.Provider, logger *zap.Logger) (*Run, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	system := actor.NewActorSystem(machineID, transport, provider)

	nodeIDs := g.NodeIDs()
	supervisorPID := actor.NewPID(machineID, "supervisor")
	supervisor := NewSupervisorActor(supervisorPID, system, len(nodeIDs), algorithm, logger)
	if err := system.Register(supervisor, actor.SupervisorType); err != nil {
		return nil, fmt.Errorf("registering supervisor: %w", err)
	}

	pids := make(map[int]actor.PID, len(nodeIDs))
	for _, id := range nodeIDs {
		pids[id] = actor.NewPID(machineID, fmt.Sprintf("node-%d", id))
	}

	nodes := make(map[int]*NodeActor, len(nodeIDs))
	for _, id := range nodeIDs {
		na := NewNodeActor(pids[id], system, id, newStrategy(id), supervisorPID, logger)
		if err := system.Register(na, actor.NodeType); err != nil {
			return nil, fmt.Errorf("registering node %d: %w", id, err)
		}
		nodes[id] = na
	}

	for _, id := range nodeIDs {
		for _, nb := range g.Adj[id] {
			nodes[id].AddNeighbor(nb.NodeID, pids[nb.NodeID])
		}
	}

	return &Run{System: system, Supervisor: supervisor, Nodes: nodes}, nil
}

// Start starts the actor system and every node/supervisor goroutine, then
// kicks off each node's OnStart hook.
func (r *Run) Start(ctx context.Context) error {
	if err := r.System.Start(); err != nil {
		return err
	}
	r.Supervisor.Start(ctx)
	for _, na := range r.Nodes {
		na.Start(ctx)
	}
	for _, na := range r.Nodes {
		na.StartNode()
	}
	return nil
}

// Wait blocks until every node has reached a terminal state.
func (r *Run) Wait(ctx context.Context) (RunComplete, error) {
	return r.Supervisor.Wait(ctx)
}

func (r *Run) Shutdown() {
	r.System.Shutdown()
}
