package runtime

import (
	"context"

	"go.uber.org/zap"

	"github.com/distributed-mis/pkg/actor"
	"github.com/distributed-mis/pkg/outcome"
)

// SupervisorActor collects terminal outcomes from a fixed set of node
// actors and signals completion once every one of them has reported.
// It plays the same role the teacher's CoordinatorActor plays for
// partitions and aggregators, generalized from "phase fan-in" to
// "terminal-outcome fan-in."
type SupervisorActor struct {
	*actor.BaseActor

	expected  int
	algorithm string
	reported  map[int]bool
	outcomes  *outcome.Set
	done      chan RunComplete
	logger    *zap.Logger
}

func NewSupervisorActor(pid actor.PID, system *actor.ActorSystem, expectedNodes int, algorithm string, logger *zap.Logger) *SupervisorActor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupervisorActor{
		BaseActor: actor.NewBaseActor(pid, system, expectedNodes+1),
		expected:  expectedNodes,
		algorithm: algorithm,
		reported:  make(map[int]bool),
		outcomes:  outcome.NewSet(),
		done:      make(chan RunComplete, 1),
		logger:    logger,
	}
}

func (sup *SupervisorActor) Start(ctx context.Context) {
	sup.Ctx, sup.Cancel = context.WithCancel(ctx)
	sup.Wg.Add(1)

	go func() {
		defer sup.Wg.Done()
		sup.run()
	}()
}

func (sup *SupervisorActor) run() {
	for {
		select {
		case <-sup.Ctx.Done():
			return
		case msg, ok := <-sup.Mailbox.Receive():
			if !ok {
				return
			}
			sup.Receive(sup.Ctx, msg)
		}
	}
}

func (sup *SupervisorActor) Receive(_ context.Context, msg actor.Message) {
	nt, ok := msg.(nodeTerminated)
	if !ok {
		sup.logger.Warn("supervisor received unknown message type", zap.String("type", msg.Type()))
		return
	}

	sup.outcomes.Add(nt.Outcome)
	sup.reported[nt.NodeID] = true

	state := "dormant"
	if nt.Outcome.InMIS {
		state = "in_mis"
	}
	NodesTerminalTotal.WithLabelValues(state).Inc()
	RoundsOrPhasesUsed.WithLabelValues(sup.algorithm).Observe(float64(nt.Outcome.RoundsOrPhasesUsed))
	NodesReportedInFlight.WithLabelValues(sup.PID().String()).Set(float64(len(sup.reported)))

	sup.logger.Info("node reported terminal",
		zap.Int("node_id", nt.NodeID),
		zap.Bool("in_mis", nt.Outcome.InMIS),
		zap.Int("reported_so_far", len(sup.reported)),
		zap.Int("expected", sup.expected),
	)

	if len(sup.reported) == sup.expected {
		sup.done <- RunComplete{Outcomes: sup.outcomes.All()}
	}
}

// Wait blocks until every expected node has reported terminal, or ctx is
// cancelled first.
func (sup *SupervisorActor) Wait(ctx context.Context) (RunComplete, error) {
	select {
	case rc := <-sup.done:
		return rc, nil
	case <-ctx.Done():
		return RunComplete{}, ctx.Err()
	}
}

// Outcomes returns the aggregation collected so far, safe to call
// concurrently with Receive.
func (sup *SupervisorActor) Outcomes() *outcome.Set { return sup.outcomes }
