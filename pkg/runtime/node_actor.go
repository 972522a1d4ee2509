package runtime

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/distributed-mis/pkg/actor"
	"github.com/distributed-mis/pkg/mis"
)

// tagHandle is the TimerHandle a NodeActor hands back to mis.Node. It
// carries the generation the timer was scheduled under, so a stale fire
// from a cancelled-and-superseded timer is recognized and dropped even
// though it already raced past CancelTimer onto the mailbox.
type tagHandle struct {
	tag string
	seq uint64
}

// NodeActor binds a *mis.Node to the actor substrate, implementing
// mis.Host on top of a real clock, math/rand/v2, and per-neighbor actor
// Send. All host-contract calls a Strategy makes land here; NodeActor's
// only job beyond that is making sure every call into the wrapped Node
// happens from its own mailbox-drain goroutine, preserving the "single
// goroutine per node" guarantee §5 requires even though timers fire on
// their own goroutines.
type NodeActor struct {
	*actor.BaseActor

	node         *mis.Node
	supervisor   actor.PID
	neighborPIDs map[int]actor.PID
	logger       *zap.Logger

	mu       sync.Mutex
	timerGen map[string]uint64
	nextSeq  uint64
}

// NewNodeActor constructs a node actor with no neighbors wired yet. Call
// AddNeighbor for each adjacent peer, then StartNode, before messages for
// this node can be delivered meaningfully.
func NewNodeActor(pid actor.PID, system *actor.ActorSystem, nodeID int, strategy mis.Strategy, supervisor actor.PID, logger *zap.Logger) *NodeActor {
	if logger == nil {
		logger = zap.NewNop()
	}
	na := &NodeActor{
		BaseActor:    actor.NewBaseActor(pid, system, 256),
		supervisor:   supervisor,
		neighborPIDs: make(map[int]actor.PID),
		logger:       logger.With(zap.Int("node_id", nodeID)),
		timerGen:     make(map[string]uint64),
	}

	node, err := mis.NewNode(nodeID, strategy, na, logger)
	if err != nil {
		// strategy is always non-nil from the caller sites in this package;
		// a nil strategy here is a programmer error, not a runtime condition.
		panic(err)
	}
	node.SetObserver(na.onTransition)
	na.node = node
	return na
}

// AddNeighbor wires both the node's own neighbor table and the routing
// table NodeActor's Broadcast uses to reach that neighbor's mailbox.
func (na *NodeActor) AddNeighbor(neighborID int, pid actor.PID) {
	na.node.AddNeighbor(neighborID)
	na.neighborPIDs[neighborID] = pid
}

func (na *NodeActor) Node() *mis.Node { return na.node }

// StartNode enqueues the node's startup hook onto this actor's own
// mailbox, so OnStart runs on the same goroutine as every later OnTimer
// and OnMessage call.
func (na *NodeActor) StartNode() {
	na.Mailbox.Send(startSignal{})
}

func (na *NodeActor) Start(ctx context.Context) {
	na.Ctx, na.Cancel = context.WithCancel(ctx)
	na.Wg.Add(1)

	go func() {
		defer na.Wg.Done()
		na.run()
	}()
}

func (na *NodeActor) run() {
	na.logger.Debug("node actor started")
	for {
		select {
		case <-na.Ctx.Done():
			return
		case msg, ok := <-na.Mailbox.Receive():
			if !ok {
				return
			}
			na.Receive(na.Ctx, msg)
		}
	}
}

func (na *NodeActor) Receive(_ context.Context, msg actor.Message) {
	switch m := msg.(type) {
	case startSignal:
		na.node.Start()
	case timerFired:
		na.mu.Lock()
		current := na.timerGen[m.tag]
		na.mu.Unlock()
		if current != m.seq {
			na.logger.Debug("stale timer fire discarded", zap.String("tag", m.tag))
			return
		}
		na.node.HandleTimer(m.tag)
	default:
		if misMsg, ok := msg.(mis.Message); ok {
			na.node.HandleMessage(misMsg)
			return
		}
		na.logger.Warn("node actor received unroutable message", zap.String("type", msg.Type()))
	}
}

func (na *NodeActor) onTransition(n *mis.Node, event string) {
	na.logger.Info("node terminal", zap.String("event", event))
	if na.supervisor.IsZero() {
		return
	}
	na.Send(na.supervisor, nodeTerminated{NodeID: n.ID(), Outcome: n.Outcome()})
}

// ScheduleTimer implements mis.Host. The real delay runs on its own
// goroutine via time.AfterFunc; it never touches the Node directly, only
// enqueues a timerFired message onto this actor's own mailbox.
func (na *NodeActor) ScheduleTimer(delay time.Duration, tag string) mis.TimerHandle {
	na.mu.Lock()
	na.nextSeq++
	seq := na.nextSeq
	na.timerGen[tag] = seq
	na.mu.Unlock()

	time.AfterFunc(delay, func() {
		na.Mailbox.Send(timerFired{tag: tag, seq: seq})
	})
	return tagHandle{tag: tag, seq: seq}
}

// CancelTimer implements mis.Host. It does not stop the underlying
// time.AfterFunc (not worth tracking a *time.Timer per tag); instead it
// bumps the tag's generation, so a fire already in flight is recognized
// as stale when it reaches Receive.
func (na *NodeActor) CancelTimer(h mis.TimerHandle) {
	th, ok := h.(tagHandle)
	if !ok {
		return
	}
	na.mu.Lock()
	if na.timerGen[th.tag] == th.seq {
		na.timerGen[th.tag] = th.seq + 1
	}
	na.mu.Unlock()
}

// Broadcast implements mis.Host: send to every wired neighbor PID.
func (na *NodeActor) Broadcast(msg mis.Message) {
	for _, pid := range na.neighborPIDs {
		if err := na.Send(pid, msg); err != nil {
			na.logger.Warn("broadcast send failed", zap.String("to", pid.String()), zap.Error(err))
		}
	}
}

func (na *NodeActor) Now() time.Time { return time.Now() }

func (na *NodeActor) Uniform01() float64 { return rand.Float64() }
