package mis

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// State is a node's lifecycle state. ACTIVE -> {IN_MIS, DORMANT} is the only
// transition; both terminal states are absorbing.
type State int

const (
	StateActive State = iota
	StateInMIS
	StateDormant
)

func (s State) String() string {
	switch s {
	case StateInMIS:
		return "IN_MIS"
	case StateDormant:
		return "DORMANT"
	default:
		return "ACTIVE"
	}
}

// Outcome is what a node exposes to its host on terminal transition — the
// statistics the host collects, per the external-interfaces contract.
type Outcome struct {
	NodeID             int
	InMIS              bool
	RoundsOrPhasesUsed int
	FinalRandomValue   float64
	FinalDesireLevel   float64
	MessagesSent       int
	MessagesReceived   int
}

// Observer is invoked on every state transition. It is the optional hook
// that replaces the source's inline visualization calls; a host's
// visualization or statistics collaborator subscribes here.
type Observer func(n *Node, event string)

// Node is the single shell shared by all three algorithms: it owns
// lifecycle, the neighbor table, the termination cascade, and common
// message filtering, and delegates everything algorithm-specific to a
// Strategy. A Node exclusively owns its own state; neighbor records are
// local mirrors, never shared memory.
type Node struct {
	id       int
	strategy Strategy
	host     Host
	logger   *zap.Logger
	observer Observer

	state State
	round int

	neighbors   map[int]*NeighborRecord
	neighborIDs []int // cached sorted keys of neighbors, for deterministic iteration

	timers *timerSet

	ownRandomValue      float64
	ownRandomValueRound int
	desireLevel         float64
	ownMarked           bool
	ownMarkedRound      int

	started bool

	messagesSent     int
	messagesReceived int

	done chan struct{}
}

// NewNode constructs a node with no neighbors yet; call AddNeighbor for each
// adjacent peer before Start.
func NewNode(id int, strategy Strategy, host Host, logger *zap.Logger) (*Node, error) {
	if strategy == nil {
		return nil, ErrNoStrategy
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Node{
		id:                  id,
		strategy:            strategy,
		host:                host,
		logger:              logger.With(zap.Int("node_id", id), zap.String("strategy", strategy.Name())),
		state:               StateActive,
		neighbors:           make(map[int]*NeighborRecord),
		timers:              newTimerSet(host),
		ownRandomValueRound: -1,
		desireLevel:         0.5,
		ownMarkedRound:      -1,
		done:                make(chan struct{}),
	}, nil
}

// AddNeighbor enumerates one adjacent peer into the neighbor table. Per
// §4.3 the graph is static after initialization, so this must only be
// called before Start.
func (n *Node) AddNeighbor(neighborID int) {
	if _, exists := n.neighbors[neighborID]; exists {
		return
	}
	n.neighbors[neighborID] = newNeighborRecord(neighborID)
	n.neighborIDs = append(n.neighborIDs, neighborID)
	sort.Ints(n.neighborIDs)
}

// ID returns the node's identity.
func (n *Node) ID() int { return n.id }

// State returns the current lifecycle state.
func (n *Node) State() State { return n.state }

// Terminal reports whether the node has reached IN_MIS or DORMANT.
func (n *Node) Terminal() bool { return n.state != StateActive }

// Done is closed the instant the node reaches a terminal state, for hosts
// that want to select on node completion rather than poll Terminal.
func (n *Node) Done() <-chan struct{} { return n.done }

// CurrentRound returns the round/phase counter. Slow-MIS never advances it.
func (n *Node) CurrentRound() int { return n.round }

// SetObserver installs the optional transition hook. Must be called before
// Start to observe the very first transition: a Slow-MIS node with no
// higher-ID neighbor joins inside Start itself, and isolated nodes of the
// other strategies join on their first timer.
func (n *Node) SetObserver(obs Observer) { n.observer = obs }

// Start runs the strategy's startup hook. Calls after the first are no-ops.
func (n *Node) Start() {
	if n.started {
		return
	}
	n.started = true
	n.logger.Info("node starting", zap.Int("neighbor_count", len(n.neighbors)))
	n.strategy.OnStart(n)
}

// HandleTimer is the host's entry point for a previously scheduled timer.
// Per §5, a node suspends only between handleEvent invocations — the host
// is responsible for guaranteeing this is never re-entered concurrently
// with HandleMessage for the same node.
func (n *Node) HandleTimer(tag string) {
	if n.Terminal() {
		return
	}
	n.strategy.OnTimer(n, tag)
}

// HandleMessage is the host's entry point for an incoming neighbor message.
// This is the single exhaustive dispatch point replacing the source's
// runtime-type-test discrimination.
func (n *Node) HandleMessage(msg Message) {
	n.messagesReceived++

	switch m := msg.(type) {
	case *JoinNotice:
		n.onJoinNotice(m)
	case *TerminateNotice:
		n.onTerminateNotice(m)
	default:
		n.dispatchAlgorithmMessage(msg)
	}
}

func (n *Node) dispatchAlgorithmMessage(msg Message) {
	if n.Terminal() {
		n.logger.Debug("message received after terminal transition, dropped", zap.String("type", msg.Type()))
		return
	}

	if rg, ok := msg.(roundGated); ok && rg.MessageRound() != n.round {
		n.logger.Warn("stale or future round message discarded",
			zap.String("type", msg.Type()),
			zap.Int("sender", msg.Sender()),
			zap.Int("message_round", rg.MessageRound()),
			zap.Int("local_round", n.round),
		)
		return
	}

	rec, exists := n.neighbors[msg.Sender()]
	if !exists {
		n.logger.Warn("message from unknown sender dropped", zap.Int("sender", msg.Sender()), zap.String("type", msg.Type()))
		return
	}
	if !rec.Active {
		n.logger.Debug("message from inactive neighbor dropped", zap.Int("sender", msg.Sender()))
		return
	}

	n.strategy.OnMessage(n, msg)
}

func (n *Node) onJoinNotice(m *JoinNotice) {
	rec, exists := n.neighbors[m.SenderID]
	if !exists {
		return
	}
	rec.Active = false
	rec.Decision = DecisionJoined
	if n.state == StateActive {
		n.completeTransition(StateDormant)
	}
}

func (n *Node) onTerminateNotice(m *TerminateNotice) {
	rec, exists := n.neighbors[m.SenderID]
	if !exists || !rec.Active {
		return // idempotent: duplicate or already-inactive neighbor
	}
	rec.Active = false
	rec.clearCachedData()

	if n.state == StateActive {
		n.strategy.OnNeighborInactive(n, m.SenderID)
	}
}

// ActiveNeighborIDs returns the current active-neighbor set in a stable,
// deterministic order — useful both for strategy predicates and tests.
func (n *Node) ActiveNeighborIDs() []int {
	ids := make([]int, 0, len(n.neighborIDs))
	for _, id := range n.neighborIDs {
		if n.neighbors[id].Active {
			ids = append(ids, id)
		}
	}
	return ids
}

// IsIsolated reports whether the node currently has no active neighbors.
func (n *Node) IsIsolated() bool {
	for _, rec := range n.neighbors {
		if rec.Active {
			return false
		}
	}
	return true
}

// NeighborRecord returns the local mirror of one neighbor's state, or nil
// if the ID was never added.
func (n *Node) NeighborRecord(id int) *NeighborRecord { return n.neighbors[id] }

// Neighbors returns every adjacent ID known at construction, active or not.
func (n *Node) Neighbors() []int {
	out := make([]int, len(n.neighborIDs))
	copy(out, n.neighborIDs)
	return out
}

// BeginNewRound advances the round/phase counter. Called by the Fast-MIS
// and Desire-Level strategies at each phase/round boundary; Slow-MIS never
// calls this and the counter stays at zero.
func (n *Node) BeginNewRound() { n.round++ }

// ScheduleTimer schedules (or reschedules, replacing any timer under the
// same tag) a self-timer via the host.
func (n *Node) ScheduleTimer(delay time.Duration, tag string) { n.timers.schedule(delay, tag) }

// CancelTimer cancels a previously scheduled tag. Idempotent.
func (n *Node) CancelTimer(tag string) { n.timers.cancel(tag) }

// Broadcast emits a message to every connected neighbor and counts it.
func (n *Node) Broadcast(msg Message) {
	n.host.Broadcast(msg)
	n.messagesSent++
}

// Host exposes the raw host, for strategies that need Now()/Uniform01()
// directly.
func (n *Node) Host() Host { return n.host }

// SetOwnRandomValue records this node's own Fast-MIS draw for the current
// round.
func (n *Node) SetOwnRandomValue(v float64) {
	n.ownRandomValue = v
	n.ownRandomValueRound = n.round
}

func (n *Node) OwnRandomValue() float64 { return n.ownRandomValue }

func (n *Node) HasOwnRandomValueForRound(round int) bool { return n.ownRandomValueRound == round }

// DesireLevel returns the current desire level p_t(v).
func (n *Node) DesireLevel() float64 { return n.desireLevel }

// SetDesireLevel sets p_t(v). The caller is responsible for keeping it
// within (0, 0.5]; updateDesireLevel in the Desire-Level strategy is what
// actually maintains that bound round over round.
func (n *Node) SetDesireLevel(p float64) { n.desireLevel = p }

// EffectiveDegree sums LastDesireLevel over active neighbors, per §4.8.
func (n *Node) EffectiveDegree() float64 {
	var sum float64
	for _, id := range n.ActiveNeighborIDs() {
		sum += n.neighbors[id].LastDesireLevel
	}
	return sum
}

// SetOwnMark records this node's own Desire-Level marking outcome for the
// current round.
func (n *Node) SetOwnMark(marked bool) {
	n.ownMarked = marked
	n.ownMarkedRound = n.round
}

func (n *Node) OwnMark() bool { return n.ownMarked }

func (n *Node) HasOwnMarkForRound(round int) bool { return n.ownMarkedRound == round }

// completeTransition is the shared termination-cascade primitive: both
// JOIN_MIS and DORMANT paths funnel through here so the broadcast order,
// timer cancellation, observer notification, and idempotence guard live in
// exactly one place.
func (n *Node) completeTransition(next State) {
	if n.state != StateActive {
		return
	}
	n.state = next

	if next == StateInMIS {
		n.Broadcast(&JoinNotice{SenderID: n.id, Phase: n.round})
	}
	n.Broadcast(&TerminateNotice{SenderID: n.id, Phase: n.round})

	n.timers.cancelAll()

	n.logger.Info("node reached terminal state", zap.String("state", next.String()), zap.Int("round", n.round))

	if n.observer != nil {
		n.observer(n, next.String())
	}
	close(n.done)
}

// JoinMIS transitions the node to IN_MIS, broadcasting JoinNotice then
// TerminateNotice to every neighbor. A no-op once terminal.
func (n *Node) JoinMIS() { n.completeTransition(StateInMIS) }

// BecomeDormant transitions the node to DORMANT without having joined,
// broadcasting TerminateNotice to every neighbor. A no-op once terminal.
func (n *Node) BecomeDormant() { n.completeTransition(StateDormant) }

// Outcome reports the node's final observable outputs. Most meaningful
// once Terminal() is true, but safe to call at any time.
func (n *Node) Outcome() Outcome {
	return Outcome{
		NodeID:             n.id,
		InMIS:              n.state == StateInMIS,
		RoundsOrPhasesUsed: n.round,
		FinalRandomValue:   n.ownRandomValue,
		FinalDesireLevel:   n.desireLevel,
		MessagesSent:       n.messagesSent,
		MessagesReceived:   n.messagesReceived,
	}
}
