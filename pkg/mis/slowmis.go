package mis

import "time"

const (
	tagDiscoveryTimeout = "slowmis.discoveryTimeout"
	tagCheckInterval    = "slowmis.checkInterval"
)

// SlowMISStrategy is the deterministic, ID-ordered algorithm of §4.6.
// Decisions are message-driven, not timer-driven: the default variant
// schedules no timer at all. The discovery variant adds a one-shot
// discovery timer and, when CheckInterval is set, a periodic re-check
// that starts once discovery has ended.
type SlowMISStrategy struct {
	// UseDiscovery enables the optional neighbor-discovery sub-protocol:
	// broadcast NeighborAnnounce and wait DiscoveryTimeout before making
	// any decision. Functionally equivalent to the default (decide
	// immediately) when the graph is known at initialization, per §4.6.
	UseDiscovery      bool
	DiscoveryTimeout  time.Duration
	CheckInterval     time.Duration

	discovered map[int]bool
}

// NewSlowMISStrategy constructs the default (no-discovery) variant.
func NewSlowMISStrategy() *SlowMISStrategy {
	return &SlowMISStrategy{discovered: make(map[int]bool)}
}

// NewSlowMISStrategyWithDiscovery constructs the discovery-sub-protocol
// variant described in §4.6 and supplemented from
// original_source/SlowMISNode.cc's NeighborAnnounce-and-wait pattern.
func NewSlowMISStrategyWithDiscovery(discoveryTimeout, checkInterval time.Duration) *SlowMISStrategy {
	return &SlowMISStrategy{
		UseDiscovery:     true,
		DiscoveryTimeout: discoveryTimeout,
		CheckInterval:    checkInterval,
		discovered:       make(map[int]bool),
	}
}

func (s *SlowMISStrategy) Name() string { return "slow-mis" }

func (s *SlowMISStrategy) OnStart(n *Node) {
	if s.UseDiscovery {
		n.Broadcast(&NeighborAnnounce{SenderID: n.ID()})
		n.ScheduleTimer(s.DiscoveryTimeout, tagDiscoveryTimeout)
		return
	}
	s.tryDecide(n)
}

func (s *SlowMISStrategy) OnTimer(n *Node, tag string) {
	switch tag {
	case tagDiscoveryTimeout:
		s.tryDecide(n)
		if s.CheckInterval > 0 && n.State() == StateActive {
			n.ScheduleTimer(s.CheckInterval, tagCheckInterval)
		}
	case tagCheckInterval:
		s.tryDecide(n)
		if n.State() == StateActive {
			n.ScheduleTimer(s.CheckInterval, tagCheckInterval)
		}
	}
}

func (s *SlowMISStrategy) OnMessage(n *Node, msg Message) {
	if m, ok := msg.(*NeighborAnnounce); ok {
		s.discovered[m.SenderID] = true
	}
}

func (s *SlowMISStrategy) OnNeighborInactive(n *Node, neighborID int) {
	s.tryDecide(n)
}

// tryDecide implements canJoin() from §4.6 exactly: scan active neighbors
// with a strictly-higher ID; any UNKNOWN defers, any JOINED means this node
// must not join (it will already be receiving that neighbor's JoinNotice
// directly via Node's generic §4.5 handling — this branch documents the
// predicate faithfully regardless), otherwise every higher neighbor has
// decided NOT_JOINING and this node may join.
func (s *SlowMISStrategy) tryDecide(n *Node) {
	if n.State() != StateActive {
		return
	}
	if n.IsIsolated() {
		n.JoinMIS()
		return
	}

	higherUnknown := false
	higherJoined := false
	for _, id := range n.ActiveNeighborIDs() {
		if id <= n.ID() {
			continue
		}
		switch n.NeighborRecord(id).Decision {
		case DecisionUnknown:
			higherUnknown = true
		case DecisionJoined:
			higherJoined = true
		}
	}

	switch {
	case higherUnknown:
		return // NO_DECISION
	case higherJoined:
		n.BecomeDormant()
	default:
		n.JoinMIS()
	}
}
