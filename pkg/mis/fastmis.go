package mis

import "time"

const (
	tagPhaseStart      = "fastmis.phaseStart"
	tagRandomValueSend = "fastmis.randomValueSend"
)

// FastMISStrategy is the randomized, per-phase priority algorithm of §4.7.
type FastMISStrategy struct {
	InitialStartDelay    time.Duration
	PhaseInterval        time.Duration
	RandomValueSendDelay time.Duration
}

func NewFastMISStrategy(initialStartDelay, phaseInterval, randomValueSendDelay time.Duration) *FastMISStrategy {
	return &FastMISStrategy{
		InitialStartDelay:    initialStartDelay,
		PhaseInterval:        phaseInterval,
		RandomValueSendDelay: randomValueSendDelay,
	}
}

func (s *FastMISStrategy) Name() string { return "fast-mis" }

func (s *FastMISStrategy) OnStart(n *Node) {
	jitter := jitterDelay(n, s.InitialStartDelay)
	n.ScheduleTimer(jitter, tagPhaseStart)
}

func (s *FastMISStrategy) OnTimer(n *Node, tag string) {
	switch tag {
	case tagPhaseStart:
		n.BeginNewRound()
		n.ScheduleTimer(s.RandomValueSendDelay, tagRandomValueSend)
		n.ScheduleTimer(s.PhaseInterval, tagPhaseStart) // self-reschedule for the next phase boundary
		s.tryDecide(n)                                  // isolated node must join at phaseStart
	case tagRandomValueSend:
		v := n.Host().Uniform01()
		n.SetOwnRandomValue(v)
		n.Broadcast(&RandomValue{SenderID: n.ID(), Round: n.CurrentRound(), Value: v})
		s.tryDecide(n)
	}
}

func (s *FastMISStrategy) OnMessage(n *Node, msg Message) {
	rv, ok := msg.(*RandomValue)
	if !ok {
		return
	}
	rec := n.NeighborRecord(rv.SenderID)
	rec.LastRandomValue = rv.Value
	rec.RandomReportedRound = rv.Round
	s.tryDecide(n)
}

func (s *FastMISStrategy) OnNeighborInactive(n *Node, neighborID int) {
	s.tryDecide(n)
}

// tryDecide implements the §4.7 join predicate: join iff this node's own
// draw is strictly smaller than every currently-active neighbor's reported
// draw for this phase, and every active neighbor has reported. A tie
// (vanishingly unlikely with a continuous draw) causes no-join this phase;
// the node re-draws at the next phaseStart.
func (s *FastMISStrategy) tryDecide(n *Node) {
	if n.State() != StateActive {
		return
	}
	if n.IsIsolated() {
		n.JoinMIS()
		return
	}
	if !n.HasOwnRandomValueForRound(n.CurrentRound()) {
		return
	}

	own := n.OwnRandomValue()
	for _, id := range n.ActiveNeighborIDs() {
		rec := n.NeighborRecord(id)
		if rec.RandomReportedRound != n.CurrentRound() {
			return // not every active neighbor has reported this phase
		}
		if own >= rec.LastRandomValue {
			return // lost this phase (or tied)
		}
	}
	n.JoinMIS()
}

// jitterDelay draws a uniform delay in [0, max) to break simultaneity
// across nodes starting their first timer, per §6's initialStartDelay.
func jitterDelay(n *Node, max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(n.Host().Uniform01() * float64(max))
}
