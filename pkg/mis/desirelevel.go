package mis

import (
	"math"
	"time"
)

const (
	tagRoundStart     = "desirelevel.roundStart"
	tagDesireLevelSend = "desirelevel.desireLevelSend"
	tagMarkSend        = "desirelevel.markSend"
)

// DesireLevelStrategy is the adaptive-marking algorithm of §4.8.
//
// Note on the join predicate: original_source/DesireLevelMISNode.cc joins
// as soon as it sees "marked and no marked neighbor reported yet," without
// waiting for every active neighbor to report — §9 flags this as a
// correctness bug that can let two adjacent marked nodes both join under
// reorder. This strategy implements the corrected predicate §4.8 and §9
// require: join only once every active neighbor has reported its mark for
// the round.
type DesireLevelStrategy struct {
	InitialStartDelay    time.Duration
	RoundInterval        time.Duration
	DesireLevelSendDelay time.Duration
}

func NewDesireLevelStrategy(initialStartDelay, roundInterval, desireLevelSendDelay time.Duration) *DesireLevelStrategy {
	return &DesireLevelStrategy{
		InitialStartDelay:    initialStartDelay,
		RoundInterval:        roundInterval,
		DesireLevelSendDelay: desireLevelSendDelay,
	}
}

func (s *DesireLevelStrategy) Name() string { return "desire-level-mis" }

func (s *DesireLevelStrategy) OnStart(n *Node) {
	n.SetDesireLevel(0.5)
	jitter := jitterDelay(n, s.InitialStartDelay)
	n.ScheduleTimer(jitter, tagRoundStart)
}

func (s *DesireLevelStrategy) OnTimer(n *Node, tag string) {
	switch tag {
	case tagRoundStart:
		n.BeginNewRound()
		s.updateDesireLevel(n)
		n.ScheduleTimer(s.DesireLevelSendDelay, tagDesireLevelSend)
		n.ScheduleTimer(s.RoundInterval, tagRoundStart) // self-reschedule for next round boundary
		s.tryDecide(n)                                  // isolated node must join at round start
	case tagDesireLevelSend:
		n.Broadcast(&DesireLevel{SenderID: n.ID(), Round: n.CurrentRound(), P: n.DesireLevel()})
		n.ScheduleTimer(s.DesireLevelSendDelay, tagMarkSend)
	case tagMarkSend:
		u := n.Host().Uniform01()
		marked := u < n.DesireLevel()
		n.SetOwnMark(marked)
		n.Broadcast(&Mark{SenderID: n.ID(), Round: n.CurrentRound(), Marked: marked})
		s.tryDecide(n)
	}
}

// updateDesireLevel applies the §4.8 step-2 rule at the start of round r
// using effectiveDegree carried over from round r-1's DesireLevel arrivals.
func (s *DesireLevelStrategy) updateDesireLevel(n *Node) {
	effectiveDegree := n.EffectiveDegree()
	if effectiveDegree >= 2.0 {
		n.SetDesireLevel(n.DesireLevel() / 2)
	} else {
		n.SetDesireLevel(math.Min(2*n.DesireLevel(), 0.5))
	}
}

func (s *DesireLevelStrategy) OnMessage(n *Node, msg Message) {
	switch m := msg.(type) {
	case *DesireLevel:
		rec := n.NeighborRecord(m.SenderID)
		rec.LastDesireLevel = m.P
		rec.DesireReportedRound = m.Round
	case *Mark:
		rec := n.NeighborRecord(m.SenderID)
		rec.Marked = m.Marked
		rec.MarkReportedRound = m.Round
		s.tryDecide(n)
	}
}

// OnNeighborInactive re-evaluates after active-set shrinkage. The source's
// processTerminateNotification omits this for Desire-Level MIS (unlike its
// Fast-MIS counterpart); §4.5's general active-set-shrinkage rule applies
// to every strategy, so this corrects that omission.
func (s *DesireLevelStrategy) OnNeighborInactive(n *Node, neighborID int) {
	s.tryDecide(n)
}

// tryDecide implements the corrected §4.8 join predicate: this node must be
// marked, and every currently-active neighbor must have reported its mark
// for the current round, and none of them may be marked.
func (s *DesireLevelStrategy) tryDecide(n *Node) {
	if n.State() != StateActive {
		return
	}
	if n.IsIsolated() {
		n.JoinMIS()
		return
	}
	if !n.HasOwnMarkForRound(n.CurrentRound()) || !n.OwnMark() {
		return
	}

	for _, id := range n.ActiveNeighborIDs() {
		rec := n.NeighborRecord(id)
		if rec.MarkReportedRound != n.CurrentRound() {
			return // not every active neighbor has confirmed its mark yet
		}
		if rec.Marked {
			return
		}
	}
	n.JoinMIS()
}
