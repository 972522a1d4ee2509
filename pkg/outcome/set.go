package outcome

import (
	"sort"
	"sync"

	"github.com/distributed-mis/pkg/mis"
)

// Set collects one terminal Outcome per node across a run. It is the
// host-side aggregation point a Supervisor (or a cluster of them, one per
// machine) folds every node's result into.
//
// Add/Merge follow the same "most complete information wins" conflict rule
// as a Max-Set CRDT: when two records exist for the same node (possible
// if a node's terminal report is retransmitted, or two partial Sets from
// different machines are merged), the one with the larger total message
// count is kept, since it reflects a longer-lived, more informed view of
// the run rather than a stale duplicate.
type Set struct {
	mu      sync.RWMutex
	records map[int]mis.Outcome
}

func NewSet() *Set {
	return &Set{records: make(map[int]mis.Outcome)}
}

func moreComplete(a, b mis.Outcome) bool {
	return (a.MessagesSent + a.MessagesReceived) >= (b.MessagesSent + b.MessagesReceived)
}

// Add records o, replacing any existing record for the same node only if
// o is at least as complete.
func (s *Set) Add(o mis.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.records[o.NodeID]
	if !exists || moreComplete(o, existing) {
		s.records[o.NodeID] = o
	}
}

func (s *Set) Get(nodeID int) (mis.Outcome, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, exists := s.records[nodeID]
	return o, exists
}

// All returns every recorded outcome, ordered by node ID for deterministic
// iteration.
func (s *Set) All() []mis.Outcome {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]mis.Outcome, 0, len(s.records))
	for _, o := range s.records {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NodeID < out[j].NodeID })
	return out
}

func (s *Set) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Merge folds other's records into s, applying the same completeness rule
// as Add to every entry.
func (s *Set) Merge(other *Set) {
	other.mu.RLock()
	incoming := make([]mis.Outcome, 0, len(other.records))
	for _, o := range other.records {
		incoming = append(incoming, o)
	}
	other.mu.RUnlock()

	for _, o := range incoming {
		s.Add(o)
	}
}

// Summary is the aggregate view a host logs or reports at end of run.
type Summary struct {
	TotalNodes int
	InMIS      int
	Dormant    int
	MaxRounds  int
}

func (s *Set) Summarize() Summary {
	all := s.All()
	sum := Summary{TotalNodes: len(all)}
	for _, o := range all {
		if o.InMIS {
			sum.InMIS++
		} else {
			sum.Dormant++
		}
		if o.RoundsOrPhasesUsed > sum.MaxRounds {
			sum.MaxRounds = o.RoundsOrPhasesUsed
		}
	}
	return sum
}
