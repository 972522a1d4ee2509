package outcome

import (
	"encoding/json"
	"testing"

	"github.com/distributed-mis/pkg/mis"
)

func TestSet_AddKeepsMoreCompleteRecord(t *testing.T) {
	s := NewSet()
	s.Add(mis.Outcome{NodeID: 1, InMIS: false, MessagesSent: 2, MessagesReceived: 2})
	s.Add(mis.Outcome{NodeID: 1, InMIS: true, MessagesSent: 5, MessagesReceived: 5})

	got, exists := s.Get(1)
	if !exists {
		t.Fatal("expected record for node 1")
	}
	if !got.InMIS || got.MessagesSent != 5 {
		t.Fatalf("stale record overwrote the more complete one: %+v", got)
	}
}

func TestSet_AddIgnoresStaleDuplicate(t *testing.T) {
	s := NewSet()
	s.Add(mis.Outcome{NodeID: 1, InMIS: true, MessagesSent: 5, MessagesReceived: 5})
	s.Add(mis.Outcome{NodeID: 1, InMIS: false, MessagesSent: 1, MessagesReceived: 1})

	got, _ := s.Get(1)
	if !got.InMIS {
		t.Fatalf("less complete record overwrote the existing one: %+v", got)
	}
}

func TestSet_Merge(t *testing.T) {
	a := NewSet()
	a.Add(mis.Outcome{NodeID: 1, InMIS: true, MessagesSent: 3, MessagesReceived: 3})

	b := NewSet()
	b.Add(mis.Outcome{NodeID: 2, InMIS: false, MessagesSent: 4, MessagesReceived: 4})

	a.Merge(b)
	if a.Size() != 2 {
		t.Fatalf("want 2 records after merge, got %d", a.Size())
	}
}

func TestSet_Summarize(t *testing.T) {
	s := NewSet()
	s.Add(mis.Outcome{NodeID: 1, InMIS: true, RoundsOrPhasesUsed: 3})
	s.Add(mis.Outcome{NodeID: 2, InMIS: false, RoundsOrPhasesUsed: 5})
	s.Add(mis.Outcome{NodeID: 3, InMIS: false, RoundsOrPhasesUsed: 1})

	sum := s.Summarize()
	if sum.TotalNodes != 3 || sum.InMIS != 1 || sum.Dormant != 2 || sum.MaxRounds != 5 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestSet_JSONRoundTrip(t *testing.T) {
	s := NewSet()
	s.Add(mis.Outcome{NodeID: 1, InMIS: true, RoundsOrPhasesUsed: 2, MessagesSent: 4})
	s.Add(mis.Outcome{NodeID: 2, InMIS: false, RoundsOrPhasesUsed: 2, MessagesSent: 3})

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	restored := NewSet()
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if restored.Size() != 2 {
		t.Fatalf("want 2 records after round trip, got %d", restored.Size())
	}
}
