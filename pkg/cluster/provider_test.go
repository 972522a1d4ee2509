package cluster

import (
	"context"
	"testing"

	"github.com/distributed-mis/pkg/actor"
)

func TestSimpleProvider_RegisterAndFindActor(t *testing.T) {
	p := NewSimpleProvider("m0", nil, nil)
	pid := actor.NewPID("m1", "node-3")

	if err := p.RegisterActor(actor.NodeType, pid); err != nil {
		t.Fatalf("RegisterActor: %v", err)
	}

	found, err := p.FindActor("node-3")
	if err != nil {
		t.Fatalf("FindActor: %v", err)
	}
	if !found.Equal(pid) {
		t.Fatalf("want %s, got %s", pid, found)
	}
}

func TestSimpleProvider_GetActorsSortedDeterministically(t *testing.T) {
	p := NewSimpleProvider("m0", nil, nil)
	p.RegisterActor(actor.NodeType, actor.NewPID("m2", "node-1"))
	p.RegisterActor(actor.NodeType, actor.NewPID("m1", "node-9"))

	got := p.GetActors(actor.NodeType)
	if len(got) != 2 || got[0].MachineID != "m1" {
		t.Fatalf("expected machine m1 first, got %+v", got)
	}
}

func TestTransport_RejectsLocalDelivery(t *testing.T) {
	tr := NewTransport("m0", nil)
	err := tr.Send(actor.NewPID("m0", "node-1"), &fakeMessage{})
	if err == nil {
		t.Fatal("expected an error for a local PID sent over transport")
	}
}

func TestTransport_StartStop(t *testing.T) {
	tr := NewTransport("m0", nil)
	if err := tr.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := tr.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

type fakeMessage struct{}

func (fakeMessage) Type() string { return "fake" }
