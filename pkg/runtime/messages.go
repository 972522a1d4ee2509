package runtime

import "github.com/distributed-mis/pkg/mis"

// startSignal and timerFired are internal, mailbox-local messages: they
// exist only to route a real-clock event (the Start call, a fired
// time.AfterFunc) back through the node actor's own goroutine, so it is
// always that single goroutine — never the caller's or the timer
// package's — that ever calls into a *mis.Node.
type startSignal struct{}

func (startSignal) Type() string { return "runtime.start" }

type timerFired struct {
	tag string
	seq uint64
}

func (timerFired) Type() string { return "runtime.timerFired" }

// nodeTerminated is sent by a NodeActor to its Supervisor once the
// wrapped node reaches a terminal state.
type nodeTerminated struct {
	NodeID  int
	Outcome mis.Outcome
}

func (nodeTerminated) Type() string { return "runtime.nodeTerminated" }

// RunComplete is sent on the Supervisor's completion channel once every
// registered node has reported terminal.
type RunComplete struct {
	Outcomes []mis.Outcome
}
