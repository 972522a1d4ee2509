package mis

import "time"

// TimerHandle is an opaque handle returned by Host.ScheduleTimer. The core
// never inspects it; it only ever hands it back to Host.CancelTimer.
type TimerHandle interface{}

// Host is the contract a runtime must provide for a Node to run. Nothing in
// this package depends on any particular host implementation; pkg/runtime
// is one such implementation, built on pkg/actor.
type Host interface {
	// ScheduleTimer fires a timer event for this node at now()+delay,
	// delivered back as a call to Node.HandleTimer(tag).
	ScheduleTimer(delay time.Duration, tag string) TimerHandle

	// CancelTimer is idempotent: cancelling an already-fired or
	// already-cancelled handle is a no-op, never an error.
	CancelTimer(h TimerHandle)

	// Broadcast delivers msg to every connected neighbor of this node,
	// regardless of the sender's local view of that neighbor's active
	// flag — recipients are responsible for filtering.
	Broadcast(msg Message)

	// Now returns monotonically non-decreasing host time.
	Now() time.Time

	// Uniform01 draws from the continuous uniform distribution on [0,1).
	Uniform01() float64
}
