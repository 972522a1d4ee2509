package mis

import "errors"

var (
	// ErrUnknownNeighbor names a neighbor ID never passed to AddNeighbor.
	// No call in this package returns it: NeighborRecord returns nil for
	// such an ID.
	ErrUnknownNeighbor = errors.New("mis: unknown neighbor")

	// ErrAlreadyStarted names a repeated start. Node.Start does not return
	// it: a second call to Start is a silent no-op.
	ErrAlreadyStarted = errors.New("mis: node already started")

	// ErrNoStrategy is returned by NewNode if strategy is nil.
	ErrNoStrategy = errors.New("mis: strategy is required")
)
