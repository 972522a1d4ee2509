package mis

// Strategy is the algorithm-specific half of the node shell called for by
// the re-architecture notes: one Node type, three strategies implementing
// this contract instead of three near-duplicate node classes.
//
// Node handles everything common to all three algorithms before delegating:
// lifecycle, the termination cascade, round-gating of algorithm messages,
// and filtering by a neighbor's active flag. A Strategy only ever sees
// messages addressed to it that passed those checks.
type Strategy interface {
	// Name identifies the algorithm for logging.
	Name() string

	// OnStart is invoked once, after neighbor initialization, before any
	// timer or message has been delivered.
	OnStart(n *Node)

	// OnTimer is invoked for every timer this strategy scheduled.
	OnTimer(n *Node, tag string)

	// OnMessage is invoked for every algorithm-specific message (not
	// JoinNotice/TerminateNotice, which Node handles itself) that passed
	// round- and active-neighbor filtering.
	OnMessage(n *Node, msg Message)

	// OnNeighborInactive is invoked after Node processes a TerminateNotice
	// that shrank the active set while this node is still ACTIVE, giving the
	// strategy a chance to re-evaluate its join predicate. A JoinNotice does
	// not reach it: Node moves straight to DORMANT instead.
	OnNeighborInactive(n *Node, neighborID int)
}
