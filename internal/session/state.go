package session

import "sync/atomic"

// State is the per-session lifecycle state machine: every session starts
// Pending, becomes Authenticated after a successful Logon exchange, and
// ends in Terminating once either side closes the connection.
type State int32

const (
	StatePending State = iota
	StateAuthenticated
	StateTerminating
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateAuthenticated:
		return "Authenticated"
	case StateTerminating:
		return "Terminating"
	default:
		return "Unknown"
	}
}

// stateBox is an atomically-updated State, shared between the reader,
// processor, and writer goroutines of one session.
type stateBox struct {
	v int32
}

func (b *stateBox) load() State {
	return State(atomic.LoadInt32(&b.v))
}

func (b *stateBox) store(s State) {
	atomic.StoreInt32(&b.v, int32(s))
}
