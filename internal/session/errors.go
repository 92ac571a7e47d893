// Package session drives one FIX connection's lifecycle: a reader goroutine
// decoding inbound messages, a processor goroutine synthesizing responses,
// and a writer goroutine flushing them, connected by bounded queues.
package session

import "fmt"

// Kind enumerates session-level failure modes.
type Kind int

const (
	KindAdmissionRejected Kind = iota
	KindQueueFull
	KindTerminated
)

func (k Kind) String() string {
	switch k {
	case KindAdmissionRejected:
		return "AdmissionRejected"
	case KindQueueFull:
		return "QueueFull"
	case KindTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Error is the session package's error type.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("session: %s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("session: %s", e.Kind)
}
