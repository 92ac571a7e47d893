package session

import (
	"time"

	"fixengine/internal/fix"
)

// queueCapacity bounds both the inbound and outbound queues of a session.
// Sends onto either queue never block: when a queue is full, the reader or
// processor logs a warning and drops the message, so the peer is not
// backpressured and the dropped message gets no response.
const queueCapacity = 1000

// inboundMessage carries one decoded message from the reader to the
// processor, stamped with its arrival time for latency accounting.
type inboundMessage struct {
	msg       *fix.Message
	arrivedAt time.Time
}

// outboundMessage carries one synthesized response from the processor to
// the writer.
type outboundMessage struct {
	msg *fix.Message
}
