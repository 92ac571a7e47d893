package session

import (
	"time"

	"fixengine/internal/fix"
)

func (s *Session) processLoop() {
	defer s.wg.Done()
	defer close(s.outbound)

	for in := range s.inbound {
		responses, next := s.handler.Handle(s.state.load(), in)
		s.state.store(next)

		if _, ok := in.msg.Body.(*fix.NewOrderSingle); ok {
			latency := time.Since(in.arrivedAt)
			s.rtt.Update(latency)
			RecordOrderLatency(uint64(latency.Microseconds()))
		}

		for _, out := range responses {
			select {
			case s.outbound <- out:
			default:
				s.log.Warn("outbound queue full, dropping response")
			}
		}

		if next == StateTerminating {
			// Force the reader's blocked conn.Read to return so the
			// session's goroutines can all unwind.
			s.conn.Close()
			return
		}
	}
}
