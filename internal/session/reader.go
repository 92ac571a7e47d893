package session

import (
	"errors"
	"io"
	"time"
)

func (s *Session) readLoop() {
	defer s.wg.Done()
	defer close(s.inbound)

	for {
		msg, err := s.conn.ReadMessage()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.log.WithError(err).Warn("read failed, closing session")
			}
			s.state.store(StateTerminating)
			return
		}
		select {
		case s.inbound <- inboundMessage{msg: msg, arrivedAt: time.Now()}:
		default:
			// Processor can't keep up; drop rather than block the reader
			// indefinitely and risk stalling the peer's writes.
			s.log.Warn("inbound queue full, dropping message")
		}
	}
}
