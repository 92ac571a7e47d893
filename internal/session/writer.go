package session

func (s *Session) writeLoop() {
	defer s.wg.Done()

	for out := range s.outbound {
		if err := s.conn.WriteMessage(out.msg); err != nil {
			s.log.WithError(err).Warn("write failed, closing session")
			s.state.store(StateTerminating)
			s.conn.Close()
			return
		}
	}
}
