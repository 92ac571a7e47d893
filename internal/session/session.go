package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fixengine/internal/network"
)

// Handler synthesizes protocol responses for one session. Processor calls
// it once per inbound message; it never blocks on I/O.
type Handler interface {
	Handle(state State, msg inboundMessage) (responses []outboundMessage, next State)
}

// Session owns one accepted connection's reader, processor, and writer
// goroutines, and the bounded queues between them.
type Session struct {
	ID         string
	conn       *network.MessageConn
	handler    Handler
	admission  *Admission
	rtt        *network.RTTEstimator
	state      stateBox
	log        *logrus.Entry

	inbound  chan inboundMessage
	outbound chan outboundMessage

	wg sync.WaitGroup
}

// New wraps an accepted connection in a Session, ready for Run.
func New(conn *network.MessageConn, handler Handler, admission *Admission, log *logrus.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		ID:        id,
		conn:      conn,
		handler:   handler,
		admission: admission,
		rtt:       network.NewRTTEstimator(),
		inbound:   make(chan inboundMessage, queueCapacity),
		outbound:  make(chan outboundMessage, queueCapacity),
		log:       log.WithField("session_id", id),
	}
}

// Run drives the session to completion: it starts the reader, processor,
// and writer goroutines and blocks until all three exit, which happens
// once the connection is closed, a read or write on it fails, or a Logout
// is processed. Malformed frames do not end the session.
// The caller must have already acquired an admission permit; Run releases
// it on return.
func (s *Session) Run() {
	defer s.admission.Release()
	defer s.conn.Close()

	s.wg.Add(3)
	go s.readLoop()
	go s.processLoop()
	go s.writeLoop()
	s.wg.Wait()
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	return s.state.load()
}

// RTTEstimate returns the session's smoothed latency figure.
func (s *Session) RTTEstimate() time.Duration {
	return s.rtt.Estimate()
}
