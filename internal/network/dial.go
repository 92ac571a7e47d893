package network

import (
	"context"
	"net"
	"time"
)

// Dialer builds outbound connections. It is an interface, not a bare
// function, so a benchmark driver can swap in a pooling or rate-limited
// implementation without touching call sites.
type Dialer interface {
	DialContext(ctx context.Context, address string) (net.Conn, error)
}

// DefaultDialer connects over plain TCP with a timeout, then applies the
// standard low-latency socket tuning before handing the connection back.
type DefaultDialer struct {
	Timeout time.Duration
}

// NewDefaultDialer returns a DefaultDialer with the given connect timeout.
func NewDefaultDialer(timeout time.Duration) *DefaultDialer {
	return &DefaultDialer{Timeout: timeout}
}

func (d *DefaultDialer) DialContext(ctx context.Context, address string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: d.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, errConnection("dial "+address, err)
	}
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return conn, nil
	}
	if err := tuneTCPConn(tcpConn); err != nil {
		_ = conn.Close()
		return nil, errConnection("tune "+address, err)
	}
	return tcpConn, nil
}

// Connect is the common-case entry point: dial address with timeout and
// return a tuned connection.
func Connect(ctx context.Context, address string, timeout time.Duration) (net.Conn, error) {
	return NewDefaultDialer(timeout).DialContext(ctx, address)
}
