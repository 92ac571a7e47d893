package network

import (
	"errors"
	"io"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"fixengine/internal/fix"
)

const (
	initialReadBuf = 4096
	maxReadBuf     = 1 << 20 // 1MiB ceiling before a session is considered abusive
)

// MessageConn wraps a net.Conn with FIX message framing: ReadMessage grows
// an internal buffer until a complete message arrives, WriteMessage encodes
// and writes one.
type MessageConn struct {
	conn net.Conn
	pool *BufferPool
	log  *logrus.Entry

	buf   []byte // accumulated unconsumed bytes
	start int     // bytes [0:start) have been consumed and can be discarded
}

// NewMessageConn wraps conn. pool may be nil, in which case each connection
// allocates its own growable buffer. log may be nil, in which case dropped
// malformed frames go unlogged.
func NewMessageConn(conn net.Conn, pool *BufferPool, log *logrus.Entry) *MessageConn {
	var buf []byte
	if pool != nil {
		buf = pool.Get()
	} else {
		buf = make([]byte, 0, initialReadBuf)
	}
	return &MessageConn{conn: conn, pool: pool, log: log, buf: buf}
}

// Close releases the underlying connection and returns any held buffer to
// the pool.
func (c *MessageConn) Close() error {
	if c.pool != nil && c.buf != nil {
		c.pool.Put(c.buf[:0])
		c.buf = nil
	}
	return c.conn.Close()
}

// ReadMessage blocks until one complete FIX message has been read and
// decoded, or the connection fails. A clean EOF with no partial data
// pending returns io.EOF.
//
// A malformed or unsupported frame (bad checksum, missing field, unknown
// msg_type) is a codec-level error, not a transport failure: ReadMessage
// logs it, skips past the offending frame, and keeps reading. Only errors
// from the underlying connection itself are returned.
func (c *MessageConn) ReadMessage() (*fix.Message, error) {
	for {
		msg, n, err := fix.Decode(c.buf[c.start:])
		if err != nil {
			if n <= 0 {
				n = 1 // always make forward progress past a bad frame
			}
			c.start += n
			c.compact()
			if c.log != nil {
				c.log.WithError(err).Warn("dropping malformed FIX message")
			}
			continue
		}
		if msg != nil {
			c.start += n
			c.compact()
			return msg, nil
		}

		if err := c.fill(); err != nil {
			return nil, err
		}
	}
}

// fill reads more bytes from the connection into buf, growing it if full.
func (c *MessageConn) fill() error {
	if len(c.buf) == cap(c.buf) {
		if cap(c.buf) >= maxReadBuf {
			return &Error{Kind: KindBufferPoolExhausted, Detail: "message exceeds max buffer size"}
		}
		grown := make([]byte, len(c.buf), cap(c.buf)*2)
		copy(grown, c.buf)
		c.buf = grown
	}
	readStart := time.Now()
	n, err := c.conn.Read(c.buf[len(c.buf):cap(c.buf)])
	recordRead(time.Since(readStart).Nanoseconds())
	if n > 0 {
		c.buf = c.buf[:len(c.buf)+n]
	}
	if err != nil {
		if errors.Is(err, io.EOF) && c.start == len(c.buf) {
			return io.EOF
		}
		if err != io.EOF {
			return errIO("read", err)
		}
		return io.EOF
	}
	return nil
}

// compact discards consumed bytes once they grow large relative to the
// buffer, so a long-lived connection doesn't retain its peak size forever.
func (c *MessageConn) compact() {
	if c.start == 0 {
		return
	}
	if c.start == len(c.buf) {
		c.buf = c.buf[:0]
		c.start = 0
		return
	}
	if c.start > cap(c.buf)/2 {
		remaining := len(c.buf) - c.start
		copy(c.buf, c.buf[c.start:])
		c.buf = c.buf[:remaining]
		c.start = 0
	}
}

// WriteMessage encodes msg and writes it to the connection in one call.
func (c *MessageConn) WriteMessage(msg *fix.Message) error {
	var scratch [512]byte
	out, err := fix.Encode(scratch[:0], msg)
	if err != nil {
		return err
	}
	writeStart := time.Now()
	_, err = c.conn.Write(out)
	recordWrite(time.Since(writeStart).Nanoseconds())
	if err != nil {
		return errIO("write", err)
	}
	return nil
}
