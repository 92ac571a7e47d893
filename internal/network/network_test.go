package network

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixengine/internal/fix"
)

func TestMessageConnRoundTrip(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	client := NewMessageConn(clientConn, nil, nil)
	server := NewMessageConn(serverConn, nil, nil)

	msg := &fix.Message{
		Header: fix.Header{
			BeginString:  fix.BeginString,
			MsgType:      fix.MsgTypeLogon,
			SenderCompID: "C",
			TargetCompID: "S",
			MsgSeqNum:    1,
			SendingTime:  "20260801-00:00:00",
		},
		Body: &fix.Logon{EncryptMethod: 0, HeartBtInt: 30},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- client.WriteMessage(msg)
	}()

	got, err := server.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, <-errCh)
	assert.Equal(t, fix.MsgTypeLogon, got.Header.MsgType)
	assert.Equal(t, "C", got.Header.SenderCompID)
}

func TestMessageConnSkipsMalformedFrame(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	good := &fix.Message{
		Header: fix.Header{
			BeginString:  fix.BeginString,
			MsgType:      fix.MsgTypeLogon,
			SenderCompID: "C",
			TargetCompID: "S",
			MsgSeqNum:    1,
			SendingTime:  "20260801-00:00:00",
		},
		Body: &fix.Logon{EncryptMethod: 0, HeartBtInt: 30},
	}
	goodBytes, err := fix.Encode(nil, good)
	require.NoError(t, err)

	bad, err := fix.Encode(nil, good)
	require.NoError(t, err)
	bad[len(bad)-2]++ // corrupt the checksum digit

	combined := append(append([]byte{}, bad...), goodBytes...)

	server := NewMessageConn(serverConn, nil, nil)
	errCh := make(chan error, 1)
	go func() {
		_, err := clientConn.Write(combined)
		errCh <- err
	}()

	got, err := server.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, <-errCh)
	assert.Equal(t, fix.MsgTypeLogon, got.Header.MsgType)
}

func TestMessageConnEOF(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	server := NewMessageConn(serverConn, nil, nil)

	clientConn.Close()

	_, err := server.ReadMessage()
	assert.ErrorIs(t, err, io.EOF)
}

func TestBufferPoolReuse(t *testing.T) {
	pool := NewBufferPool(2, 128)
	b1 := pool.Get()
	assert.Equal(t, 0, len(b1))
	assert.Equal(t, 128, cap(b1))

	b1 = append(b1, 1, 2, 3)
	pool.Put(b1)

	b2 := pool.Get()
	assert.Equal(t, 0, len(b2))
	assert.GreaterOrEqual(t, cap(b2), 3)
}

func TestBufferPoolDropsWhenFull(t *testing.T) {
	pool := NewBufferPool(1, 64)
	pool.Put(make([]byte, 0, 64))
	pool.Put(make([]byte, 0, 64)) // dropped, pool already full

	got := pool.Get()
	assert.NotNil(t, got)
}

func TestRTTEstimatorConverges(t *testing.T) {
	e := NewRTTEstimator()
	for i := 0; i < 20; i++ {
		e.Update(5 * time.Millisecond)
	}
	est := e.Estimate()
	assert.InDelta(t, 5*time.Millisecond, est, float64(2*time.Millisecond))
}

func TestRTTEstimatorBounds(t *testing.T) {
	e := NewRTTEstimator()
	e.Update(1 * time.Nanosecond)
	assert.GreaterOrEqual(t, e.Estimate(), minEstimate)

	e2 := NewRTTEstimator()
	e2.Update(1 * time.Hour)
	assert.LessOrEqual(t, e2.Estimate(), maxEstimate)
}
