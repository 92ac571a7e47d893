package network

import (
	"net"
	"time"
)

const (
	socketBufferSize = 4 << 20 // 4MiB
)

// tuneTCPConn applies the OS-independent half of the low-latency socket
// configuration: Nagle disabled and generous send/receive buffers. The
// Linux-only options (SO_PRIORITY, TCP_QUICKACK) are applied by the
// build-tagged tuneLinuxOnly in tune_linux.go / tune_other.go.
func tuneTCPConn(conn *net.TCPConn) error {
	if err := conn.SetNoDelay(true); err != nil {
		return err
	}
	if err := conn.SetReadBuffer(socketBufferSize); err != nil {
		return err
	}
	if err := conn.SetWriteBuffer(socketBufferSize); err != nil {
		return err
	}
	if err := conn.SetKeepAlive(true); err != nil {
		return err
	}
	if err := conn.SetKeepAlivePeriod(30 * time.Second); err != nil {
		return err
	}
	return tuneLinuxOnly(conn)
}
