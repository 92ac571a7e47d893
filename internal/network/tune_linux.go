//go:build linux

package network

import (
	"net"

	"golang.org/x/sys/unix"
)

// socketPriority mirrors the priority a latency-sensitive trading session
// expects ahead of best-effort traffic on the same host.
const socketPriority = 6

// tuneLinuxOnly raises SO_PRIORITY and sets TCP_QUICKACK, both only
// meaningful on Linux.
func tuneLinuxOnly(conn *net.TCPConn) error {
	sc, err := conn.SyscallConn()
	if err != nil {
		return err
	}
	var sockErr error
	ctrlErr := sc.Control(func(fd uintptr) {
		if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_PRIORITY, socketPriority); err != nil {
			sockErr = err
			return
		}
		if err := unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_QUICKACK, 1); err != nil {
			sockErr = err
			return
		}
	})
	if ctrlErr != nil {
		return ctrlErr
	}
	return sockErr
}
