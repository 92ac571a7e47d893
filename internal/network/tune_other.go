//go:build !linux

package network

import "net"

// tuneLinuxOnly is a no-op on non-Linux platforms: SO_PRIORITY and
// TCP_QUICKACK have no portable equivalent.
func tuneLinuxOnly(conn *net.TCPConn) error {
	return nil
}
