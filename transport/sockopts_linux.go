// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package transport

import (
	"golang.org/x/sys/unix"
)

// setReuseAddr sets SO_REUSEADDR on the connection's underlying file
// descriptor. Go's net package does not expose this option directly, so
// it is reached via a raw setsockopt call on the
// syscall.RawConn.
func setReuseAddr(rc rawConn) error {
	var sockErr error
	err := rc.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}
