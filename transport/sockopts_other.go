// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package transport

// setReuseAddr is a no-op outside Linux; the portable socket options
// (TCP_NODELAY, keepalive, linger, buffer sizes) are still applied via
// net.TCPConn's own methods in connection.go.
func setReuseAddr(rc rawConn) error { return nil }
