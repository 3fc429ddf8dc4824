// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package transport

import "time"

// Config holds the socket configuration applied to every Dial.
type Config struct {
	SendBufferBytes int
	RecvBufferBytes int
	KeepAlive       time.Duration
	ReceiveBufSize  int // size of the receive-loop's read buffer
}

// DefaultConfig returns the standard socket defaults (64 KiB send/receive
// buffers) plus an 8 KiB receive-loop read buffer.
func DefaultConfig() Config {
	return Config{
		SendBufferBytes: 64 * 1024,
		RecvBufferBytes: 64 * 1024,
		KeepAlive:       30 * time.Second,
		ReceiveBufSize:  8 * 1024,
	}
}
