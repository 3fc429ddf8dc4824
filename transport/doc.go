// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package transport wraps a single outbound FIX TCP connection: socket
// configuration (TCP_NODELAY, keepalive, linger, buffer sizes, and, on
// Linux, SO_REUSEADDR via golang.org/x/sys/unix), an asynchronous
// receive loop that feeds raw bytes to a callback, and a Send method
// guarded by the single send-mutex the partial-send loop is serialized
// through.
package transport
