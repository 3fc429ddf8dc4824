// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package transport

import "errors"

// ErrNotConnected is returned by Send once the connection has gone down
// (peer close, ECONNRESET, EPIPE) and no reconnect has occurred.
var ErrNotConnected = errors.New("transport: not connected")

// DataCallback receives raw bytes as they arrive on the receive loop.
// It is called from the receive loop's own goroutine; implementations
// that need to hand off to a parser must not block for long.
type DataCallback func(data []byte)

// DisconnectCallback fires when the connection is observed to have gone
// down: from the receive loop on a read error, and from Send on EPIPE,
// ECONNRESET, EOF or a closed socket. A failed Send followed by the
// receive loop's own read error fires it once from each path. A
// caller-initiated Disconnect does not fire it.
type DisconnectCallback func(err error)
