// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pool

import "errors"

// ErrExhausted is returned by Allocate when the pool's free list is empty.
// This is the only expected Allocate failure; callers must check it.
var ErrExhausted = errors.New("pool: exhausted")

// ErrShutdown is returned by Allocate once Shutdown has been called.
var ErrShutdown = errors.New("pool: shut down")

// ErrNotEmpty is returned by Reset when allocated != 0.
var ErrNotEmpty = errors.New("pool: not empty")
