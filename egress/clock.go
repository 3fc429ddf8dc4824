// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package egress

import "time"

// nowNanos stamps envelope queue-entry and send times with
// time.Now().UnixNano(), the clock message.New callers typically pass
// for creation timestamps. It reads the wall clock, not a monotonic
// source, so a wall-clock step can make later stamps smaller.
func nowNanos() int64 { return time.Now().UnixNano() }
