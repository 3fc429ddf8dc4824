// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"time"

	"github.com/anminfang-tamu/fixgw/message"
)

// OverflowPolicy governs Push behavior when a Heap queue is at capacity.
// LockFree always behaves as DropNewest (strict priority drop-on-full).
type OverflowPolicy int

const (
	DropOldest OverflowPolicy = iota
	DropNewest
	Block
	Reject
)

// Queue is the shared contract between the Heap and LockFree
// implementations. Push/TryPop/Pop/Shutdown follow the
// Running -> Shutting-down -> Drained state machine: after Shutdown,
// Push refuses and Pop drains remaining items opportunistically.
type Queue interface {
	// Push enqueues env under its own Priority. Returns false if refused
	// (Reject overflow policy, a full LockFree lane, or after Shutdown).
	Push(env *message.Envelope) bool

	// TryPop returns the highest-priority available envelope without
	// blocking, or ok=false if empty.
	TryPop() (env *message.Envelope, ok bool)

	// Pop blocks up to timeout for an envelope to become available.
	Pop(timeout time.Duration) (env *message.Envelope, ok bool)

	// Shutdown wakes all waiters and refuses further Push calls.
	Shutdown()

	// Len returns the current total number of enqueued envelopes across
	// all priorities.
	Len() int
}

var (
	_ Queue = (*Heap)(nil)
	_ Queue = (*LockFree)(nil)
)

// Stats is a point-in-time snapshot of a queue's observability counters.
// Neither implementation records per-push latency: PushLatencyNanos is
// always zero for both Heap and LockFree.
type Stats struct {
	PeakSize         int
	DroppedCount     uint64
	PushLatencyNanos int64
}
