// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"time"

	"code.hybscloud.com/spin"

	"github.com/anminfang-tamu/fixgw/internal/lfq"
	"github.com/anminfang-tamu/fixgw/message"
)

const popBackoffSleep = 100 * time.Microsecond

// LockFree is the wait-free priority queue: four independent MPMC ring
// lanes, one per priority, each of power-of-two capacity. Push routes to
// the lane matching the envelope's priority; pop scans lanes
// CRITICAL->HIGH->MEDIUM->LOW and returns the first non-empty one. A
// full lane refuses the push (strict-priority drop-on-full) and bumps a
// drop counter; there is no blocking pop, only a spin-then-sleep backoff.
type LockFree struct {
	lanes [4]*lfq.MPMC[*message.Envelope]

	shutdown atomicBool
	dropped  atomicUint64
}

// LaneCapacities configures the four lanes by priority index
// (message.Low .. message.Critical).
type LaneCapacities [4]int

// DefaultLaneCapacities returns the standard per-priority lane sizes
// (1024/2048/4096/8192 for LOW/MEDIUM/HIGH/CRITICAL).
func DefaultLaneCapacities() LaneCapacities {
	return LaneCapacities{1024, 2048, 4096, 8192}
}

// NewLockFree creates a LockFree queue with one lane per priority, sized
// by caps.
func NewLockFree(caps LaneCapacities) *LockFree {
	q := &LockFree{}
	for p := 0; p < 4; p++ {
		q.lanes[p] = lfq.NewMPMC[*message.Envelope](caps[p])
	}
	return q
}

func (q *LockFree) Push(env *message.Envelope) bool {
	if q.shutdown.load() {
		return false
	}
	lane := q.lanes[env.Priority]
	if err := lane.Enqueue(&env); err != nil {
		q.dropped.add(1)
		return false
	}
	return true
}

// TryPop scans lanes in descending priority order and returns the first
// available envelope.
func (q *LockFree) TryPop() (*message.Envelope, bool) {
	for p := 3; p >= 0; p-- {
		if env, err := q.lanes[p].Dequeue(); err == nil {
			return env, true
		}
	}
	return nil, false
}

// Pop busy-waits up to timeout, backing off with spin.Wait on the
// uncontended fast-retry path and falling back to a fixed micro-sleep
// once a full scan of all lanes comes up empty — the same backoff object
// serves both.
func (q *LockFree) Pop(timeout time.Duration) (*message.Envelope, bool) {
	deadline := time.Now().Add(timeout)
	sw := spin.Wait{}
	for {
		if env, ok := q.TryPop(); ok {
			return env, true
		}
		if q.shutdown.load() {
			// Drained: one last scan in case something landed between
			// the TryPop above and the shutdown check.
			if env, ok := q.TryPop(); ok {
				return env, true
			}
			return nil, false
		}
		if time.Now().After(deadline) {
			return nil, false
		}
		sw.Once()
		time.Sleep(popBackoffSleep)
	}
}

// Shutdown drains all lanes (no more enqueues are accepted) and refuses
// further Push calls.
func (q *LockFree) Shutdown() {
	q.shutdown.store(true)
	for _, lane := range q.lanes {
		lane.Drain()
	}
}

// Len sums the lanes' approximate sizes. This is best-effort under
// concurrent modification: lock-free rings only expose an advisory
// count.
func (q *LockFree) Len() int {
	total := 0
	for p := 0; p < 4; p++ {
		total += q.lanes[p].Len()
	}
	return total
}

// Stats returns the drop counter; LockFree does not track peak size or
// per-push latency, avoiding expensive cross-core synchronization for
// queue stats on this path.
func (q *LockFree) Stats() Stats {
	return Stats{DroppedCount: q.dropped.load()}
}
