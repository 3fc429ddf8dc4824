// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"container/heap"
	"sync"
	"time"

	"github.com/anminfang-tamu/fixgw/message"
)

type heapEntry struct {
	env *message.Envelope
	seq uint64 // insertion sequence, for FIFO tie-break at equal priority
}

// entryHeap implements container/heap.Interface as a max-heap on
// priority, FIFO-ordered among equal priorities.
type entryHeap []heapEntry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].env.Priority != h[j].env.Priority {
		return h[i].env.Priority > h[j].env.Priority
	}
	return h[i].seq < h[j].seq
}
func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x any)   { *h = append(*h, x.(heapEntry)) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Heap is a bounded, mutex-protected max-heap priority queue. It
// satisfies Queue via a sync.Mutex plus two sync.Cond (not-empty,
// not-full).
type Heap struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	h        entryHeap
	capacity int
	policy   OverflowPolicy
	nextSeq  uint64
	shutdown bool

	peakSize     int
	droppedCount uint64
}

// NewHeap creates a bounded Heap queue with the given capacity and
// overflow policy.
func NewHeap(capacity int, policy OverflowPolicy) *Heap {
	q := &Heap{capacity: capacity, policy: policy}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	heap.Init(&q.h)
	return q
}

// Push enqueues env, applying the configured overflow policy when the
// queue is at capacity. It returns false if refused.
func (q *Heap) Push(env *message.Envelope) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.shutdown {
		return false
	}

	for len(q.h) >= q.capacity {
		switch q.policy {
		case DropOldest:
			q.dropLowestPriorityTailLocked()
		case DropNewest:
			q.droppedCount++
			return false
		case Reject:
			q.droppedCount++
			return false
		case Block:
			q.notFull.Wait()
			if q.shutdown {
				return false
			}
		}
	}

	q.nextSeq++
	heap.Push(&q.h, heapEntry{env: env, seq: q.nextSeq})
	if len(q.h) > q.peakSize {
		q.peakSize = len(q.h)
	}
	q.notEmpty.Signal()
	return true
}

// dropLowestPriorityTailLocked removes the lowest-priority,
// latest-inserted entry to make room, per DropOldest. Callers must hold
// q.mu.
func (q *Heap) dropLowestPriorityTailLocked() {
	worst := 0
	for i := 1; i < len(q.h); i++ {
		if q.h[i].env.Priority < q.h[worst].env.Priority ||
			(q.h[i].env.Priority == q.h[worst].env.Priority && q.h[i].seq > q.h[worst].seq) {
			worst = i
		}
	}
	heap.Remove(&q.h, worst)
	q.droppedCount++
}

// TryPop returns the highest-priority envelope without blocking.
func (q *Heap) TryPop() (*message.Envelope, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.popLocked()
}

// Pop blocks up to timeout for an envelope to become available.
func (q *Heap) Pop(timeout time.Duration) (*message.Envelope, bool) {
	deadline := time.Now().Add(timeout)
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.h) == 0 && !q.shutdown {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, false
		}
		waited := waitWithTimeout(q.notEmpty, remaining)
		if !waited {
			return nil, false
		}
	}
	return q.popLocked()
}

func (q *Heap) popLocked() (*message.Envelope, bool) {
	if len(q.h) == 0 {
		return nil, false
	}
	e := heap.Pop(&q.h).(heapEntry)
	q.notFull.Signal()
	return e.env, true
}

// Shutdown wakes all waiters; subsequent Push calls are refused, but
// Pop/TryPop continue to drain residual items.
func (q *Heap) Shutdown() {
	q.mu.Lock()
	q.shutdown = true
	q.mu.Unlock()
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// Len returns the current number of enqueued envelopes.
func (q *Heap) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.h)
}

// Stats returns a snapshot of peak size and dropped count.
func (q *Heap) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Stats{PeakSize: q.peakSize, DroppedCount: q.droppedCount}
}

// waitWithTimeout waits on cond for up to timeout, returning false if it
// timed out. sync.Cond has no native timeout, so a timer goroutine
// broadcasts to wake the waiter; this mirrors the one-condvar-plus-timer
// idiom Go code reaches for since sync.Cond predates context support.
func waitWithTimeout(cond *sync.Cond, timeout time.Duration) bool {
	done := make(chan struct{})
	timer := time.AfterFunc(timeout, func() {
		cond.L.Lock()
		close(done)
		cond.L.Unlock()
		cond.Broadcast()
	})
	defer timer.Stop()

	select {
	case <-done:
		return false
	default:
	}

	cond.Wait()

	select {
	case <-done:
		return false
	default:
		return true
	}
}
