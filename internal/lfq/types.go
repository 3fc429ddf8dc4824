// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

// Lane is a single bounded, lock-free FIFO ring buffer. The priority queue
// (package queue) owns four lanes, one per priority level, and scans them
// in descending priority order on pop.
//
// Enqueue/Dequeue are non-blocking: both return ErrWouldBlock when they
// cannot proceed (lane full or empty) rather than parking the caller.
//
// The interface excludes Len deliberately: an exact count in a lock-free
// ring requires expensive cross-core synchronization, so MPMC exposes it
// as a best-effort method on the concrete type rather than an interface
// guarantee. Callers that need it (queue.LockFree's Len/Stats) call it
// directly on *MPMC[T] knowing the number is advisory.
type Lane[T any] interface {
	Producer[T]
	Consumer[T]
	Cap() int
}

// Producer is the enqueue half of a Lane.
type Producer[T any] interface {
	// Enqueue adds an element to the lane (non-blocking).
	// The element is copied into the lane's internal buffer.
	// Returns nil on success, ErrWouldBlock if the lane is full.
	Enqueue(elem *T) error
}

// Consumer is the dequeue half of a Lane.
type Consumer[T any] interface {
	// Dequeue removes and returns an element from the lane (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the lane is empty.
	Dequeue() (T, error)
}

// Drainer signals that no more enqueues will occur.
//
// MPMC lanes use a threshold mechanism to prevent livelock under producer
// pressure; this mechanism can cause Dequeue to report ErrWouldBlock even
// when items remain, until producer activity resets the threshold. Call
// Drain once all producers for a lane have stopped so consumers can empty
// it without waiting on that threshold.
//
// Drain is a hint — the caller must ensure no further Enqueue calls will
// be made after calling Drain.
type Drainer interface {
	Drain()
}
