// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pool provides a fixed-capacity, type-parameterized lock-free
// object pool delivering sub-microsecond allocation/release with
// deterministic capacity and no page faults after Prewarm.
//
// The free list is a Treiber stack: an atomic head holding the index of
// the top free slot, and a parallel array of atomic "next" links forming
// the rest of the stack. Allocate pops the head with a single CAS;
// Release pushes back with a single CAS. Both operations are wait-free
// on the uncontended path and lock-free under contention, using
// [code.hybscloud.com/atomix] for the head/counters and
// [code.hybscloud.com/spin] for the CAS-retry backoff — the same
// dependency pair package lfq uses for its ring buffers, applied here to
// a LIFO free list instead of a FIFO ring.
//
// # Basic usage
//
//	p := pool.New[fixproto.Message](8192, pool.WithName[fixproto.Message]("fix-messages"))
//	p.Prewarm() // touch every slot once at startup, before the hot path
//
//	msg, err := p.Allocate()
//	if err != nil {
//	    // pool.ErrExhausted: capacity reached, check p.Stats().AllocationFailures
//	}
//	defer p.Release(msg)
//
// # Ownership
//
// Allocate returns a raw, non-owning *T: the caller owns the pointer
// until it calls Release. There is no reference counting; passing the
// pointer across a queue transfers ownership with it (the pointer is
// the handle), matching the zero-copy contract the egress path relies
// on when routing a *fixproto.Message from the parser to a sender
// worker's queue lane.
package pool
