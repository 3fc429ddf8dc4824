// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lfq provides the lock-free bounded ring buffer used as a single
// priority lane inside package queue's LockFree variant.
//
// lfq.MPMC is a multi-producer multi-consumer FAA-based ring (the SCQ
// algorithm). The egress manager gives every priority level (CRITICAL,
// HIGH, MEDIUM, LOW) its own MPMC instance; package queue scans the four
// lanes in descending priority order on pop.
//
// # Basic usage
//
//	lane := lfq.NewMPMC[*message.Envelope](1024)
//
//	// Enqueue (non-blocking)
//	if err := lane.Enqueue(&env); lfq.IsWouldBlock(err) {
//	    // lane full — strict-priority drop-on-full policy
//	}
//
//	// Dequeue (non-blocking)
//	env, err := lane.Dequeue()
//	if lfq.IsWouldBlock(err) {
//	    // lane empty — caller backs off with spin.Wait or a fixed sleep
//	}
//
// # Graceful shutdown
//
// The FAA threshold mechanism that prevents livelock under producer
// pressure can cause Dequeue to report ErrWouldBlock even when items
// remain, until producer activity resets it. Once producers for a lane
// have stopped, call Drain so consumers can empty it without that wait:
//
//	producersWG.Wait()
//	lane.Drain()
//	// consumers now drain remaining items unconditionally
//
// # Race detection
//
// Go's race detector is not designed for lock-free algorithm verification:
// it tracks explicit synchronization primitives (mutex, channels,
// WaitGroup) but cannot observe happens-before relationships established
// through atomic memory orderings alone. lfq's algorithms are correct, but
// the detector may report false positives on the acquire/release pairs
// that protect the non-atomic payload field; concurrency tests that hit
// this skip themselves when RaceEnabled is true.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomics with explicit
// memory ordering and [code.hybscloud.com/spin] for the CAS-contention
// backoff, matching the rest of the gateway's lock-free code
// (package pool uses the same pair for its Treiber-stack free list).
package lfq
