// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pool

import (
	"unsafe"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

const noneIdx = -1

// pad is cache line padding to prevent false sharing between the Treiber
// stack head and the relaxed statistics counters.
type pad [64]byte

type slot[T any] struct {
	value T
}

// Option configures a Pool at construction.
type Option[T any] func(*Pool[T])

// WithName attaches a diagnostic name to the pool (surfaced through Name
// and, when passed to metrics.NewPoolCollector, its labels).
func WithName[T any](name string) Option[T] {
	return func(p *Pool[T]) { p.name = name }
}

// WithConstructor sets the hook invoked on every successful Allocate,
// immediately after a slot is popped off the free list and before the
// pointer is returned to the caller. This is the closest Go analogue to
// the source's placement-construct: the slot's backing memory already
// exists (it was allocated once, at pool construction), so "construct"
// here means "reinitialize" rather than "placement new".
func WithConstructor[T any](fn func(*T)) Option[T] {
	return func(p *Pool[T]) { p.construct = fn }
}

// WithDestructor sets the hook invoked on Release, before the slot index
// is pushed back onto the free list. Use it to clear references the
// payload holds (e.g. a FIX message's tag map) so they do not outlive
// the logical lifetime of the allocation and so the next Allocate sees a
// clean slot if WithConstructor is not also set.
func WithDestructor[T any](fn func(*T)) Option[T] {
	return func(p *Pool[T]) { p.destruct = fn }
}

// Pool is a fixed-capacity, type-parameterized lock-free allocator. See
// the package doc for the Treiber-stack free-list design.
type Pool[T any] struct {
	_    pad
	head atomix.Int64 // index of the top free slot, or noneIdx
	_    pad

	allocated        atomix.Int64
	_                pad
	lifetimeAllocs   atomix.Int64
	_                pad
	lifetimeDeallocs atomix.Int64
	_                pad
	allocFailures    atomix.Int64
	_                pad
	invalidReleases  atomix.Int64
	_                pad
	shutdownFlag     atomix.Bool
	_                pad

	slots []slot[T]
	next  []atomix.Int64

	capacity  int
	name      string
	construct func(*T)
	destruct  func(*T)
}

// New creates a pool with the given fixed capacity. Capacity must be >= 1.
func New[T any](capacity int, opts ...Option[T]) *Pool[T] {
	if capacity < 1 {
		panic("pool: capacity must be >= 1")
	}

	p := &Pool[T]{
		slots:    make([]slot[T], capacity),
		next:     make([]atomix.Int64, capacity),
		capacity: capacity,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.initFreeList()
	return p
}

func (p *Pool[T]) initFreeList() {
	for i := 0; i < p.capacity-1; i++ {
		p.next[i].StoreRelaxed(int64(i + 1))
	}
	p.next[p.capacity-1].StoreRelaxed(noneIdx)
	p.head.StoreRelease(0)
}

// Allocate pops a slot off the free list and runs the constructor hook
// (if any) on it, returning a stable pointer to the slot's payload.
//
// Returns ErrExhausted when the free list is empty (allocFailures is
// bumped) and ErrShutdown once Shutdown has been called — the shutdown
// check never touches the free list, matching the source's "fail
// without touching the list" contract.
func (p *Pool[T]) Allocate() (*T, error) {
	if p.shutdownFlag.LoadAcquire() {
		return nil, ErrShutdown
	}

	sw := spin.Wait{}
	for {
		idx := p.head.LoadAcquire()
		if idx == noneIdx {
			p.allocFailures.Add(1)
			return nil, ErrExhausted
		}

		next := p.next[idx].LoadRelaxed()
		if p.head.CompareAndSwapAcqRel(idx, next) {
			s := &p.slots[idx]
			if p.construct != nil {
				p.construct(&s.value)
			}
			p.allocated.Add(1)
			p.lifetimeAllocs.Add(1)
			return &s.value, nil
		}
		sw.Once()
	}
}

// Release returns a pointer previously obtained from Allocate to the
// pool. A foreign pointer (one this pool never handed out, or one that
// does not land on a slot boundary) is rejected silently — a programmer
// error, per the error taxonomy, that bumps InvalidReleases rather than
// panicking on a hot path. Release(nil) is a no-op. A second Release of
// a pointer that is already free is not detected: it pushes the slot
// onto the free list again.
func (p *Pool[T]) Release(ptr *T) {
	if ptr == nil {
		return
	}

	idx, ok := p.indexOf(ptr)
	if !ok {
		p.invalidReleases.Add(1)
		return
	}

	if p.destruct != nil {
		p.destruct(ptr)
	}

	sw := spin.Wait{}
	for {
		head := p.head.LoadAcquire()
		p.next[idx].StoreRelaxed(head)
		if p.head.CompareAndSwapAcqRel(head, int64(idx)) {
			break
		}
		sw.Once()
	}

	p.allocated.Add(-1)
	p.lifetimeDeallocs.Add(1)
}

// indexOf maps a pointer back to its slot index, validating that it
// falls exactly on a slot boundary within this pool's slab.
func (p *Pool[T]) indexOf(ptr *T) (int, bool) {
	if len(p.slots) == 0 {
		return 0, false
	}
	base := uintptr(unsafe.Pointer(&p.slots[0]))
	elemSize := unsafe.Sizeof(p.slots[0])
	off := uintptr(unsafe.Pointer(ptr)) - base
	if off%elemSize != 0 {
		return 0, false
	}
	idx := off / elemSize
	if idx >= uintptr(p.capacity) {
		return 0, false
	}
	return int(idx), true
}

// Prewarm sequentially touches one byte of every slot to force page
// residency, eliminating first-touch faults once the hot path starts
// allocating. Call once at startup, before any concurrent Allocate.
func (p *Pool[T]) Prewarm() {
	for i := range p.slots {
		b := (*byte)(unsafe.Pointer(&p.slots[i]))
		*b = *b
	}
}

// Reset rebuilds the free list to full capacity. It requires that no
// allocation is currently live (Allocated() == 0); otherwise it returns
// ErrNotEmpty and leaves the pool untouched.
func (p *Pool[T]) Reset() error {
	if p.allocated.LoadAcquire() != 0 {
		return ErrNotEmpty
	}
	p.initFreeList()
	p.allocFailures.Store(0)
	return nil
}

// Shutdown blocks all future Allocate calls. Slots already allocated
// remain valid and may still be Released; Release after Shutdown still
// returns the slot to the free list (a shut-down pool does not leak,
// it simply refuses new work).
func (p *Pool[T]) Shutdown() {
	p.shutdownFlag.StoreRelease(true)
}

// Cap returns the pool's fixed capacity.
func (p *Pool[T]) Cap() int { return p.capacity }

// Name returns the diagnostic name set via WithName, or "".
func (p *Pool[T]) Name() string { return p.name }

// Stats is a point-in-time snapshot of the pool's relaxed counters.
type Stats struct {
	Capacity           int
	Allocated          int64
	LifetimeAllocs     int64
	LifetimeDeallocs   int64
	AllocationFailures int64
	InvalidReleases    int64
}

// Stats returns a snapshot of the pool's counters. Like the source, these
// are relaxed atomics: they are observability, not a synchronization
// channel, and may be momentarily inconsistent with each other under
// concurrent allocation.
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Capacity:           p.capacity,
		Allocated:          p.allocated.LoadRelaxed(),
		LifetimeAllocs:     p.lifetimeAllocs.LoadRelaxed(),
		LifetimeDeallocs:   p.lifetimeDeallocs.LoadRelaxed(),
		AllocationFailures: p.allocFailures.LoadRelaxed(),
		InvalidReleases:    p.invalidReleases.LoadRelaxed(),
	}
}
