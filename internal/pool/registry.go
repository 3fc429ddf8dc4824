// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pool

import "sync"

// shutdowner is implemented by *Pool[T] for any T; the registry uses it
// to shut down every registered pool on Close without needing to know
// their element types.
type shutdowner interface {
	Shutdown()
}

// Registry is a process-wide, name-keyed lookup for pools that cannot
// have their dependency wired explicitly (package-level demo code,
// plugin boundaries). Parsers and the egress manager should still take
// an explicit *Pool[T] constructor argument; Registry exists only as an
// escape hatch, not as the default wiring path.
//
// Lifetime: Register before first use, Close after all users have quit.
// A Registry is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	entries map[string]shutdowner
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]shutdowner)}
}

// Register adds p under name. It panics if name is already registered,
// since a silent overwrite would orphan the previous pool's in-flight
// allocations.
func Register[T any](r *Registry, name string, p *Pool[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		panic("pool: registry name already in use: " + name)
	}
	r.entries[name] = p
}

// Lookup returns the pool registered under name, type-asserted to
// *Pool[T]. ok is false if no pool is registered under that name or if
// it was registered with a different element type.
func Lookup[T any](r *Registry, name string) (p *Pool[T], ok bool) {
	r.mu.Lock()
	entry, exists := r.entries[name]
	r.mu.Unlock()
	if !exists {
		return nil, false
	}
	p, ok = entry.(*Pool[T])
	return p, ok
}

// Close calls Shutdown on every registered pool and empties the
// registry. It does not wait for in-flight allocations to be released.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.entries {
		p.Shutdown()
	}
	r.entries = make(map[string]shutdowner)
}
