// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import "code.hybscloud.com/atomix"

// atomicBool and atomicUint64 wrap atomix the same way internal/lfq and
// internal/pool do, rather than reaching for sync/atomic, so the
// LockFree queue's own bookkeeping uses the same acquire/release
// discipline as the lanes it is built on.
type atomicBool struct{ v atomix.Bool }

func (b *atomicBool) load() bool      { return b.v.LoadAcquire() }
func (b *atomicBool) store(val bool)  { b.v.StoreRelease(val) }

type atomicUint64 struct{ v atomix.Uint64 }

func (u *atomicUint64) load() uint64    { return u.v.LoadRelaxed() }
func (u *atomicUint64) add(delta uint64) { u.v.AddAcqRel(delta) }
