// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package transport

import "code.hybscloud.com/atomix"

// atomicFlag tracks Connected() the same way the rest of this module
// keeps shared state: through atomix's explicit-ordering wrapper types
// rather than sync/atomic directly.
type atomicFlag struct {
	v atomix.Bool
}

func (f *atomicFlag) load() bool       { return f.v.LoadAcquire() }
func (f *atomicFlag) store(val bool) { f.v.StoreRelease(val) }
