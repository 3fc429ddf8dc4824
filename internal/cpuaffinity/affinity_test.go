// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cpuaffinity

import (
	"runtime"
	"testing"
)

func TestPinCurrentThread_DoesNotPanic(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	// Pinning can legitimately fail (sandboxed CI, invalid core index,
	// unsupported platform) — the contract is "never fatal", not
	// "never errors".
	_ = PinCurrentThread(0)
}

func TestEnableRealTimeCurrentThread_DoesNotPanic(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	_ = EnableRealTimeCurrentThread()
}
