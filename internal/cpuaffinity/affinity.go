// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cpuaffinity

// PinCurrentThread pins the calling OS thread to core. The caller must
// have already called runtime.LockOSThread() on the same goroutine —
// pinning a goroutine that the Go scheduler is free to migrate between
// threads would be meaningless. Callers should log, not fail, on a
// non-nil error; a sender worker still functions correctly unpinned, it
// just loses the cache-locality guarantee.
func PinCurrentThread(core int) error {
	return pinCurrentThread(core)
}

// EnableRealTimeCurrentThread requests real-time scheduling (SCHED_FIFO
// priority 99 on Linux) for the calling OS thread. As with
// PinCurrentThread, the caller must hold runtime.LockOSThread(). Most
// environments require elevated privilege for this to succeed; failure
// is expected outside a tuned deployment and must be treated as a
// warning only.
func EnableRealTimeCurrentThread() error {
	return enableRealTimeCurrentThread()
}
