// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build darwin

package cpuaffinity

import "golang.org/x/sys/unix"

// pinCurrentThread has no real hard-affinity equivalent on Darwin
// reachable without cgo (thread_policy_set is not exposed by
// golang.org/x/sys/unix). The best-effort fallback lowers the thread's
// nice value instead of a true QoS-class tag, which at least keeps the
// scheduler from deprioritizing it under load; it is not equivalent to
// pinning and callers must still treat the result as advisory.
func pinCurrentThread(core int) error {
	return unix.Setpriority(unix.PRIO_PROCESS, 0, -10)
}

func enableRealTimeCurrentThread() error {
	return unix.Setpriority(unix.PRIO_PROCESS, 0, -20)
}
