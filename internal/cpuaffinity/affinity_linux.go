// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package cpuaffinity

import "golang.org/x/sys/unix"

func pinCurrentThread(core int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	// Pid 0 in sched_setaffinity means "the calling thread", which is
	// exactly the OS thread runtime.LockOSThread() bound this goroutine
	// to.
	return unix.SchedSetaffinity(0, &set)
}

func enableRealTimeCurrentThread() error {
	return unix.SchedSetscheduler(0, unix.SCHED_FIFO, &unix.SchedParam{Priority: 99})
}
