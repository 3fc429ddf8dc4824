// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cpuaffinity pins OS threads to cores behind one portable
// interface, with per-OS implementations selected at build time: Linux
// uses sched_setaffinity via golang.org/x/sys/unix; Darwin only lowers
// the process nice value with setpriority and sets neither a thread
// affinity tag nor a QoS class; every other platform is a no-op. Callers
// should treat PinCurrentThread's error as a warning, never as fatal.
package cpuaffinity
