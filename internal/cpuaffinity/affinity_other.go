// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux && !darwin

package cpuaffinity

func pinCurrentThread(core int) error        { return nil }
func enableRealTimeCurrentThread() error { return nil }
