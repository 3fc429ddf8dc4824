// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package queue provides the priority queue contract shared by two
// implementations: Heap, a bounded mutex-protected max-heap with
// configurable overflow policy, and LockFree, four independent MPMC ring
// lanes (one per priority) adapted from internal/lfq. Both satisfy the
// Queue interface; egress.Manager selects one at construction.
package queue
