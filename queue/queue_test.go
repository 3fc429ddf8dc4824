// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"testing"
	"time"

	"github.com/anminfang-tamu/fixgw/message"
)

func env(p message.Priority) *message.Envelope {
	return message.New(1, 1, nil, p, "0", 1)
}

func TestHeap_PriorityOrdering(t *testing.T) {
	q := NewHeap(16, DropOldest)
	q.Push(env(message.Low))
	q.Push(env(message.Medium))
	q.Push(env(message.High))
	q.Push(env(message.Critical))

	want := []message.Priority{message.Critical, message.High, message.Medium, message.Low}
	for i, w := range want {
		e, ok := q.TryPop()
		if !ok {
			t.Fatalf("pop #%d: empty, want %v", i, w)
		}
		if e.Priority != w {
			t.Fatalf("pop #%d = %v, want %v", i, e.Priority, w)
		}
	}
}

func TestHeap_OverflowReject(t *testing.T) {
	q := NewHeap(2, Reject)
	if !q.Push(env(message.Low)) || !q.Push(env(message.Low)) {
		t.Fatal("first two pushes should succeed")
	}
	if q.Push(env(message.Low)) {
		t.Fatal("push past capacity with Reject policy should fail")
	}
	if q.Stats().DroppedCount != 1 {
		t.Fatalf("DroppedCount = %d, want 1", q.Stats().DroppedCount)
	}
}

func TestHeap_OverflowDropOldest(t *testing.T) {
	q := NewHeap(2, DropOldest)
	q.Push(env(message.Low))
	q.Push(env(message.Low))
	if !q.Push(env(message.Critical)) {
		t.Fatal("DropOldest push should always succeed by making room")
	}
	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}
	e, _ := q.TryPop()
	if e.Priority != message.Critical {
		t.Fatalf("first pop = %v, want Critical", e.Priority)
	}
}

func TestHeap_PopTimeout(t *testing.T) {
	q := NewHeap(4, Reject)
	start := time.Now()
	_, ok := q.Pop(20 * time.Millisecond)
	if ok {
		t.Fatal("Pop on empty queue should time out")
	}
	if time.Since(start) < 15*time.Millisecond {
		t.Fatal("Pop returned before its timeout elapsed")
	}
}

func TestHeap_ShutdownRefusesPushDrainsPop(t *testing.T) {
	q := NewHeap(4, Reject)
	q.Push(env(message.Low))
	q.Shutdown()

	if q.Push(env(message.Low)) {
		t.Fatal("Push after Shutdown should be refused")
	}
	if _, ok := q.TryPop(); !ok {
		t.Fatal("TryPop after Shutdown should still drain residual items")
	}
}

func TestLockFree_PriorityDraining(t *testing.T) {
	q := NewLockFree(LaneCapacities{8, 8, 8, 8})
	q.Push(env(message.Low))
	q.Push(env(message.Medium))
	q.Push(env(message.High))
	q.Push(env(message.Critical))

	want := []message.Priority{message.Critical, message.High, message.Medium, message.Low}
	for i, w := range want {
		e, ok := q.TryPop()
		if !ok {
			t.Fatalf("pop #%d: empty, want %v", i, w)
		}
		if e.Priority != w {
			t.Fatalf("pop #%d = %v, want %v", i, e.Priority, w)
		}
	}
}

func TestLockFree_FullLaneDropsAndCounts(t *testing.T) {
	q := NewLockFree(LaneCapacities{2, 2, 2, 2})
	for i := 0; i < 2; i++ {
		if !q.Push(env(message.Low)) {
			t.Fatalf("push #%d into non-full lane should succeed", i)
		}
	}
	if q.Push(env(message.Low)) {
		t.Fatal("push into full lane should be refused")
	}
	if q.Stats().DroppedCount != 1 {
		t.Fatalf("DroppedCount = %d, want 1", q.Stats().DroppedCount)
	}
}

func TestLockFree_PopBacksOffThenTimesOut(t *testing.T) {
	q := NewLockFree(LaneCapacities{4, 4, 4, 4})
	start := time.Now()
	_, ok := q.Pop(5 * time.Millisecond)
	if ok {
		t.Fatal("Pop on empty lanes should time out")
	}
	if time.Since(start) < 3*time.Millisecond {
		t.Fatal("Pop returned suspiciously before its timeout")
	}
}

func TestLockFree_ShutdownRefusesPush(t *testing.T) {
	q := NewLockFree(LaneCapacities{4, 4, 4, 4})
	q.Shutdown()
	if q.Push(env(message.Low)) {
		t.Fatal("Push after Shutdown should be refused")
	}
}
