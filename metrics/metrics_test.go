// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/anminfang-tamu/fixgw/fixparser"
	"github.com/anminfang-tamu/fixgw/fixproto"
	"github.com/anminfang-tamu/fixgw/internal/pool"
	"github.com/anminfang-tamu/fixgw/queue"
)

func countMetrics(t *testing.T, c prometheus.Collector) int {
	t.Helper()
	ch := make(chan prometheus.Metric, 64)
	c.Collect(ch)
	close(ch)
	n := 0
	for range ch {
		n++
	}
	return n
}

func TestPoolCollector_CollectEmitsAllDescs(t *testing.T) {
	p := pool.New[fixproto.Message](4)
	reg := prometheus.NewRegistry()
	pc := NewPoolCollector("test", p)
	if err := reg.Register(pc); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if n := countMetrics(t, pc); n != 6 {
		t.Fatalf("got %d metrics, want 6", n)
	}
}

func TestQueueCollector_CollectEmitsDepthAndDropped(t *testing.T) {
	q := queue.NewHeap(4, queue.Reject)
	reg := prometheus.NewRegistry()
	qc := NewQueueCollector("LOW", q)
	if err := reg.Register(qc); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if n := countMetrics(t, qc); n == 0 {
		t.Fatal("expected at least one metric")
	}
}

func TestParserCollector_CollectSkipsZeroStatuses(t *testing.T) {
	ctx := fixparser.NewContext(fixparser.DefaultConfig())
	reg := prometheus.NewRegistry()
	pc := NewParserCollector("SESSION1", ctx)
	if err := reg.Register(pc); err != nil {
		t.Fatalf("Register: %v", err)
	}
	// A fresh context has never recorded any error, so the
	// per-status counter series must not appear at all.
	n := countMetrics(t, pc)
	if n != 7 {
		t.Fatalf("got %d metrics, want 7 (no per-status series yet)", n)
	}
}
