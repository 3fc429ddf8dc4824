// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/anminfang-tamu/fixgw/queue"
)

// QueueStatsSource is satisfied by both *queue.Heap and *queue.LockFree.
type QueueStatsSource interface {
	Stats() queue.Stats
	Len() int
}

// QueueCollector exposes one priority lane's depth, peak size, and
// dropped-push count. The push-latency gauge is emitted only when
// Stats.PushLatencyNanos is non-zero; neither queue.Heap nor
// queue.LockFree records push latency, so with those sources it is not
// emitted.
type QueueCollector struct {
	source QueueStatsSource

	depth        *prometheus.Desc
	peakSize     *prometheus.Desc
	droppedTotal *prometheus.Desc
	pushLatency  *prometheus.Desc
}

// NewQueueCollector builds a collector for one lane, labeled by its
// priority name (e.g. "CRITICAL").
func NewQueueCollector(lane string, source QueueStatsSource) *QueueCollector {
	constLabels := prometheus.Labels{"lane": lane}
	return &QueueCollector{
		source: source,
		depth: prometheus.NewDesc(
			"fixgw_queue_depth", "Current number of enqueued envelopes.", nil, constLabels),
		peakSize: prometheus.NewDesc(
			"fixgw_queue_peak_size", "High-water mark of enqueued envelopes.", nil, constLabels),
		droppedTotal: prometheus.NewDesc(
			"fixgw_queue_dropped_total", "Pushes refused due to overflow policy or full lane.", nil, constLabels),
		pushLatency: prometheus.NewDesc(
			"fixgw_queue_push_latency_seconds", "Observed Push call latency; emitted only when the queue reports a non-zero value.", nil, constLabels),
	}
}

func (c *QueueCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.depth
	ch <- c.peakSize
	ch <- c.droppedTotal
	ch <- c.pushLatency
}

func (c *QueueCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(c.depth, prometheus.GaugeValue, float64(c.source.Len()))
	ch <- prometheus.MustNewConstMetric(c.peakSize, prometheus.GaugeValue, float64(s.PeakSize))
	ch <- prometheus.MustNewConstMetric(c.droppedTotal, prometheus.CounterValue, float64(s.DroppedCount))
	if s.PushLatencyNanos > 0 {
		ch <- prometheus.MustNewConstMetric(c.pushLatency, prometheus.GaugeValue, float64(s.PushLatencyNanos)/1e9)
	}
}

var _ prometheus.Collector = (*QueueCollector)(nil)
