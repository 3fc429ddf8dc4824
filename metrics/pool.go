// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/anminfang-tamu/fixgw/internal/pool"
)

// PoolStatsSource is satisfied by *pool.Pool[T] for any payload type T;
// Stats() does not depend on T, so one collector type serves every pool
// instance in the process.
type PoolStatsSource interface {
	Stats() pool.Stats
}

// PoolCollector exposes one object pool's Stats as Prometheus metrics.
// Construct one per pool instance and register it explicitly.
type PoolCollector struct {
	source PoolStatsSource

	capacity  *prometheus.Desc
	allocated *prometheus.Desc
	lifetimeAllocs *prometheus.Desc
	lifetimeDeallocs *prometheus.Desc
	allocFailures *prometheus.Desc
	invalidReleases *prometheus.Desc
}

// NewPoolCollector builds a collector labeled with name (e.g. the pool's
// own WithName value), reading from source on every Collect.
func NewPoolCollector(name string, source PoolStatsSource) *PoolCollector {
	constLabels := prometheus.Labels{"pool": name}
	return &PoolCollector{
		source: source,
		capacity: prometheus.NewDesc(
			"fixgw_pool_capacity", "Fixed slab capacity of the pool.", nil, constLabels),
		allocated: prometheus.NewDesc(
			"fixgw_pool_allocated", "Slots currently allocated.", nil, constLabels),
		lifetimeAllocs: prometheus.NewDesc(
			"fixgw_pool_lifetime_allocs_total", "Total successful allocations since construction.", nil, constLabels),
		lifetimeDeallocs: prometheus.NewDesc(
			"fixgw_pool_lifetime_deallocs_total", "Total releases since construction.", nil, constLabels),
		allocFailures: prometheus.NewDesc(
			"fixgw_pool_allocation_failures_total", "Allocate calls that found the pool exhausted.", nil, constLabels),
		invalidReleases: prometheus.NewDesc(
			"fixgw_pool_invalid_releases_total", "Release calls rejected as outside the slab or off a slot boundary.", nil, constLabels),
	}
}

func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.capacity
	ch <- c.allocated
	ch <- c.lifetimeAllocs
	ch <- c.lifetimeDeallocs
	ch <- c.allocFailures
	ch <- c.invalidReleases
}

func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity))
	ch <- prometheus.MustNewConstMetric(c.allocated, prometheus.GaugeValue, float64(s.Allocated))
	ch <- prometheus.MustNewConstMetric(c.lifetimeAllocs, prometheus.CounterValue, float64(s.LifetimeAllocs))
	ch <- prometheus.MustNewConstMetric(c.lifetimeDeallocs, prometheus.CounterValue, float64(s.LifetimeDeallocs))
	ch <- prometheus.MustNewConstMetric(c.allocFailures, prometheus.CounterValue, float64(s.AllocationFailures))
	ch <- prometheus.MustNewConstMetric(c.invalidReleases, prometheus.CounterValue, float64(s.InvalidReleases))
}

var _ prometheus.Collector = (*PoolCollector)(nil)
