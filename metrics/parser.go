// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/anminfang-tamu/fixgw/fixparser"
)

// ParserStatsSource is satisfied by *fixparser.Context.
type ParserStatsSource interface {
	Stats() fixparser.Stats
}

// ParserCollector exposes one parser Context's Stats: total messages,
// per-status error counts, min/max/total parse time, state-transition
// count, and partial-message/recovery-outcome counters.
type ParserCollector struct {
	source ParserStatsSource

	totalMessages    *prometheus.Desc
	errorsByStatus   *prometheus.Desc
	minParseSeconds  *prometheus.Desc
	maxParseSeconds  *prometheus.Desc
	totalParseSeconds *prometheus.Desc
	stateTransitions *prometheus.Desc
	partialMessages  *prometheus.Desc
	recoveryOutcomes *prometheus.Desc
}

// NewParserCollector builds a collector for one Context, labeled by
// session (e.g. the FIX SenderCompID/TargetCompID pair it serves).
func NewParserCollector(session string, source ParserStatsSource) *ParserCollector {
	constLabels := prometheus.Labels{"session": session}
	return &ParserCollector{
		source: source,
		totalMessages: prometheus.NewDesc(
			"fixgw_parser_messages_total", "Successfully parsed messages.", nil, constLabels),
		errorsByStatus: prometheus.NewDesc(
			"fixgw_parser_errors_total", "Parse outcomes by status.", []string{"status"}, constLabels),
		minParseSeconds: prometheus.NewDesc(
			"fixgw_parser_parse_seconds_min", "Minimum observed Parse call duration.", nil, constLabels),
		maxParseSeconds: prometheus.NewDesc(
			"fixgw_parser_parse_seconds_max", "Maximum observed Parse call duration.", nil, constLabels),
		totalParseSeconds: prometheus.NewDesc(
			"fixgw_parser_parse_seconds_total", "Cumulative Parse call duration.", nil, constLabels),
		stateTransitions: prometheus.NewDesc(
			"fixgw_parser_state_transitions_total", "State machine transitions observed.", nil, constLabels),
		partialMessages: prometheus.NewDesc(
			"fixgw_parser_partial_messages_total", "Parse calls that carried a partial message over.", nil, constLabels),
		recoveryOutcomes: prometheus.NewDesc(
			"fixgw_parser_recovery_outcomes_total", "Error-recovery scans performed.", nil, constLabels),
	}
}

func (c *ParserCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalMessages
	ch <- c.errorsByStatus
	ch <- c.minParseSeconds
	ch <- c.maxParseSeconds
	ch <- c.totalParseSeconds
	ch <- c.stateTransitions
	ch <- c.partialMessages
	ch <- c.recoveryOutcomes
}

func (c *ParserCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(c.totalMessages, prometheus.CounterValue, float64(s.TotalMessages))
	for i, n := range s.ErrorsByStatus {
		if n == 0 {
			continue
		}
		ch <- prometheus.MustNewConstMetric(c.errorsByStatus, prometheus.CounterValue, float64(n), fixparser.Status(i).String())
	}
	ch <- prometheus.MustNewConstMetric(c.minParseSeconds, prometheus.GaugeValue, float64(s.MinParseNanos)/1e9)
	ch <- prometheus.MustNewConstMetric(c.maxParseSeconds, prometheus.GaugeValue, float64(s.MaxParseNanos)/1e9)
	ch <- prometheus.MustNewConstMetric(c.totalParseSeconds, prometheus.CounterValue, float64(s.TotalParseNanos)/1e9)
	ch <- prometheus.MustNewConstMetric(c.stateTransitions, prometheus.CounterValue, float64(s.StateTransitions))
	ch <- prometheus.MustNewConstMetric(c.partialMessages, prometheus.CounterValue, float64(s.PartialMessages))
	ch <- prometheus.MustNewConstMetric(c.recoveryOutcomes, prometheus.CounterValue, float64(s.RecoveryOutcomes))
}

var _ prometheus.Collector = (*ParserCollector)(nil)
