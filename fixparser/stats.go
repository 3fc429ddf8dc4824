// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixparser

// Stats accumulates parser-wide counters. It is a plain struct, not
// atomics: a Context belongs to one goroutine, so its Stats need no
// synchronization of their own. A metrics.ParserCollector snapshots this
// struct under the owning goroutine's control (e.g. on a periodic tick
// the session loop itself drives).
type Stats struct {
	TotalMessages     uint64
	ErrorsByStatus    [10]uint64 // indexed by Status
	MinParseNanos     int64
	MaxParseNanos     int64
	TotalParseNanos   int64
	StateTransitions  uint64
	PartialMessages   uint64
	RecoveryOutcomes  uint64
}

func (s *Stats) recordParse(elapsedNanos int64) {
	s.TotalParseNanos += elapsedNanos
	if s.MinParseNanos == 0 || elapsedNanos < s.MinParseNanos {
		s.MinParseNanos = elapsedNanos
	}
	if elapsedNanos > s.MaxParseNanos {
		s.MaxParseNanos = elapsedNanos
	}
}

func (s *Stats) recordError(status Status) {
	if int(status) < len(s.ErrorsByStatus) {
		s.ErrorsByStatus[status]++
	}
}
