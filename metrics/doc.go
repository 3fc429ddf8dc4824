// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package metrics wraps the plain in-memory counters pool.Stats,
// queue.Stats, and fixparser.Stats already expose as
// prometheus.Collector implementations. Registration is explicit:
// nothing here touches prometheus.DefaultRegisterer, so an embedding
// application controls its own /metrics exposition.
package metrics
