// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package egress drains the four priority queues over a single shared
// TCP connection. Each senderWorker owns one queue and runs on its own
// goroutine, optionally pinned to a dedicated core; Manager owns all
// four workers, the shared connection, and the priority->core map.
package egress
