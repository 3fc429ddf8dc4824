// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package egress

import (
	"fmt"
	"time"

	islog "github.com/anminfang-tamu/fixgw/internal/slog"
	"github.com/anminfang-tamu/fixgw/message"
	"github.com/anminfang-tamu/fixgw/queue"
	"github.com/anminfang-tamu/fixgw/transport"
)

// QueueVariant selects the Heap or LockFree queue implementation. A
// Manager applies its Config.Variant to all four lanes; variants are not
// mixed across lanes.
type QueueVariant int

const (
	VariantHeap QueueVariant = iota
	VariantLockFree
)

// Config configures an egress Manager. LaneCapacities[p] is the queue
// capacity for priority p; HeapOverflowPolicy only applies when Variant
// is VariantHeap. CoreMap[p] is the OS core a lane's worker is pinned
// to when EnableCorePinning is set.
type Config struct {
	Variant            QueueVariant
	LaneCapacities     [4]int
	HeapOverflowPolicy queue.OverflowPolicy

	CoreMap                [4]int
	EnableCorePinning      bool
	EnableRealTimePriority bool

	WorkerConfig WorkerConfig

	Logger islog.Logger
}

// DefaultConfig returns the standard defaults: lane sizes
// 1024/2048/4096/8192 for LOW/MEDIUM/HIGH/CRITICAL, Heap variant with
// Reject overflow, no pinning.
func DefaultConfig() Config {
	return Config{
		Variant:            VariantHeap,
		LaneCapacities:     [4]int{1024, 2048, 4096, 8192},
		HeapOverflowPolicy: queue.Reject,
		WorkerConfig:       DefaultWorkerConfig(),
		Logger:             islog.Nop,
	}
}

// Manager owns the four priority queues, their sender workers, and the
// one shared TCP connection they write to.
type Manager struct {
	cfg     Config
	conn    *transport.Connection
	queues  [4]queue.Queue
	workers [4]*senderWorker

	started bool
}

// NewManager builds the four queues for cfg but does not start workers;
// call Start once conn is connected.
func NewManager(cfg Config, conn *transport.Connection) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = islog.Nop
	}
	m := &Manager{cfg: cfg, conn: conn}
	for p := 0; p < 4; p++ {
		m.queues[p] = m.newQueue(message.Priority(p))
	}
	return m
}

func (m *Manager) newQueue(p message.Priority) queue.Queue {
	laneCap := m.cfg.LaneCapacities[p]
	if m.cfg.Variant == VariantLockFree {
		caps := queue.DefaultLaneCapacities()
		caps[p] = laneCap
		return queue.NewLockFree(caps)
	}
	return queue.NewHeap(laneCap, m.cfg.HeapOverflowPolicy)
}

// Start creates and starts the four sender workers, then attempts to
// pin each to its mapped core, logging rather than failing on pin error.
func (m *Manager) Start() {
	if m.started {
		return
	}
	m.started = true

	for p := 0; p < 4; p++ {
		wc := m.cfg.WorkerConfig
		wc.Logger = m.cfg.Logger
		wc.EnableCorePinning = m.cfg.EnableCorePinning
		wc.EnableRealTimePriority = m.cfg.EnableRealTimePriority
		wc.Core = m.cfg.CoreMap[p]

		w := newSenderWorker(message.Priority(p), m.queues[p], m.conn, wc)
		m.workers[p] = w
		w.start()
	}
}

// RouteMessage selects env's queue by its Priority and pushes it.
// Returns false if the push was refused (Reject policy, full LockFree
// lane, or the queue has been shut down).
func (m *Manager) RouteMessage(env *message.Envelope) bool {
	env.MarkQueueEntry(nowNanos())
	q := m.queues[env.Priority]
	return q.Push(env)
}

// QueueStats returns the current length of each priority lane's queue,
// indexed by message.Priority.
func (m *Manager) QueueStats() [4]int {
	var out [4]int
	for p := 0; p < 4; p++ {
		out[p] = m.queues[p].Len()
	}
	return out
}

// Shutdown shuts down the queues, signals all four workers, waits up to
// timeout for them to drain and exit, and disconnects the transport.
func (m *Manager) Shutdown(timeout time.Duration) error {
	if !m.started {
		return nil
	}

	for p := 0; p < 4; p++ {
		m.queues[p].Shutdown()
	}

	done := make(chan struct{})
	go func() {
		for _, w := range m.workers {
			if w != nil {
				w.stop()
			}
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		m.cfg.Logger.Warnf("egress: shutdown timed out after %s waiting for workers", timeout)
	}

	if m.conn != nil {
		return m.conn.Disconnect()
	}
	return nil
}

func (m *Manager) String() string {
	return fmt.Sprintf("egress.Manager{variant=%d started=%v}", m.cfg.Variant, m.started)
}
