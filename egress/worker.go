// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package egress

import (
	"runtime"
	"time"

	"github.com/anminfang-tamu/fixgw/internal/cpuaffinity"
	islog "github.com/anminfang-tamu/fixgw/internal/slog"
	"github.com/anminfang-tamu/fixgw/message"
	"github.com/anminfang-tamu/fixgw/queue"
	"github.com/anminfang-tamu/fixgw/transport"
)

// popTimeout bounds how long a worker waits for its queue to produce an
// envelope before looping back to check for shutdown. It is the same
// value for both queue variants; Heap honors it as a condvar wait
// timeout, LockFree as a busy-spin-with-100µs-backoff deadline — the
// 10 ms vs 100 µs distinction lives inside each Queue implementation,
// not here.
const popTimeout = 10 * time.Millisecond

// WorkerConfig controls a senderWorker's retry behavior.
type WorkerConfig struct {
	BaseBackoff time.Duration
	MaxRetries  int

	// EnableCorePinning and EnableRealTimePriority request the worker's
	// OS thread be pinned to Core and, optionally, scheduled real-time.
	// Failures are logged, never fatal.
	EnableCorePinning      bool
	EnableRealTimePriority bool
	Core                   int

	Logger islog.Logger
}

// DefaultWorkerConfig returns the standard defaults: base timeout 1ms,
// max_retries 3, no pinning (the Manager fills in Core per lane).
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		BaseBackoff: time.Millisecond,
		MaxRetries:  3,
		Logger:      islog.Nop,
	}
}

// senderWorker drains one priority lane's queue and writes serialized
// envelopes to the shared connection, retrying with exponential backoff
// before giving up.
type senderWorker struct {
	priority message.Priority
	q        queue.Queue
	conn     *transport.Connection
	cfg      WorkerConfig

	stopCh chan struct{}
	doneCh chan struct{}
}

func newSenderWorker(priority message.Priority, q queue.Queue, conn *transport.Connection, cfg WorkerConfig) *senderWorker {
	if cfg.Logger == nil {
		cfg.Logger = islog.Nop
	}
	return &senderWorker{
		priority: priority,
		q:        q,
		conn:     conn,
		cfg:      cfg,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// start runs the worker loop on its own goroutine.
func (w *senderWorker) start() {
	go w.run()
}

func (w *senderWorker) run() {
	defer close(w.doneCh)

	if w.cfg.EnableCorePinning || w.cfg.EnableRealTimePriority {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		if w.cfg.EnableCorePinning {
			if err := cpuaffinity.PinCurrentThread(w.cfg.Core); err != nil {
				w.cfg.Logger.Warnf("egress: pin priority=%s core=%d failed: %v", w.priority, w.cfg.Core, err)
			}
		}
		if w.cfg.EnableRealTimePriority {
			if err := cpuaffinity.EnableRealTimeCurrentThread(); err != nil {
				w.cfg.Logger.Warnf("egress: real-time scheduling priority=%s failed: %v", w.priority, err)
			}
		}
	}

	for {
		select {
		case <-w.stopCh:
			w.drain()
			return
		default:
		}

		env, ok := w.q.Pop(popTimeout)
		if !ok {
			continue
		}
		w.deliver(env)
	}
}

// deliver writes one envelope, retrying with exponential backoff up to
// cfg.MaxRetries before marking it FAILED.
func (w *senderWorker) deliver(env *message.Envelope) {
	env.SetState(message.Sending)

	var lastErr error
	for attempt := 0; attempt <= w.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(w.cfg.BaseBackoff * time.Duration(attempt))
		}
		err := w.conn.Send(env.Payload)
		if err == nil {
			env.MarkSend(nowNanos())
			env.SetState(message.Sent)
			if env.OnComplete != nil {
				env.OnComplete(env)
			}
			return
		}
		lastErr = err
		env.IncrRetry()
	}

	env.SetState(message.Failed)
	env.SetLastError(0, lastErr.Error())
	w.cfg.Logger.Warnf("egress: priority=%s give up after %d retries: %v", w.priority, w.cfg.MaxRetries, lastErr)
	if env.OnError != nil {
		env.OnError(env, lastErr)
	}
}

// drain best-effort flushes whatever is immediately available without
// retrying failed sends, on a best-effort basis during shutdown.
func (w *senderWorker) drain() {
	for {
		env, ok := w.q.TryPop()
		if !ok {
			return
		}
		_ = w.conn.Send(env.Payload)
	}
}

// stop signals the worker to exit after its current pop/send completes
// and waits for it to do so.
func (w *senderWorker) stop() {
	close(w.stopCh)
	<-w.doneCh
}
