// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package message defines the generic routing envelope that moves
// through the priority queues and sender workers: identity, payload
// bytes, priority, timestamps, and state — independent of whatever
// protocol produced the payload (FIX, or anything else a future
// transport wires in).
package message

import "code.hybscloud.com/atomix"

// Priority orders envelopes across the four lanes the egress manager
// maintains. Higher numeric value drains first.
type Priority int

const (
	Low Priority = iota
	Medium
	High
	Critical
)

// String renders the priority the way logs and metrics labels want it.
func (p Priority) String() string {
	switch p {
	case Low:
		return "LOW"
	case Medium:
		return "MEDIUM"
	case High:
		return "HIGH"
	case Critical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// State is the envelope's lifecycle stage. State advances monotonically
// except PENDING -> FAILED on give-up.
type State int32

const (
	Pending State = iota
	Sending
	Sent
	Failed
	Expired
)

func (s State) String() string {
	switch s {
	case Pending:
		return "PENDING"
	case Sending:
		return "SENDING"
	case Sent:
		return "SENT"
	case Failed:
		return "FAILED"
	case Expired:
		return "EXPIRED"
	default:
		return "UNKNOWN"
	}
}

// CompletionCallback is invoked once an envelope reaches SENT.
type CompletionCallback func(*Envelope)

// ErrorCallback is invoked when an envelope reaches FAILED, with the
// last error code/text populated.
type ErrorCallback func(*Envelope, error)

// Envelope is the generic routing unit pushed through package queue and
// drained by package egress's sender workers.
//
// Timestamp fields are nanoseconds since an arbitrary monotonic epoch
// (the caller's choice — typically time.Now().UnixNano(), but any
// monotonically increasing source works) and are read/written through
// atomix so a producer goroutine, a queue-internal mover, and a sender
// worker goroutine can all observe them without a data race. The
// invariant CreationNanos <= QueueEntryNanos <= SendNanos holds once a
// field is populated (zero means "not yet reached").
type Envelope struct {
	ID            uint64
	SeqNum        uint64
	Payload       []byte
	Priority      Priority
	Kind          string
	SessionID     string
	Destination   string

	creationNanos   atomix.Int64
	queueEntryNanos atomix.Int64
	sendNanos       atomix.Int64
	deadlineNanos   atomix.Int64

	state      atomix.Int32
	retryCount atomix.Int32

	lastErrCode atomix.Int32
	lastErrText string

	OnComplete CompletionCallback
	OnError    ErrorCallback
	OnUser     func(*Envelope)
}

// New creates an Envelope in state PENDING with CreationNanos set to now.
func New(id, seqNum uint64, payload []byte, priority Priority, kind string, now int64) *Envelope {
	e := &Envelope{
		ID:        id,
		SeqNum:    seqNum,
		Payload:   payload,
		Priority:  priority,
		Kind:      kind,
	}
	e.creationNanos.StoreRelease(now)
	e.state.StoreRelease(int32(Pending))
	return e
}

// CreationNanos returns the creation timestamp (0 if unset).
func (e *Envelope) CreationNanos() int64 { return e.creationNanos.LoadAcquire() }

// MarkQueueEntry records the time the envelope was pushed onto a lane.
func (e *Envelope) MarkQueueEntry(now int64) { e.queueEntryNanos.StoreRelease(now) }

// QueueEntryNanos returns the queue-entry timestamp (0 if unset).
func (e *Envelope) QueueEntryNanos() int64 { return e.queueEntryNanos.LoadAcquire() }

// MarkSend records the time a sender worker began writing the envelope.
func (e *Envelope) MarkSend(now int64) { e.sendNanos.StoreRelease(now) }

// SendNanos returns the send timestamp (0 if unset).
func (e *Envelope) SendNanos() int64 { return e.sendNanos.LoadAcquire() }

// SetDeadline records an optional deadline for this envelope.
func (e *Envelope) SetDeadline(now int64) { e.deadlineNanos.StoreRelease(now) }

// DeadlineNanos returns the deadline timestamp (0 if unset).
func (e *Envelope) DeadlineNanos() int64 { return e.deadlineNanos.LoadAcquire() }

// State returns the current lifecycle state.
func (e *Envelope) State() State { return State(e.state.LoadAcquire()) }

// SetState advances the envelope's state. Callers are expected to
// respect the monotonic-except-give-up invariant; SetState itself does
// not enforce it (the sender worker and queue are the only state
// mutators and both follow the contract by construction).
func (e *Envelope) SetState(s State) { e.state.StoreRelease(int32(s)) }

// RetryCount returns the number of failed send attempts recorded so far.
func (e *Envelope) RetryCount() int32 { return e.retryCount.LoadAcquire() }

// IncrRetry increments and returns the new retry count.
func (e *Envelope) IncrRetry() int32 { return int32(e.retryCount.Add(1)) }

// LastError returns the last recorded error code and text.
func (e *Envelope) LastError() (code int32, text string) {
	return e.lastErrCode.LoadAcquire(), e.lastErrText
}

// SetLastError records an error code/text. Not safe to call concurrently
// with LastError for the text half (by construction only the owning
// sender worker calls SetLastError for a given envelope).
func (e *Envelope) SetLastError(code int32, text string) {
	e.lastErrText = text
	e.lastErrCode.StoreRelease(code)
}
