// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixparser

import (
	"bytes"
	"strconv"
	"time"

	"github.com/anminfang-tamu/fixgw/fixproto"
	"github.com/anminfang-tamu/fixgw/internal/pool"
)

const beginString8 = "8=FIX.4.4"

// SOH is the FIX field delimiter, ASCII 0x01.
const SOH = '\x01'

// Context is the parser's resumable state: the carry-over buffer, the
// decode-stage state, the circuit-breaker counters, and accumulated
// statistics. One Context serves one stream and must be used from one
// goroutine at a time.
type Context struct {
	cfg   Config
	carry []byte

	state             State
	consecutiveErrors int
	circuitOpen       bool

	stats Stats
}

// NewContext creates a Context ready to parse from a fresh stream.
func NewContext(cfg Config) *Context {
	return &Context{
		cfg:   cfg,
		carry: make([]byte, 0, maxCarryOver),
		state: Idle,
	}
}

// Stats returns a snapshot of the accumulated statistics.
func (c *Context) Stats() Stats { return c.stats }

// State returns the current decode-stage state.
func (c *Context) State() State { return c.state }

// CircuitOpen reports whether the consecutive-error circuit breaker has
// tripped.
func (c *Context) CircuitOpen() bool { return c.circuitOpen }

// ResetCircuitBreaker externally clears the circuit breaker. While the
// breaker is open Parse refuses all input, so this is the only way to
// close it; a successful parse clears the consecutive-error counter but
// can only happen while the breaker is closed.
func (c *Context) ResetCircuitBreaker() {
	c.circuitOpen = false
	c.consecutiveErrors = 0
}

func (c *Context) resetHard() {
	c.carry = c.carry[:0]
	c.state = Idle
}

func (c *Context) onRecoverableError(status Status) {
	c.stats.recordError(status)
	c.consecutiveErrors++
	if c.consecutiveErrors > c.cfg.MaxConsecutiveErrors {
		c.circuitOpen = true
	}
}

func (c *Context) onSuccess() {
	c.consecutiveErrors = 0
	c.stats.TotalMessages++
}

// Parse consumes chunk (the next slice of the byte stream, not including
// anything already consumed by a prior call), combining it with any
// carried-over partial message, and attempts to frame and decode exactly
// one FIX message. p supplies the fixproto.Message allocation on success.
func (c *Context) Parse(chunk []byte, p *pool.Pool[fixproto.Message]) Result {
	start := time.Now()
	res := c.parse(chunk, p)
	c.stats.recordParse(time.Since(start).Nanoseconds())
	return res
}

func (c *Context) parse(chunk []byte, p *pool.Pool[fixproto.Message]) Result {
	if c.circuitOpen {
		return Result{Status: StatusCircuitOpen, FinalState: c.state}
	}

	full := make([]byte, 0, len(c.carry)+len(chunk))
	full = append(full, c.carry...)
	full = append(full, chunk...)

	if len(full) == 0 {
		c.onRecoverableError(StatusInvalidFormat)
		return Result{Status: StatusInvalidFormat, FinalState: Idle}
	}

	idx := bytes.Index(full, []byte(beginString8))
	if idx < 0 {
		tail := partialPrefixSuffix(full, []byte(beginString8))
		consumed := len(full) - len(tail)
		return c.needMoreData(tail, consumed)
	}
	discarded := idx
	body := full[idx:]

	pos := len(beginString8)
	if len(body) <= pos {
		return c.needMoreData(body, discarded)
	}
	if body[pos] != SOH {
		return c.recoverAfterBad(full, idx+1, discarded)
	}
	pos++ // past BeginString SOH

	if len(body) < pos+2 {
		return c.needMoreData(body, discarded)
	}
	if body[pos] != '9' || body[pos+1] != '=' {
		return c.recoverAfterBad(full, idx+1, discarded)
	}
	digitsStart := pos + 2
	sohRel := bytes.IndexByte(body[digitsStart:], SOH)
	if sohRel < 0 {
		return c.needMoreData(body, discarded)
	}
	lengthDigits := body[digitsStart : digitsStart+sohRel]
	L, err := parseDigits(lengthDigits)
	headerEnd := digitsStart + sohRel + 1
	if err != nil || L <= 0 {
		return c.recoverAfterBad(full, idx+1, discarded)
	}
	if L > c.cfg.MaxMessageSize {
		c.resetHard()
		c.onRecoverableError(StatusMessageTooLarge)
		return Result{
			Status:        StatusMessageTooLarge,
			BytesConsumed: discarded + headerEnd,
			FinalState:    Idle,
		}
	}

	// L covers the body up to and including the SOH before "10=", so the
	// message ends after L body bytes plus the 7-byte checksum field.
	messageEnd := headerEnd + L + 7
	if len(body) < messageEnd {
		return c.needMoreData(body, discarded)
	}

	trailer := body[messageEnd-7 : messageEnd]
	if !isChecksumShape(trailer) {
		return c.recoverAfterBad(full, idx+1, discarded)
	}
	checksumDigits := trailer[3:6]

	fieldRegion := body[headerEnd : messageEnd-7]
	fields, msgType, ok, _ := decodeFields(fieldRegion, &c.stats)
	if !ok {
		return c.recoverAfterBad(full, idx+1, discarded)
	}

	msg, err := p.Allocate()
	if err != nil {
		return Result{
			Status:        StatusAllocationFailed,
			BytesConsumed: discarded + messageEnd,
			Err:           err,
			FinalState:    Idle,
		}
	}
	msg.Reset()
	msg.Set(fixproto.TagBeginString, fixproto.BeginString)
	msg.Set(fixproto.TagBodyLength, strconv.Itoa(L))
	for _, f := range fields {
		msg.Set(f.tag, f.value)
	}
	msg.Set(fixproto.TagCheckSum, string(checksumDigits))
	_ = msgType

	if c.cfg.ValidateChecksum {
		sum := fixproto.Checksum(body[:messageEnd-7])
		want := fixproto.FormatChecksum(sum)
		if want != string(checksumDigits) {
			p.Release(msg)
			c.carry = c.carry[:0]
			c.state = Idle
			c.onRecoverableError(StatusChecksumError)
			return Result{
				Status:        StatusChecksumError,
				BytesConsumed: discarded + messageEnd,
				FinalState:    Idle,
			}
		}
	}

	c.carry = c.carry[:0]
	c.state = Idle
	c.onSuccess()
	return Result{
		Status:        StatusSuccess,
		BytesConsumed: discarded + messageEnd,
		Message:       msg,
		FinalState:    Idle,
	}
}

// needMoreData stores body as carry-over (bounded) and returns
// NeedMoreData, or CarryOverOverflow if the previous carry-over plus the
// new chunk (consumed + len(body)) exceeds the 16 KiB bound.
func (c *Context) needMoreData(body []byte, consumed int) Result {
	if consumed+len(body) > maxCarryOver {
		c.resetHard()
		c.onRecoverableError(StatusCarryOverOverflow)
		return Result{Status: StatusCarryOverOverflow, BytesConsumed: consumed, FinalState: Idle}
	}
	if cap(c.carry) < len(body) {
		c.carry = make([]byte, 0, maxCarryOver)
	}
	c.carry = append(c.carry[:0], body...)
	c.stats.PartialMessages++
	return Result{Status: StatusNeedMoreData, BytesConsumed: consumed, FinalState: Idle}
}

// recoverAfterBad implements the error-recovery scan: starting at
// searchFrom within full, find the next "8=FIX.4.4" occurrence; everything
// before it (beyond what was already discarded) is corrupted and
// consumed. If none is found, the trailing partial match (if any) is
// kept as carry-over and the rest is consumed as corruption.
func (c *Context) recoverAfterBad(full []byte, searchFrom int, alreadyDiscarded int) Result {
	status := StatusInvalidFormat
	c.onRecoverableError(status)
	c.stats.RecoveryOutcomes++
	c.state = Idle

	if searchFrom > len(full) {
		searchFrom = len(full)
	}
	rel := bytes.Index(full[searchFrom:], []byte(beginString8))
	if rel >= 0 {
		next := searchFrom + rel
		return Result{
			Status:        status,
			BytesConsumed: next,
			FinalState:    Idle,
			ErrorOffset:   alreadyDiscarded,
		}
	}

	tail := partialPrefixSuffix(full[searchFrom:], []byte(beginString8))
	consumed := len(full) - len(tail)
	if len(tail) > maxCarryOver {
		c.resetHard()
		return Result{Status: StatusCarryOverOverflow, BytesConsumed: consumed, FinalState: Idle}
	}
	c.carry = append(c.carry[:0], tail...)
	return Result{
		Status:        status,
		BytesConsumed: consumed,
		FinalState:    Idle,
		ErrorOffset:   alreadyDiscarded,
	}
}

// partialPrefixSuffix returns the longest suffix of buf that is a proper
// prefix of pattern — the bytes that might still grow into a BeginString
// match once more data arrives. It is the carry-over kept when pattern is
// not found anywhere in buf.
func partialPrefixSuffix(buf, pattern []byte) []byte {
	max := len(pattern) - 1
	if max > len(buf) {
		max = len(buf)
	}
	for n := max; n > 0; n-- {
		if bytes.Equal(buf[len(buf)-n:], pattern[:n]) {
			return buf[len(buf)-n:]
		}
	}
	return nil
}

func isChecksumShape(trailer []byte) bool {
	if len(trailer) != 7 {
		return false
	}
	if trailer[0] != '1' || trailer[1] != '0' || trailer[2] != '=' || trailer[6] != SOH {
		return false
	}
	for _, d := range trailer[3:6] {
		if d < '0' || d > '9' {
			return false
		}
	}
	return true
}

func parseDigits(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, strconv.ErrSyntax
	}
	for _, d := range b {
		if d < '0' || d > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(string(b))
}
