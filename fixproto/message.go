// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixproto

import (
	"errors"
	"fmt"
)

// SOH is the FIX field delimiter, ASCII 0x01.
const SOH = '\x01'

// ErrMissingRequiredTag is returned by Validate when a sendable message
// lacks one of the header or per-type required tags.
var ErrMissingRequiredTag = errors.New("fixproto: missing required tag")

// Message is a tag->value mapping with cached derived data: body length,
// checksum, serialized form, and message-type classification. Insertion
// order of fields is not contractual; Serialize imposes the canonical
// order 8, 9, 35, then remaining tags in insertion order, then 10 last.
//
// A Message is meant to be allocated from a pool.Pool[Message] and reused
// across its pooled lifetime; Reset clears it back to empty without
// freeing the backing map or order slice.
type Message struct {
	fields map[int]string
	order  []int // insertion order of tags other than 8, 9, 35, 10

	bodyLen    int
	checksum   string
	serialized []byte
	msgType    string
	cacheValid bool
}

// NewMessage returns an empty Message ready for field assignment.
func NewMessage() *Message {
	return &Message{fields: make(map[int]string, 32)}
}

// Reset clears the message back to empty, for reuse out of a pool.
func (m *Message) Reset() {
	for k := range m.fields {
		delete(m.fields, k)
	}
	m.order = m.order[:0]
	m.invalidate()
}

func (m *Message) invalidate() {
	m.bodyLen = 0
	m.checksum = ""
	m.serialized = nil
	m.msgType = ""
	m.cacheValid = false
}

// Set assigns tag=value, invalidating all caches. The special tags 8, 9,
// and 10 are computed by Serialize and should not normally be set
// directly; if set, Serialize overwrites them in the output (the stored
// value is kept for Get but does not affect the canonical serialization).
func (m *Message) Set(tag int, value string) {
	if m.fields == nil {
		// Zero-value Messages come straight out of a pool slot, which
		// never runs NewMessage; allocate lazily on first use.
		m.fields = make(map[int]string, 32)
	}
	if _, exists := m.fields[tag]; !exists && tag != TagBeginString && tag != TagBodyLength && tag != TagCheckSum {
		m.order = append(m.order, tag)
	}
	m.fields[tag] = value
	m.invalidate()
}

// Get returns the value for tag and whether it was present.
func (m *Message) Get(tag int) (string, bool) {
	v, ok := m.fields[tag]
	return v, ok
}

// MsgType returns the value of tag 35, caching the lookup.
func (m *Message) MsgType() string {
	if m.msgType == "" {
		m.msgType = m.fields[TagMsgType]
	}
	return m.msgType
}

// Validate checks that a sendable message carries the header-required
// tags (49, 56, 34, 52; 8/9/35 are supplied by the serializer) plus any
// additional tags required for its message type.
func (m *Message) Validate() error {
	if _, ok := m.fields[TagMsgType]; !ok {
		return fmt.Errorf("%w: 35 (MsgType)", ErrMissingRequiredTag)
	}
	for _, tag := range headerRequired {
		if _, ok := m.fields[tag]; !ok {
			return fmt.Errorf("%w: %d", ErrMissingRequiredTag, tag)
		}
	}
	for _, tag := range requiredByType[m.MsgType()] {
		if _, ok := m.fields[tag]; !ok {
			return fmt.Errorf("%w: %d", ErrMissingRequiredTag, tag)
		}
	}
	return nil
}

// Serialize renders the message in canonical order (8, 9, 35, remaining
// tags in insertion order, 10 last), computing and caching BodyLength and
// CheckSum. The returned slice is owned by the cache; callers must not
// mutate it and it is invalidated by the next Set or Reset.
func (m *Message) Serialize() ([]byte, error) {
	if m.cacheValid {
		return m.serialized, nil
	}
	if _, ok := m.fields[TagMsgType]; !ok {
		return nil, fmt.Errorf("%w: 35 (MsgType)", ErrMissingRequiredTag)
	}

	var body []byte
	body = appendField(body, TagMsgType, m.fields[TagMsgType])
	for _, tag := range m.order {
		if tag == TagMsgType {
			continue
		}
		body = appendField(body, tag, m.fields[tag])
	}

	bodyLen := len(body)

	var out []byte
	out = appendField(out, TagBeginString, BeginString)
	out = appendFieldInt(out, TagBodyLength, int64(bodyLen))
	out = append(out, body...)

	sum := Checksum(out)
	out = appendFieldChecksum(out, sum)

	m.bodyLen = bodyLen
	m.checksum = FormatChecksum(sum)
	m.serialized = out
	m.msgType = m.fields[TagMsgType]
	m.cacheValid = true
	return out, nil
}

// BodyLength returns the cached body length, serializing first if needed.
func (m *Message) BodyLength() (int, error) {
	if !m.cacheValid {
		if _, err := m.Serialize(); err != nil {
			return 0, err
		}
	}
	return m.bodyLen, nil
}

// CheckSum returns the cached three-digit checksum string, serializing
// first if needed.
func (m *Message) CheckSum() (string, error) {
	if !m.cacheValid {
		if _, err := m.Serialize(); err != nil {
			return "", err
		}
	}
	return m.checksum, nil
}

func appendField(dst []byte, tag int, value string) []byte {
	dst = AppendInt(dst, int64(tag))
	dst = append(dst, '=')
	dst = append(dst, value...)
	dst = append(dst, SOH)
	return dst
}

func appendFieldInt(dst []byte, tag int, value int64) []byte {
	dst = AppendInt(dst, int64(tag))
	dst = append(dst, '=')
	dst = AppendInt(dst, value)
	dst = append(dst, SOH)
	return dst
}

func appendFieldChecksum(dst []byte, sum byte) []byte {
	dst = AppendInt(dst, TagCheckSum)
	dst = append(dst, '=')
	dst = append(dst, FormatChecksum(sum)...)
	dst = append(dst, SOH)
	return dst
}

// Checksum computes the modulo-256 byte sum used as the FIX checksum over
// data — everything from "8=" up to and including the SOH preceding the
// "10=" field.
func Checksum(data []byte) byte {
	var sum byte
	for _, c := range data {
		sum += c
	}
	return sum
}

// FormatChecksum renders sum as the three decimal digits FIX requires,
// zero-padded.
func FormatChecksum(sum byte) string {
	buf := [3]byte{'0', '0', '0'}
	buf[2] = '0' + sum%10
	buf[1] = '0' + (sum/10)%10
	buf[0] = '0' + (sum/100)%10
	return string(buf[:])
}
