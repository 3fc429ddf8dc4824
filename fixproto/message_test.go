// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixproto

import (
	"strings"
	"testing"
)

func heartbeat() *Message {
	m := NewMessage()
	m.Set(TagMsgType, MsgTypeHeartbeat)
	m.Set(TagSenderCompID, "S")
	m.Set(TagTargetCompID, "T")
	m.Set(TagMsgSeqNum, "1")
	m.Set(TagSendingTime, "20231201-12:00:00")
	return m
}

func TestMessage_SerializeCanonicalOrder(t *testing.T) {
	m := heartbeat()
	out, err := m.Serialize()
	if err != nil {
		t.Fatalf("Serialize() = %v", err)
	}
	s := string(out)

	if !strings.HasPrefix(s, "8=FIX.4.4\x019=") {
		t.Fatalf("Serialize() did not start with BeginString/BodyLength: %q", s)
	}
	if !strings.HasSuffix(s, "\x01") || !strings.Contains(s, "\x0110=") {
		t.Fatalf("Serialize() missing trailing checksum field: %q", s)
	}

	idxMsgType := strings.Index(s, "35=0\x01")
	idxBodyLen := strings.Index(s, "9=")
	if idxMsgType < idxBodyLen {
		t.Fatalf("MsgType must come after BodyLength in canonical order: %q", s)
	}
}

func TestMessage_ChecksumMatchesModulo256Sum(t *testing.T) {
	m := heartbeat()
	out, err := m.Serialize()
	if err != nil {
		t.Fatalf("Serialize() = %v", err)
	}

	csIdx := strings.LastIndex(string(out), "10=")
	prefix := out[:csIdx]
	var sum byte
	for _, b := range prefix {
		sum += b
	}
	want := FormatChecksum(sum)
	got := string(out[csIdx+3 : csIdx+6])
	if got != want {
		t.Fatalf("checksum = %q, want %q", got, want)
	}
}

func TestMessage_MutationInvalidatesCache(t *testing.T) {
	m := heartbeat()
	first, err := m.Serialize()
	if err != nil {
		t.Fatalf("Serialize() = %v", err)
	}
	firstCopy := append([]byte(nil), first...)

	m.Set(TagMsgSeqNum, "2")
	second, err := m.Serialize()
	if err != nil {
		t.Fatalf("Serialize() = %v", err)
	}
	if string(second) == string(firstCopy) {
		t.Fatal("Serialize() returned stale cached output after mutation")
	}
}

func TestMessage_ValidateRequiresHeaderFields(t *testing.T) {
	m := NewMessage()
	m.Set(TagMsgType, MsgTypeHeartbeat)
	if err := m.Validate(); err == nil {
		t.Fatal("Validate() on message missing header fields should fail")
	}

	m2 := heartbeat()
	if err := m2.Validate(); err != nil {
		t.Fatalf("Validate() on well-formed heartbeat = %v, want nil", err)
	}
}

func TestMessage_ValidateRequiresPerTypeFields(t *testing.T) {
	m := NewMessage()
	m.Set(TagMsgType, MsgTypeNewOrderSingle)
	m.Set(TagSenderCompID, "S")
	m.Set(TagTargetCompID, "T")
	m.Set(TagMsgSeqNum, "1")
	m.Set(TagSendingTime, "20231201-12:00:00")

	if err := m.Validate(); err == nil {
		t.Fatal("Validate() on NewOrderSingle missing ClOrdID/Symbol/etc should fail")
	}

	m.Set(TagClOrdID, "CL1")
	m.Set(TagSymbol, "IBM")
	m.Set(TagSide, "1")
	m.Set(TagOrderQty, "100")
	m.Set(TagOrdType, "2")
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() on complete NewOrderSingle = %v, want nil", err)
	}
}

func TestMessage_Reset(t *testing.T) {
	m := heartbeat()
	if _, err := m.Serialize(); err != nil {
		t.Fatalf("Serialize() = %v", err)
	}
	m.Reset()
	if _, ok := m.Get(TagMsgType); ok {
		t.Fatal("Get() after Reset should find nothing")
	}
	if err := m.Validate(); err == nil {
		t.Fatal("Validate() after Reset should fail")
	}
}

func TestAppendInt(t *testing.T) {
	cases := []struct {
		v    int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{123, "123"},
		{-42, "-42"},
	}
	for _, c := range cases {
		got := string(AppendInt(nil, c.v))
		if got != c.want {
			t.Errorf("AppendInt(%d) = %q, want %q", c.v, got, c.want)
		}
	}
}
