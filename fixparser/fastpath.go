// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixparser

import (
	"bytes"

	"github.com/anminfang-tamu/fixgw/fixproto"
)

// fieldKV is one decoded tag=value pair.
type fieldKV struct {
	tag   int
	value string
}

// decodeFields walks fieldRegion ("tag=value\x01" triples, already framed
// and length-validated by the caller) and returns the decoded fields plus
// the MsgType value. When fieldRegion looks like one of the hot message
// types (MsgType is the first field — the common, compliant case), it
// takes the fast sweep and falls back to the generic, state-tracked
// decode on any structural surprise.
func decodeFields(fieldRegion []byte, stats *Stats) (fields []fieldKV, msgType string, ok bool, errOffset int) {
	if bytes.HasPrefix(fieldRegion, []byte("35=")) {
		if fs, mt, fastOK := decodeFast(fieldRegion); fastOK {
			return fs, mt, true, -1
		}
	}
	return decodeGeneric(fieldRegion, stats)
}

// decodeFast performs a single forward sweep with no explicit
// state-machine dispatch: find '=' with IndexByte, find the terminating
// SOH with IndexByte, repeat. It verifies the hot type's
// required tags are present before declaring success; on any surprise
// (malformed field, non-hot MsgType discovered after all, missing
// required tag) it reports fastOK=false so the caller falls back to
// decodeGeneric.
func decodeFast(region []byte) (fields []fieldKV, msgType string, fastOK bool) {
	pos := 0
	for pos < len(region) {
		eq := bytes.IndexByte(region[pos:], '=')
		if eq <= 0 {
			return nil, "", false
		}
		tagBytes := region[pos : pos+eq]
		tag, err := parseDigits(tagBytes)
		if err != nil || tag > 99999 {
			return nil, "", false
		}

		valStart := pos + eq + 1
		sohRel := bytes.IndexByte(region[valStart:], SOH)
		if sohRel < 0 {
			return nil, "", false
		}
		value := string(region[valStart : valStart+sohRel])

		fields = append(fields, fieldKV{tag: tag, value: value})
		if tag == fixproto.TagMsgType {
			msgType = value
			if !fixproto.IsHotType(msgType) {
				return nil, "", false
			}
		}
		pos = valStart + sohRel + 1
	}

	if msgType == "" {
		return nil, "", false
	}
	for _, req := range fixproto.RequiredTags(msgType) {
		if !hasTag(fields, req) {
			return nil, "", false
		}
	}
	return fields, msgType, true
}

func hasTag(fields []fieldKV, tag int) bool {
	for _, f := range fields {
		if f.tag == tag {
			return true
		}
	}
	return false
}

// decodeGeneric is the generic path: it walks the same tag=value triples
// as decodeFast, in the steps the ParsingTag/ExpectingEquals/ParsingValue/
// ExpectingSOH states name, and counts four state transitions per field
// in Stats.StateTransitions, so the counter reflects the generic path's
// work even when the fast path usually handles the hot types. It does
// not store those states in the Context.
func decodeGeneric(region []byte, stats *Stats) (fields []fieldKV, msgType string, ok bool, errOffset int) {
	pos := 0
	for pos < len(region) {
		// ParsingTag -> EXPECTING_EQUALS
		eq := bytes.IndexByte(region[pos:], '=')
		if eq <= 0 {
			return nil, msgType, false, pos
		}
		tag, err := parseDigits(region[pos : pos+eq])
		if err != nil || tag > 99999 {
			return nil, msgType, false, pos
		}
		stats.StateTransitions++

		// EXPECTING_EQUALS -> PARSING_VALUE ('=' already located above)
		valStart := pos + eq + 1
		stats.StateTransitions++

		// PARSING_VALUE -> EXPECTING_SOH
		sohRel := bytes.IndexByte(region[valStart:], SOH)
		if sohRel < 0 {
			return nil, msgType, false, pos
		}
		value := string(region[valStart : valStart+sohRel])
		stats.StateTransitions++

		fields = append(fields, fieldKV{tag: tag, value: value})
		if tag == fixproto.TagMsgType {
			msgType = value
		}

		// EXPECTING_SOH -> PARSING_TAG (next iteration) or, once the
		// caller has exhausted region, PARSING_CHECKSUM.
		pos = valStart + sohRel + 1
		stats.StateTransitions++
	}
	return fields, msgType, true, -1
}
