// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixproto

// Header and trailer tags.
const (
	TagBeginString  = 8
	TagBodyLength   = 9
	TagMsgType      = 35
	TagSenderCompID = 49
	TagTargetCompID = 56
	TagMsgSeqNum    = 34
	TagSendingTime  = 52
	TagCheckSum     = 10
)

// Hot trading-field tags.
const (
	TagClOrdID    = 11
	TagOrderID    = 37
	TagExecID     = 17
	TagExecType   = 150
	TagOrdStatus  = 39
	TagSymbol     = 55
	TagSide       = 54
	TagOrderQty   = 38
	TagPrice      = 44
	TagOrdType    = 40
	TagTimeInForce = 59
	TagLastQty    = 32
	TagLastPx     = 31
	TagLeavesQty  = 151
	TagCumQty     = 14
	TagAvgPx      = 6
)

// Hot message types.
const (
	MsgTypeNewOrderSingle  = "D"
	MsgTypeExecutionReport = "8"
	MsgTypeHeartbeat       = "0"
)

// BeginString is the only FIX version this module understands. The
// parser frames only messages starting "8=FIX.4.4" and skips any other
// bytes as corruption; it does not return StatusUnsupportedVersion.
const BeginString = "FIX.4.4"

// headerRequired are the tags every sendable message must carry, beyond
// the framing triad (8, 9, 35) that the serializer itself fills in.
var headerRequired = [...]int{TagSenderCompID, TagTargetCompID, TagMsgSeqNum, TagSendingTime}

// requiredByType lists the additional required tags per hot message type.
var requiredByType = map[string][]int{
	MsgTypeNewOrderSingle:  {TagClOrdID, TagSymbol, TagSide, TagOrderQty, TagOrdType},
	MsgTypeExecutionReport: {TagOrderID, TagExecID, TagExecType, TagOrdStatus, TagSymbol, TagSide},
	MsgTypeHeartbeat:       {},
}

// RequiredTags returns the additional body-level tags required for msgType
// beyond the framing triad and header-required tags, or nil if msgType is
// not one of the hot types with extra requirements.
func RequiredTags(msgType string) []int {
	return requiredByType[msgType]
}

// IsHotType reports whether msgType is one of the closed set of hot
// message types the fast parsing path specializes for.
func IsHotType(msgType string) bool {
	_, ok := requiredByType[msgType]
	return ok
}
