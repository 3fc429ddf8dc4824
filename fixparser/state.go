// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixparser

// State names one node of the decode-stage state machine. Framing
// (stage 1) happens before State ever leaves Idle. Parse leaves the
// Context in Idle after every call, including after a ChecksumError or
// other recoverable error; the other states name decode steps and are
// not stored in the Context or reported in Result.FinalState.
type State int

const (
	Idle State = iota
	ParsingBeginString
	ParsingBodyLength
	ParsingTag
	ExpectingEquals
	ParsingValue
	ExpectingSOH
	ParsingChecksum
	MessageComplete
	ErrorRecovery
	CorruptedSkip
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case ParsingBeginString:
		return "PARSING_BEGIN_STRING"
	case ParsingBodyLength:
		return "PARSING_BODY_LENGTH"
	case ParsingTag:
		return "PARSING_TAG"
	case ExpectingEquals:
		return "EXPECTING_EQUALS"
	case ParsingValue:
		return "PARSING_VALUE"
	case ExpectingSOH:
		return "EXPECTING_SOH"
	case ParsingChecksum:
		return "PARSING_CHECKSUM"
	case MessageComplete:
		return "MESSAGE_COMPLETE"
	case ErrorRecovery:
		return "ERROR_RECOVERY"
	case CorruptedSkip:
		return "CORRUPTED_SKIP"
	default:
		return "UNKNOWN"
	}
}
