// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixparser

import "github.com/anminfang-tamu/fixgw/fixproto"

// Status is the outcome of one Parse call. It is a plain int, not an
// error: the hot path (Success, NeedMoreData) never allocates an error
// value.
type Status int

const (
	StatusSuccess Status = iota
	StatusNeedMoreData
	StatusInvalidFormat
	StatusFieldParseError
	StatusChecksumError
	StatusMessageTooLarge
	StatusUnsupportedVersion
	StatusAllocationFailed
	StatusCarryOverOverflow
	StatusCircuitOpen
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusNeedMoreData:
		return "NeedMoreData"
	case StatusInvalidFormat:
		return "InvalidFormat"
	case StatusFieldParseError:
		return "FieldParseError"
	case StatusChecksumError:
		return "ChecksumError"
	case StatusMessageTooLarge:
		return "MessageTooLarge"
	case StatusUnsupportedVersion:
		return "UnsupportedVersion"
	case StatusAllocationFailed:
		return "AllocationFailed"
	case StatusCarryOverOverflow:
		return "CarryOverOverflow"
	case StatusCircuitOpen:
		return "CircuitOpen"
	default:
		return "Unknown"
	}
}

// IsRecoverable reports whether the parser scans forward for the next
// message rather than returning the error straight to the caller.
func (s Status) IsRecoverable() bool {
	switch s {
	case StatusInvalidFormat, StatusFieldParseError, StatusChecksumError:
		return true
	default:
		return false
	}
}

// Result is returned by every Parse call.
type Result struct {
	Status        Status
	BytesConsumed int
	Message       *fixproto.Message
	Err           error
	FinalState    State
	ErrorOffset   int
}
