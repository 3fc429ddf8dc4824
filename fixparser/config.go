// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixparser

import "time"

// maxCarryOver bounds the parser's partial-message carry-over buffer.
// Exceeding it is a hard error.
const maxCarryOver = 16 * 1024

// Config holds the parser's tunable knobs. Zero-value Config is
// invalid, use DefaultConfig.
type Config struct {
	MaxMessageSize        int
	ValidateChecksum      bool
	StrictValidation      bool
	MaxConsecutiveErrors  int
	ErrorRecoveryEnabled  bool
	ErrorRecoveryTimeout  time.Duration
}

// DefaultConfig returns the standard defaults.
func DefaultConfig() Config {
	return Config{
		MaxMessageSize:       8192,
		ValidateChecksum:     true,
		StrictValidation:     true,
		MaxConsecutiveErrors: 10,
		ErrorRecoveryEnabled: true,
		ErrorRecoveryTimeout: 1000 * time.Millisecond,
	}
}
