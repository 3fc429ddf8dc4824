// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package slog defines the minimal logging seam used at setup/teardown
// and for the warning-not-error paths of package egress: core-pin
// failure, real-time scheduling failure, sender give-up, and shutdown
// timeout. The parser, including its circuit breaker, does not log, and
// hot paths (parse, allocate, push/pop) never call it.
package slog

// Logger is satisfied by a logrus.FieldLogger (via FromLogrus) or any
// other structured logger with this much surface.
type Logger interface {
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// nopLogger discards everything; used as the zero-value default so
// components can hold a Logger field without a nil check on every call.
type nopLogger struct{}

func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Nop is a Logger that discards all output.
var Nop Logger = nopLogger{}
