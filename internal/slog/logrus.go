// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slog

import "github.com/sirupsen/logrus"

// logrusAdapter narrows a logrus.FieldLogger down to Logger so the rest
// of the module never imports logrus directly.
type logrusAdapter struct {
	entry logrus.FieldLogger
}

// FromLogrus wraps an existing logrus logger (or entry) as a Logger.
// Passing nil falls back to Nop.
func FromLogrus(l logrus.FieldLogger) Logger {
	if l == nil {
		return Nop
	}
	return logrusAdapter{entry: l}
}

func (a logrusAdapter) Warnf(format string, args ...any)  { a.entry.Warnf(format, args...) }
func (a logrusAdapter) Errorf(format string, args ...any) { a.entry.Errorf(format, args...) }
