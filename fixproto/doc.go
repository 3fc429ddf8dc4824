// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fixproto implements the FIX 4.4 message representation: a
// tag->value mapping with canonical serialization order plus cached
// body-length, checksum, and message-type classification.
package fixproto
