// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fixproto

import "strconv"

// AppendInt appends the base-10, unpadded decimal representation of v to
// dst and returns the extended slice. It writes digits right-to-left into
// a small on-stack buffer the way the source's thread-local integer
// formatter does; Go has no thread-local storage, but a function-local
// array serves the same purpose without allocating, since it never
// escapes beyond the append below.
func AppendInt(dst []byte, v int64) []byte {
	if v == 0 {
		return append(dst, '0')
	}

	var buf [20]byte // enough for a 64-bit signed value plus sign
	i := len(buf)
	neg := v < 0
	n := v
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return append(dst, buf[i:]...)
}

// AppendFloat appends a fixed-point decimal representation of v with
// exactly prec fractional digits, the Go equivalent of the source's
// bounded-buffer snprintf("%.*f", prec, v).
func AppendFloat(dst []byte, v float64, prec int) []byte {
	return strconv.AppendFloat(dst, v, 'f', prec, 64)
}
