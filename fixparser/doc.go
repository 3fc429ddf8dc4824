// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fixparser implements the resumable FIX 4.4 stream parser: a
// byte-stream-safe state machine that frames one message at a time out
// of arbitrarily fragmented TCP input, validates BodyLength and
// CheckSum, and emits fixproto.Message values allocated from a
// pool.Pool[fixproto.Message].
//
// A Context is not safe for concurrent use; one Context belongs to one
// session's receive path. Feed it successive byte slices via Parse;
// NeedMoreData means the unconsumed tail has been copied into the
// Context's carry-over buffer and the next call should pass the next
// chunk of the stream (not including bytes already consumed).
package fixparser
