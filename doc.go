// Package btab decodes binary table streams: sequences of named, typed
// tables written by instrumentation producers into a single forward-only
// byte stream.
//
// Ownership boundary:
// - wire framing (magic header, tag dispatch, terminators)
// - big-endian scalar and length-prefixed string decoding
// - table/column/row grammar traversal and event dispatch
// - per-session error unwind and cleanup
//
// The package does not interpret table contents. Callers receive the stream
// as a flat sequence of events through a [HandlerSet] and aggregate whatever
// they need; cmd/btab2csv and cmd/btabls are two such consumers.
//
// # Wire format
//
// All multi-byte integers are big-endian. A stream is:
//
//	"BTABLE1"                      7-byte magic
//	{ table_tag:u8 name [body] }*  tag 1 = basic, 2 = key-value
//	0x00                           table-level terminator
//
// A basic table body declares columns, then carries rows:
//
//	{ col_tag:u8 name }*  0x00     tag 1 = uint64, 2 = string, 3 = bool
//	{ marker:u8 value* }* 0x00     one value per declared column, in order
//
// A key-value table body is a flat entry list:
//
//	{ col_tag:u8 name value }* 0x00
//
// Strings are a u16 length followed by that many raw bytes. Uint64 values
// are 8 bytes, bool values one byte (nonzero is true).
//
// # Decoding
//
// A single call drives a whole stream:
//
//	hs := &btab.HandlerSet{
//		Revision:   btab.HandlerSetRevision,
//		TableBasic: func(ctx any, name []byte) { ... },
//		DataUint64: func(ctx any, v uint64) { ... },
//	}
//	err := btab.Decode("run.btab", hs, myState)
//
// Handlers run synchronously on the decoding goroutine, in grammar order.
// Nil handler fields are skipped. []byte arguments alias the session's
// scratch buffer and are invalidated by the next decode step: copy before
// returning if the bytes must outlive the handler call.
//
// Decoding is strictly sequential and never seeks. Every failure, at any
// grammar depth, aborts the parse, fires the Error handler exactly once,
// and is returned from Decode wrapped around one of the package's sentinel
// errors. Independent sessions are safe to run on separate goroutines; the
// package keeps no global state.
package btab
