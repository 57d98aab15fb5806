package btab

// HandlerSetRevision identifies the shape of the HandlerSet contract this
// package dispatches to. Callers record it in HandlerSet.Revision; Decode
// refuses a set declared for any other revision before touching the input.
// Bumped whenever a handler field is added, removed or retyped.
const HandlerSetRevision uint32 = 1

// HandlerSet is the caller's view of a decoded stream: one optional func per
// event, fired synchronously in grammar order. Nil fields are skipped, never
// an error. Every handler receives the opaque ctx value passed to Decode.
//
// []byte arguments alias the session scratch buffer and are only valid until
// the handler returns; copy them to retain them.
type HandlerSet struct {
	// Revision must equal HandlerSetRevision. A zero or stale value means
	// the caller was written against a different event contract.
	Revision uint32

	// TableBasic and TableKeyval open a table of the matching kind.
	TableBasic  func(ctx any, name []byte)
	TableKeyval func(ctx any, name []byte)

	// ColumnsBegin and ColumnsEnd bracket a basic table's column
	// declarations; both fire exactly once per basic table, even when no
	// columns are declared. Key-value tables have no column phase.
	ColumnsBegin func(ctx any)
	ColumnsEnd   func(ctx any)

	// Column events declare one (type, name) pair. In basic tables they all
	// precede the first row; in key-value tables each immediately precedes
	// its own Data event.
	ColumnUint64 func(ctx any, name []byte)
	ColumnString func(ctx any, name []byte)
	ColumnBool   func(ctx any, name []byte)

	// RowBegin and RowEnd bracket each basic-table row. A zero-column table
	// still brackets every row.
	RowBegin func(ctx any)
	RowEnd   func(ctx any)

	// Data events carry one decoded value, typed per the declared column
	// (basic tables) or per the entry's own tag (key-value tables).
	DataUint64 func(ctx any, v uint64)
	DataString func(ctx any, v []byte)
	DataBool   func(ctx any, v bool)

	// TableEnd closes every table opened by TableBasic or TableKeyval.
	TableEnd func(ctx any)

	// Error receives the one failure notification of a dead parse. It fires
	// at most once per Decode call, after cleanup. Decode also returns the
	// same failure; callers that only consume the return value may leave
	// Error nil.
	Error func(ctx any, msg string)
}
