package btab

import "errors"

// Every decode failure wraps exactly one of these sentinels; match with
// errors.Is. The wrapping message carries the detail (path, byte offset,
// operating-system error text).
var (
	// ErrHandlerSetMismatch reports a handler set whose Revision does not
	// match the event contract this package was built with. The input is
	// never opened.
	ErrHandlerSetMismatch = errors.New("btab: handler set revision mismatch")

	// ErrIO reports a resource that cannot be opened or closed.
	ErrIO = errors.New("btab: i/o failure")

	// ErrTruncated reports fewer bytes available than the grammar requires,
	// at any decode step past the file header.
	ErrTruncated = errors.New("btab: truncated input")

	// ErrMalformedHeader reports a missing or foreign magic marker.
	ErrMalformedHeader = errors.New("btab: malformed header")

	// ErrInternal reports a tag value the grammar declares impossible for a
	// well-formed stream of this revision. Unlike ErrTruncated this is not a
	// damaged-input condition: it means producer and decoder disagree on the
	// format revision and no safe resynchronization exists.
	ErrInternal = errors.New("btab: internal inconsistency")
)
