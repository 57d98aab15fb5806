package btab

import (
	"fmt"
	"io"
)

// decoder is one parse session: the open source, the scratch buffer, the
// active table's column types, and the caller's handler set. Sessions are
// built, used and discarded inside a single Decode call; nothing is shared
// between calls, so independent decodes may run on separate goroutines.
type decoder struct {
	src      *byteSource
	handlers *HandlerSet
	ctx      any

	scratch  scratchBuffer
	colTypes []uint8
	num      [8]byte
}

// Decode reads the binary table stream at path front to back, dispatching
// every event to handlers with ctx. It returns once the stream terminator
// has been consumed or a fatal error has been reported.
//
// The handler set's Revision is verified against HandlerSetRevision before
// the file is opened; a mismatched or nil set yields ErrHandlerSetMismatch
// and zero decode events. Any failure below the entry point unwinds here,
// fires Error at most once after the source is closed, and is returned
// wrapped around one of the package sentinels. There is no partial recovery:
// callers retry by calling Decode again.
func Decode(path string, handlers *HandlerSet, ctx any) error {
	if handlers == nil {
		return fmt.Errorf("%w: nil handler set", ErrHandlerSetMismatch)
	}
	if handlers.Revision != HandlerSetRevision {
		err := fmt.Errorf("%w: handler set declares revision %d, decoder expects %d",
			ErrHandlerSetMismatch, handlers.Revision, HandlerSetRevision)
		if handlers.Error != nil {
			handlers.Error(ctx, err.Error())
		}
		return err
	}

	d := &decoder{handlers: handlers, ctx: ctx}
	if err := d.run(path); err != nil {
		if handlers.Error != nil {
			handlers.Error(ctx, err.Error())
		}
		return err
	}
	return nil
}

// run owns the source for one parse: open, header check, table loop, close.
// The deferred close keeps the handle from leaking no matter where the
// grammar fails; a close failure on an otherwise clean parse surfaces as
// the parse error.
func (d *decoder) run(path string) (err error) {
	src, err := openSource(path)
	if err != nil {
		return err
	}
	d.src = src
	defer func() {
		if cerr := src.Close(); err == nil {
			err = cerr
		}
	}()

	if err := d.checkHeader(); err != nil {
		return err
	}
	for {
		more, err := d.nextTable()
		if err != nil {
			return err
		}
		if !more {
			// Anything after the stream terminator is the producer's
			// business, not ours.
			return nil
		}
	}
}

// checkHeader validates the 7-byte magic. Header failures are framing
// errors, not truncation: a short or foreign prefix means this is not a
// binary table stream at all.
func (d *decoder) checkHeader() error {
	var hdr [len(streamMagic)]byte
	n, err := io.ReadFull(d.src.r, hdr[:])
	d.src.off += int64(n)
	if err != nil {
		return fmt.Errorf("%w: reading file header of %s: %v",
			ErrMalformedHeader, d.src.path, err)
	}
	if string(hdr[:]) != streamMagic {
		return fmt.Errorf("%w: %s is not a binary table stream",
			ErrMalformedHeader, d.src.path)
	}
	return nil
}
