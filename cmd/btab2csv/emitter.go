package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/danmuck/btab"
)

// csvEmitter bridges one decode session onto a CSV stream. Each table opens
// with a "# table <name>" comment line; basic tables then get a header
// record and one record per row, key-value tables one key,value record per
// entry.
//
// Handlers cannot abort a decode, so the first write failure is latched and
// every later event becomes a no-op; close reports it.
type csvEmitter struct {
	w       *csv.Writer
	raw     io.Writer
	include map[string]bool

	keyval  bool
	skip    bool
	header  []string
	row     []string
	pending string

	tables int
	rows   int
	werr   error
}

// newCSVEmitter writes records to raw with the given field delimiter.
// A nil include set keeps every table; otherwise tables absent from the set
// are dropped wholesale, comment line included.
func newCSVEmitter(raw io.Writer, delim rune, include map[string]bool) *csvEmitter {
	w := csv.NewWriter(raw)
	w.Comma = delim
	return &csvEmitter{w: w, raw: raw, include: include}
}

// handlers adapts the emitter to the decoder's event contract. TableEnd,
// ColumnsBegin and Error stay nil: the next table begin resets state, and
// the caller consumes Decode's returned error.
func (e *csvEmitter) handlers() *btab.HandlerSet {
	return &btab.HandlerSet{
		Revision:     btab.HandlerSetRevision,
		TableBasic:   func(_ any, name []byte) { e.beginTable(name, false) },
		TableKeyval:  func(_ any, name []byte) { e.beginTable(name, true) },
		ColumnUint64: func(_ any, name []byte) { e.column(name) },
		ColumnString: func(_ any, name []byte) { e.column(name) },
		ColumnBool:   func(_ any, name []byte) { e.column(name) },
		ColumnsEnd:   func(_ any) { e.endColumns() },
		RowBegin:     func(_ any) { e.beginRow() },
		RowEnd:       func(_ any) { e.endRow() },
		DataUint64:   func(_ any, v uint64) { e.value(strconv.FormatUint(v, 10)) },
		DataString:   func(_ any, v []byte) { e.value(string(v)) },
		DataBool:     func(_ any, v bool) { e.value(strconv.FormatBool(v)) },
	}
}

func (e *csvEmitter) beginTable(name []byte, keyval bool) {
	e.keyval = keyval
	e.header = e.header[:0]
	e.skip = e.include != nil && !e.include[string(name)]
	if e.skip || e.werr != nil {
		return
	}
	// The csv writer buffers; drain it before bypassing it for the comment
	// line or the records land out of order.
	e.w.Flush()
	if err := e.w.Error(); err != nil {
		e.werr = err
		return
	}
	if _, err := fmt.Fprintf(e.raw, "# table %s\n", name); err != nil {
		e.werr = err
		return
	}
	e.tables++
}

func (e *csvEmitter) column(name []byte) {
	if e.skip {
		return
	}
	if e.keyval {
		e.pending = string(name)
		return
	}
	e.header = append(e.header, string(name))
}

func (e *csvEmitter) endColumns() {
	if e.skip || len(e.header) == 0 {
		return
	}
	e.write(e.header)
}

func (e *csvEmitter) beginRow() {
	if e.skip {
		return
	}
	e.row = e.row[:0]
}

func (e *csvEmitter) endRow() {
	if e.skip {
		return
	}
	e.write(e.row)
	e.rows++
}

func (e *csvEmitter) value(s string) {
	if e.skip {
		return
	}
	if e.keyval {
		e.write([]string{e.pending, s})
		e.rows++
		return
	}
	e.row = append(e.row, s)
}

func (e *csvEmitter) write(record []string) {
	if e.werr != nil {
		return
	}
	if err := e.w.Write(record); err != nil {
		e.werr = err
	}
}

// close flushes buffered records and reports the first write failure of the
// whole session.
func (e *csvEmitter) close() error {
	e.w.Flush()
	if e.werr != nil {
		return e.werr
	}
	return e.w.Error()
}
