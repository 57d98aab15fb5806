// Package btabtest builds wire-correct binary table streams for tests.
//
// The builder is the reference encoder for the decode round-trip and
// truncation properties; it is test support, not a supported writer for the
// format. Misuse (a row before the column list is closed, a key entry in a
// basic table) panics rather than returning errors, since every caller is a
// test.
package btabtest

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const streamMagic = "BTABLE1"

// Wire tags, mirrored from the decoder's grammar.
const (
	tagTableEnd    uint8 = 0
	tagTableBasic  uint8 = 1
	tagTableKeyval uint8 = 2

	tagColEnd    uint8 = 0
	tagColUint64 uint8 = 1
	tagColString uint8 = 2
	tagColBool   uint8 = 3

	tagRowEnd  uint8 = 0
	tagRowData uint8 = 1
)

type builderState int

const (
	stateStream  builderState = iota // between tables
	stateColumns                     // inside a basic table's column list
	stateRows                        // inside a basic table's row sequence
	stateKeyval                      // inside a key-value table
)

// Builder assembles one encoded stream. Methods chain:
//
//	raw := btabtest.NewBuilder().
//		BasicTable("Tally").ColumnUint64("Count").EndColumns().
//		Row(uint64(42)).EndTable().
//		Bytes()
type Builder struct {
	buf   bytes.Buffer
	state builderState
	cols  []uint8
}

func NewBuilder() *Builder {
	b := &Builder{}
	b.buf.WriteString(streamMagic)
	return b
}

// BasicTable opens a basic table and its column list.
func (b *Builder) BasicTable(name string) *Builder {
	b.need(stateStream, "BasicTable")
	b.buf.WriteByte(tagTableBasic)
	b.writeString(name)
	b.state = stateColumns
	b.cols = b.cols[:0]
	return b
}

// KeyvalTable opens a key-value table.
func (b *Builder) KeyvalTable(name string) *Builder {
	b.need(stateStream, "KeyvalTable")
	b.buf.WriteByte(tagTableKeyval)
	b.writeString(name)
	b.state = stateKeyval
	return b
}

func (b *Builder) ColumnUint64(name string) *Builder { return b.column(tagColUint64, name) }
func (b *Builder) ColumnString(name string) *Builder { return b.column(tagColString, name) }
func (b *Builder) ColumnBool(name string) *Builder   { return b.column(tagColBool, name) }

func (b *Builder) column(tag uint8, name string) *Builder {
	b.need(stateColumns, "Column*")
	b.buf.WriteByte(tag)
	b.writeString(name)
	b.cols = append(b.cols, tag)
	return b
}

// EndColumns closes the column list and starts the row sequence.
func (b *Builder) EndColumns() *Builder {
	b.need(stateColumns, "EndColumns")
	b.buf.WriteByte(tagColEnd)
	b.state = stateRows
	return b
}

// Row writes one data row. Values must match the declared columns in count
// and type: uint64 (or untyped int for convenience), string or []byte, bool.
func (b *Builder) Row(values ...any) *Builder {
	b.need(stateRows, "Row")
	if len(values) != len(b.cols) {
		panic(fmt.Sprintf("btabtest: row has %d values, table declares %d columns",
			len(values), len(b.cols)))
	}
	b.buf.WriteByte(tagRowData)
	for i, v := range values {
		switch b.cols[i] {
		case tagColUint64:
			b.writeUint64(asUint64(v))
		case tagColString:
			b.writeString(asString(v))
		case tagColBool:
			b.writeBool(v.(bool))
		}
	}
	return b
}

// KeyUint64 writes one uint64 key-value entry.
func (b *Builder) KeyUint64(name string, v uint64) *Builder {
	b.need(stateKeyval, "KeyUint64")
	b.buf.WriteByte(tagColUint64)
	b.writeString(name)
	b.writeUint64(v)
	return b
}

// KeyString writes one string key-value entry.
func (b *Builder) KeyString(name, v string) *Builder {
	b.need(stateKeyval, "KeyString")
	b.buf.WriteByte(tagColString)
	b.writeString(name)
	b.writeString(v)
	return b
}

// KeyBool writes one bool key-value entry.
func (b *Builder) KeyBool(name string, v bool) *Builder {
	b.need(stateKeyval, "KeyBool")
	b.buf.WriteByte(tagColBool)
	b.writeString(name)
	b.writeBool(v)
	return b
}

// EndTable closes the open table: the row terminator for basic tables, the
// entry terminator for key-value tables.
func (b *Builder) EndTable() *Builder {
	switch b.state {
	case stateRows:
		b.buf.WriteByte(tagRowEnd)
	case stateKeyval:
		b.buf.WriteByte(tagColEnd)
	default:
		panic("btabtest: EndTable outside a table body")
	}
	b.state = stateStream
	return b
}

// Bytes returns the encoded stream including the stream terminator. The
// builder stays usable; truncation tests slice the result.
func (b *Builder) Bytes() []byte {
	b.need(stateStream, "Bytes")
	out := make([]byte, 0, b.buf.Len()+1)
	out = append(out, b.buf.Bytes()...)
	out = append(out, tagTableEnd)
	return out
}

// RawByte appends one arbitrary byte, for streams that are deliberately
// malformed (unknown tags, garbage markers).
func (b *Builder) RawByte(v uint8) *Builder {
	b.buf.WriteByte(v)
	return b
}

// RawString appends a length-prefixed string outside the grammar, paired
// with RawByte when assembling malformed tables by hand.
func (b *Builder) RawString(v string) *Builder {
	b.writeString(v)
	return b
}

func (b *Builder) need(s builderState, op string) {
	if b.state != s {
		panic(fmt.Sprintf("btabtest: %s in builder state %d", op, b.state))
	}
}

func (b *Builder) writeString(v string) {
	if len(v) > 0xFFFF {
		panic(fmt.Sprintf("btabtest: string of %d bytes exceeds the u16 length field", len(v)))
	}
	var n [2]byte
	binary.BigEndian.PutUint16(n[:], uint16(len(v)))
	b.buf.Write(n[:])
	b.buf.WriteString(v)
}

func (b *Builder) writeUint64(v uint64) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], v)
	b.buf.Write(n[:])
}

func (b *Builder) writeBool(v bool) {
	if v {
		b.buf.WriteByte(1)
		return
	}
	b.buf.WriteByte(0)
}

func asUint64(v any) uint64 {
	switch n := v.(type) {
	case uint64:
		return n
	case int:
		if n < 0 {
			panic("btabtest: negative value in a uint64 column")
		}
		return uint64(n)
	default:
		panic(fmt.Sprintf("btabtest: %T in a uint64 column", v))
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		panic(fmt.Sprintf("btabtest: %T in a string column", v))
	}
}
