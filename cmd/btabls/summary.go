package main

import (
	"fmt"
	"io"

	"github.com/danmuck/btab"
)

type columnDecl struct {
	Type string
	Name string
}

type tableSummary struct {
	Kind    string // "basic" or "keyval"
	Name    string
	Columns []columnDecl
	Rows    int
}

// colCount reports the record width. Key-value tables always produce
// key,value pairs, so their width is two no matter how many entries the
// table declares.
func (t *tableSummary) colCount() int {
	if t.Kind == "keyval" {
		return 2
	}
	return len(t.Columns)
}

type streamSummary struct {
	Tables []tableSummary
}

func newSummary() *streamSummary {
	return &streamSummary{}
}

// handlers collects structure only; the Data and Row/Columns bracket events
// stay nil because values never influence the summary.
func (s *streamSummary) handlers() *btab.HandlerSet {
	return &btab.HandlerSet{
		Revision:     btab.HandlerSetRevision,
		TableBasic:   func(_ any, name []byte) { s.begin("basic", name) },
		TableKeyval:  func(_ any, name []byte) { s.begin("keyval", name) },
		ColumnUint64: func(_ any, name []byte) { s.column("uint64", name) },
		ColumnString: func(_ any, name []byte) { s.column("string", name) },
		ColumnBool:   func(_ any, name []byte) { s.column("bool", name) },
		RowEnd:       func(_ any) { s.row() },
	}
}

func (s *streamSummary) begin(kind string, name []byte) {
	s.Tables = append(s.Tables, tableSummary{Kind: kind, Name: string(name)})
}

func (s *streamSummary) column(typ string, name []byte) {
	cur := &s.Tables[len(s.Tables)-1]
	cur.Columns = append(cur.Columns, columnDecl{Type: typ, Name: string(name)})
	// Key-value entries declare and carry a value in one step, so each
	// declaration is also a row.
	if cur.Kind == "keyval" {
		cur.Rows++
	}
}

// row only ever fires for basic tables; key-value tables have no row markers.
func (s *streamSummary) row() {
	s.Tables[len(s.Tables)-1].Rows++
}

func printSummary(w io.Writer, path string, sum *streamSummary, showColumns bool) {
	fmt.Fprintf(w, "Stream: %s\n\n", path)
	fmt.Fprintf(w, "%-7s %-24s %6s %10s\n", "KIND", "TABLE", "COLS", "ROWS")
	for _, tb := range sum.Tables {
		name := tb.Name
		if len(name) > 24 {
			name = name[:24]
		}
		fmt.Fprintf(w, "%-7s %-24s %6d %10d\n", tb.Kind, name, tb.colCount(), tb.Rows)
		if showColumns {
			for _, col := range tb.Columns {
				fmt.Fprintf(w, "        %-6s %s\n", col.Type, col.Name)
			}
		}
	}
	fmt.Fprintf(w, "\nTotal tables: %d\n", len(sum.Tables))
}
