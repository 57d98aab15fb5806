package btab

// streamMagic opens every binary table stream.
const streamMagic = "BTABLE1"

// Table-level tags. The zero tag terminates the stream.
const (
	tagTableEnd    uint8 = 0
	tagTableBasic  uint8 = 1
	tagTableKeyval uint8 = 2
)

// Column-level tags, shared by basic-table headers and key-value entries.
// The zero tag terminates a column list or an entry sequence.
const (
	tagColEnd    uint8 = 0
	tagColUint64 uint8 = 1
	tagColString uint8 = 2
	tagColBool   uint8 = 3
)

// Row markers. The producer only ever writes tagRowData, but the grammar
// treats any nonzero marker as a data row.
const (
	tagRowEnd  uint8 = 0
	tagRowData uint8 = 1
)
