package btab

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// readBufferSize is the bufio chunk size layered over the input file.
// Producers write dumps in the hundreds of megabytes, so large chunks keep
// the per-tag read cost away from the syscall layer. Buffering is a
// throughput concern only; correctness never depends on it.
const readBufferSize = 10 << 20

// byteSource is a forward-only reader over one named input file. It counts
// consumed bytes so failures can report the exact stream offset.
type byteSource struct {
	path string
	f    *os.File
	r    *bufio.Reader
	off  int64
}

func openSource(path string) (*byteSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrIO, path, err)
	}
	return &byteSource{
		path: path,
		f:    f,
		r:    bufio.NewReaderSize(f, readBufferSize),
	}, nil
}

// readFull fills p or fails with the offset at which input ran out. Every
// short read is a truncation as far as the grammar is concerned; the
// underlying error text is preserved for diagnostics.
func (s *byteSource) readFull(p []byte) error {
	n, err := io.ReadFull(s.r, p)
	s.off += int64(n)
	if err != nil {
		return fmt.Errorf("%w: need %d bytes at offset %d in %s: %v",
			ErrTruncated, len(p), s.off, s.path, err)
	}
	return nil
}

// offset reports the number of bytes consumed so far.
func (s *byteSource) offset() int64 {
	return s.off
}

func (s *byteSource) Close() error {
	if err := s.f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrIO, s.path, err)
	}
	return nil
}
