package btab

// scratchBuffer is the session's single reusable decode buffer. It holds at
// most one decoded string at a time; every grow call hands out the same
// backing storage, so slices returned earlier are invalidated.
type scratchBuffer struct {
	buf []byte
}

// grow returns a slice of exactly n bytes backed by the buffer, enlarging
// the buffer when capacity falls short. This is the only place size and
// capacity are reasoned about; callers never do their own arithmetic. The
// u16 string-length field bounds n at 64 KiB.
func (b *scratchBuffer) grow(n int) []byte {
	if cap(b.buf) < n {
		c := 2 * cap(b.buf)
		if c < n {
			c = n
		}
		if c < 64 {
			c = 64
		}
		b.buf = make([]byte, c)
	}
	return b.buf[:n]
}
