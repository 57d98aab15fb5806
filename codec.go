package btab

import (
	"encoding/binary"
	"fmt"
)

// readUint decodes a big-endian unsigned integer of width 1, 2, 4 or 8
// bytes. Integer reads use their own fixed buffer so they never disturb the
// string scratch space mid-row.
func (d *decoder) readUint(width int) (uint64, error) {
	if width != 1 && width != 2 && width != 4 && width != 8 {
		return 0, fmt.Errorf("%w: unsupported integer width %d", ErrInternal, width)
	}
	p := d.num[:width]
	if err := d.src.readFull(p); err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return uint64(p[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(p)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(p)), nil
	default:
		return binary.BigEndian.Uint64(p), nil
	}
}

// readTag decodes one single-byte tag value.
func (d *decoder) readTag() (uint8, error) {
	v, err := d.readUint(1)
	return uint8(v), err
}

// readString decodes a u16 length prefix and that many raw bytes into the
// scratch buffer. The returned slice is valid only until the next decode
// step on this session.
func (d *decoder) readString() ([]byte, error) {
	n, err := d.readUint(2)
	if err != nil {
		return nil, err
	}
	p := d.scratch.grow(int(n))
	if n == 0 {
		return p, nil
	}
	if err := d.src.readFull(p); err != nil {
		return nil, err
	}
	return p, nil
}

// readBool decodes one byte; the format does not constrain it to {0,1}, so
// any nonzero value is true.
func (d *decoder) readBool() (bool, error) {
	v, err := d.readUint(1)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}
