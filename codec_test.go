package btab

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestDecoder(t *testing.T, raw []byte) *decoder {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bytes.bin")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	src, err := openSource(path)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	t.Cleanup(func() { src.Close() })
	return &decoder{src: src}
}

func TestReadUintWidths(t *testing.T) {
	cases := []struct {
		name  string
		width int
		raw   []byte
		want  uint64
	}{
		{"u8", 1, []byte{0x2A}, 42},
		{"u16", 2, []byte{0x01, 0x02}, 0x0102},
		{"u32", 4, []byte{0xDE, 0xAD, 0xBE, 0xEF}, 0xDEADBEEF},
		{"u64", 8, []byte{0x01, 0, 0, 0, 0, 0, 0, 0x01}, 1<<56 | 1},
		{"u64-max", 8, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, ^uint64(0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDecoder(t, tc.raw)
			got, err := d.readUint(tc.width)
			if err != nil {
				t.Fatalf("readUint(%d): %v", tc.width, err)
			}
			if got != tc.want {
				t.Fatalf("readUint(%d) = %d, want %d", tc.width, got, tc.want)
			}
		})
	}
}

func TestReadUintRejectsBadWidth(t *testing.T) {
	for _, width := range []int{0, 3, 5, 16} {
		d := newTestDecoder(t, []byte{1, 2, 3, 4, 5, 6, 7, 8})
		if _, err := d.readUint(width); !errors.Is(err, ErrInternal) {
			t.Fatalf("readUint(%d): expected ErrInternal, got %v", width, err)
		}
	}
}

func TestReadUintTruncated(t *testing.T) {
	d := newTestDecoder(t, []byte{1, 2, 3})
	if _, err := d.readUint(8); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestReadTagAndBool(t *testing.T) {
	d := newTestDecoder(t, []byte{0x05, 0x00, 0xFF})
	tag, err := d.readTag()
	if err != nil || tag != 5 {
		t.Fatalf("readTag = %d, %v", tag, err)
	}
	b, err := d.readBool()
	if err != nil || b {
		t.Fatalf("readBool(0x00) = %t, %v", b, err)
	}
	b, err = d.readBool()
	if err != nil || !b {
		t.Fatalf("readBool(0xFF) = %t, %v", b, err)
	}
}

func TestReadStringSequence(t *testing.T) {
	raw := []byte{
		0x00, 0x03, 'a', 'b', 'c',
		0x00, 0x00,
		0x00, 0x02, 'x', 'y',
	}
	d := newTestDecoder(t, raw)

	for i, want := range []string{"abc", "", "xy"} {
		got, err := d.readString()
		if err != nil {
			t.Fatalf("readString #%d: %v", i, err)
		}
		if string(got) != want {
			t.Fatalf("readString #%d = %q, want %q", i, got, want)
		}
		if len(got) != len(want) {
			t.Fatalf("readString #%d len = %d, want %d", i, len(got), len(want))
		}
	}
}

func TestReadStringTruncatedBody(t *testing.T) {
	d := newTestDecoder(t, []byte{0x00, 0x05, 'a', 'b'})
	if _, err := d.readString(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestReadStringTruncatedLength(t *testing.T) {
	d := newTestDecoder(t, []byte{0x00})
	if _, err := d.readString(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}
