package btab

import "testing"

func TestScratchGrowReusesBacking(t *testing.T) {
	var s scratchBuffer
	p1 := s.grow(10)
	if len(p1) != 10 {
		t.Fatalf("grow(10) len = %d", len(p1))
	}
	p2 := s.grow(4)
	if len(p2) != 4 {
		t.Fatalf("grow(4) len = %d", len(p2))
	}
	if &p1[0] != &p2[0] {
		t.Fatalf("small grow reallocated the backing array")
	}
}

func TestScratchGrowDoubles(t *testing.T) {
	var s scratchBuffer
	s.grow(10)
	if cap(s.buf) != 64 {
		t.Fatalf("first grow cap = %d, want the 64 byte floor", cap(s.buf))
	}
	s.grow(65)
	if cap(s.buf) != 128 {
		t.Fatalf("grow(65) cap = %d, want doubled 128", cap(s.buf))
	}
	s.grow(300)
	if cap(s.buf) != 300 {
		t.Fatalf("grow(300) cap = %d, want exact 300", cap(s.buf))
	}
}

func TestScratchGrowZero(t *testing.T) {
	var s scratchBuffer
	if p := s.grow(0); len(p) != 0 {
		t.Fatalf("grow(0) len = %d", len(p))
	}
}
