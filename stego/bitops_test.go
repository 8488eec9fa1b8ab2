package stego

import (
	"bytes"
	"testing"
)

func TestBitReaderMSBFirst(t *testing.T) {
	br := NewBitReader([]byte{0xA5}) // 1010 0101
	want := []byte{1, 0, 1, 0, 0, 1, 0, 1}
	for i, w := range want {
		if br.Remaining() == 0 {
			t.Fatalf("reader exhausted at bit %d", i)
		}
		if got := br.ReadBit(); got != w {
			t.Errorf("bit %d: got %d, want %d", i, got, w)
		}
	}
	if br.Remaining() != 0 {
		t.Errorf("remaining = %d after full read", br.Remaining())
	}
}

func TestReadGroupPacksLowOrderFirst(t *testing.T) {
	br := NewBitReader([]byte{0xC0}) // bits 1,1,0,0,...
	v, n := br.ReadGroup(3)
	if n != 3 {
		t.Fatalf("count = %d, want 3", n)
	}
	// First stream bit lands in bit 0.
	if v != 0b011 {
		t.Errorf("value = %03b, want 011", v)
	}
}

func TestReadGroupPartialTail(t *testing.T) {
	br := NewBitReader([]byte{0xFF}) // 8 bits
	for i := 0; i < 2; i++ {
		if _, n := br.ReadGroup(3); n != 3 {
			t.Fatalf("group %d: count = %d", i, n)
		}
	}
	v, n := br.ReadGroup(3)
	if n != 2 {
		t.Errorf("tail count = %d, want 2", n)
	}
	if v != 0b11 {
		t.Errorf("tail value = %02b, want 11", v)
	}
	if _, n := br.ReadGroup(3); n != 0 {
		t.Errorf("exhausted reader yielded %d bits", n)
	}
}

func TestBitPackerRoundTrip(t *testing.T) {
	data := []byte{0x00, 0xFF, 0x5A, 0x01}
	br := NewBitReader(data)
	bp := NewBitPacker()
	for br.Remaining() > 0 {
		bp.WriteBit(br.ReadBit())
	}
	if !bytes.Equal(bp.Bytes(), data) {
		t.Errorf("got % X, want % X", bp.Bytes(), data)
	}
}

func TestBitPackerPartialIsLeftShifted(t *testing.T) {
	bp := NewBitPacker()
	bp.WriteBit(1)
	bp.WriteBit(0)
	bp.WriteBit(1)
	if got := bp.Bytes(); len(got) != 1 || got[0] != 0xA0 {
		t.Errorf("got % X, want A0", got)
	}
	if bp.Len() != 3 {
		t.Errorf("Len = %d, want 3", bp.Len())
	}
}
