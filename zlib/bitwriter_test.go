package zlib

import "testing"

func TestAddBitsPacksLSBFirst(t *testing.T) {
	var bw bitWriter
	bw.addBits(0x5, 3) // 101
	bw.addBits(0x1, 1) // 1
	bw.flushToByte()
	if len(bw.out) != 1 {
		t.Fatalf("expected 1 byte, got %d", len(bw.out))
	}
	// bit 0 of byte = first bit written (LSB-first): 1,0,1,1 -> 0b1101 = 0x0D
	if bw.out[0] != 0x0D {
		t.Fatalf("got %08b, want %08b", bw.out[0], 0x0D)
	}
}

func TestAddBitsCrossesByteBoundary(t *testing.T) {
	var bw bitWriter
	bw.addBits(0xFF, 8)
	bw.addBits(0x01, 1)
	bw.flushToByte()
	if len(bw.out) != 2 {
		t.Fatalf("expected 2 bytes, got %d", len(bw.out))
	}
	if bw.out[0] != 0xFF {
		t.Fatalf("first byte = %02x, want ff", bw.out[0])
	}
	if bw.out[1] != 0x01 {
		t.Fatalf("second byte = %02x, want 01", bw.out[1])
	}
}

func TestReverseBits(t *testing.T) {
	cases := []struct {
		v    uint16
		n    uint8
		want uint16
	}{
		{0b1, 1, 0b1},
		{0b10, 2, 0b01},
		{0b100, 3, 0b001},
		{0b1011, 4, 0b1101},
	}
	for _, c := range cases {
		got := reverseBits(c.v, c.n)
		if got != c.want {
			t.Fatalf("reverseBits(%b, %d) = %b, want %b", c.v, c.n, got, c.want)
		}
	}
}

func TestAddHuffmanCodeReversesBeforePacking(t *testing.T) {
	var bw bitWriter
	// A 3-bit canonical code 0b011 should be packed as its bit-reversal,
	// 0b110, LSB first.
	bw.addHuffmanCode(0b011, 3)
	bw.flushToByte()
	if bw.out[0] != 0b110 {
		t.Fatalf("got %03b, want %03b", bw.out[0], 0b110)
	}
}

func TestPutUint16Endianness(t *testing.T) {
	var bw bitWriter
	bw.putUint16LE(0x1234)
	bw.putUint16BE(0x1234)
	want := []byte{0x34, 0x12, 0x12, 0x34}
	for i, b := range want {
		if bw.out[i] != b {
			t.Fatalf("byte %d = %02x, want %02x", i, bw.out[i], b)
		}
	}
}

func TestFlushToByteIsIdempotent(t *testing.T) {
	var bw bitWriter
	bw.addBits(0x3, 2)
	bw.flushToByte()
	n := len(bw.out)
	bw.flushToByte()
	if len(bw.out) != n {
		t.Fatalf("flushToByte on an already-aligned buffer appended a byte")
	}
}
