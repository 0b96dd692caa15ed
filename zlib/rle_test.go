package zlib

import "testing"

// decodeCompressedLengths reverses compressLengths the way a real DEFLATE
// decoder would, so tests can assert round-trip fidelity instead of
// inspecting the symbol stream directly.
func decodeCompressedLengths(t *testing.T, out []codeLenSymbol) []uint8 {
	t.Helper()
	var result []uint8
	var prev uint8
	for _, s := range out {
		switch {
		case s.sym <= 15:
			result = append(result, s.sym)
			prev = s.sym
		case s.sym == 16:
			count := int(s.extra) + 3
			for i := 0; i < count; i++ {
				result = append(result, prev)
			}
		case s.sym == 17:
			count := int(s.extra) + 3
			for i := 0; i < count; i++ {
				result = append(result, 0)
			}
		case s.sym == 18:
			count := int(s.extra) + 11
			for i := 0; i < count; i++ {
				result = append(result, 0)
			}
		default:
			t.Fatalf("unexpected meta-symbol %d", s.sym)
		}
	}
	return result
}

func TestCompressLengthsRoundTrip(t *testing.T) {
	cases := [][]uint8{
		{},
		{1},
		{0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{3, 3, 3, 3, 3, 3, 3, 3},
		{5, 5, 5, 5, 5, 5, 5, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		repeatedLengths(0, 200),
		repeatedLengths(4, 150),
	}
	for i, combined := range cases {
		out, freq := compressLengths(combined)
		got := decodeCompressedLengths(t, out)
		if len(combined) == 0 {
			if len(got) != 0 {
				t.Fatalf("case %d: expected empty output", i)
			}
			continue
		}
		if len(got) != len(combined) {
			t.Fatalf("case %d: decoded length %d, want %d", i, len(got), len(combined))
		}
		for j := range combined {
			if got[j] != combined[j] {
				t.Fatalf("case %d: byte %d = %d, want %d", i, j, got[j], combined[j])
			}
		}
		var sum int32
		for _, f := range freq {
			sum += f
		}
		if int(sum) != len(out) {
			t.Fatalf("case %d: frequency sum %d != emitted symbol count %d", i, sum, len(out))
		}
	}
}

func repeatedLengths(v uint8, n int) []uint8 {
	r := make([]uint8, n)
	for i := range r {
		r[i] = v
	}
	return r
}
