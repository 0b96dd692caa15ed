package zlib

// Static DEFLATE tables (RFC 1951 §3.2.5). These are computed once at
// package init time from the base/extra-bits tables rather than hand
// transcribed as 259- and 512-entry constants, which is how the teacher
// generates its lookup tables (see flate/matchfinder.go's hashSize/hashMask
// constants computed from hashBits) rather than pasting raw numbers.

const (
	minMatchLength = 3
	maxMatchLength = 258
)

// extraLBits and baseLength describe the 29 length codes (257..285).
var extraLBits = [29]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

var baseLength = [29]int{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
	35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
}

// extraDBits and baseDist describe the 30 distance codes.
var extraDBits = [30]uint8{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
	7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

var baseDist = [30]int{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
	257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

// lengthCodes[length] is the length-code index (0..28) for a match length
// in [3,258], indexed directly since the whole range fits one small table.
var lengthCodes [259]uint8

// distCodes[d] is the distance-code index (0..29) for d in [0,255], a
// direct index over distance-1 (zlib's own dist_code table is likewise
// indexed by distance-1, which keeps the largest valid distance, 32768,
// from overflowing a 9-bit bucket). Distances of 257 and up are resolved
// by distToSymbol with a second small table bucketed by (d-1)>>7.
var distCodes [256]uint8

// distCodesHigh[(d-1)>>7] is the distance-code index for d-1 >= 256, i.e.
// distances of 257 and up, bucketed in groups of 128.
var distCodesHigh [256]uint8

// codeLengthOrder is the permutation in which code-length-alphabet lengths
// are written in a dynamic block header (spec.md §4.6 step 2).
var codeLengthOrder = [19]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// fixedEntry is one row of the fixed-Huffman literal/length table.
type fixedEntry struct {
	code uint16
	bits uint8
}

// fixedHuffmanTable[sym] gives the fixed-Huffman code and bit length for
// literal/length symbol sym (0..287), per spec.md §4.6.
var fixedHuffmanTable [288]fixedEntry

// fixedDistTable[sym] gives the fixed 5-bit distance code (always just the
// symbol index itself, per spec.md §4.6).
var fixedDistTable [30]fixedEntry

func init() {
	initLengthCodes()
	initDistCodes()
	initFixedHuffman()
}

func initLengthCodes() {
	code := 0
	for length := minMatchLength; length <= maxMatchLength; length++ {
		for code < len(baseLength)-1 && length >= baseLength[code+1] {
			code++
		}
		lengthCodes[length] = uint8(code)
	}
}

func initDistCodes() {
	code := 0
	for d := 1; d <= 256; d++ {
		for code < len(baseDist)-1 && d >= baseDist[code+1] {
			code++
		}
		distCodes[d-1] = uint8(code)
	}
	code = 0
	for bucket := 0; bucket < 256; bucket++ {
		// bucket represents (d-1)>>7 for d-1 in [bucket*128, bucket*128+127];
		// use the bucket's smallest distance to pick the code. This only
		// gives the right answer because every DEFLATE distance code past
		// 256 spans at least 128 values, so every distance sharing a
		// bucket shares a code too.
		d := bucket<<7 + 1
		for code < len(baseDist)-1 && d >= baseDist[code+1] {
			code++
		}
		distCodesHigh[bucket] = uint8(code)
	}
}

// lengthToSymbol returns the literal/length alphabet symbol (257..285) and
// the extra-bits value/width for a match length in [3,258].
func lengthToSymbol(length int) (sym int, extra, extraBits int) {
	idx := lengthCodes[length]
	sym = 257 + int(idx)
	extra = length - baseLength[idx]
	extraBits = int(extraLBits[idx])
	return
}

// distToSymbol returns the distance alphabet symbol (0..29) and the
// extra-bits value/width for a match distance in [1,32768].
func distToSymbol(dist int) (sym int, extra, extraBits int) {
	var idx uint8
	if dist <= 256 {
		idx = distCodes[dist-1]
	} else {
		idx = distCodesHigh[(dist-1)>>7]
	}
	sym = int(idx)
	extra = dist - baseDist[idx]
	extraBits = int(extraDBits[idx])
	return
}

func initFixedHuffman() {
	for sym := 0; sym <= 143; sym++ {
		fixedHuffmanTable[sym] = fixedEntry{code: uint16(48 + sym), bits: 8}
	}
	for sym := 144; sym <= 255; sym++ {
		fixedHuffmanTable[sym] = fixedEntry{code: uint16(400 + sym - 144), bits: 9}
	}
	for sym := 256; sym <= 279; sym++ {
		fixedHuffmanTable[sym] = fixedEntry{code: uint16(sym - 256), bits: 7}
	}
	for sym := 280; sym <= 287; sym++ {
		fixedHuffmanTable[sym] = fixedEntry{code: uint16(192 + sym - 280), bits: 8}
	}
	for sym := 0; sym < 30; sym++ {
		fixedDistTable[sym] = fixedEntry{code: uint16(sym), bits: 5}
	}
}
