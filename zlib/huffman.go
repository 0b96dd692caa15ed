package zlib

import "sort"

// buildLengths computes DEFLATE-compliant canonical code lengths for freq,
// bounded by maxBits (15 for the literal/length and distance alphabets, 7
// for the code-length alphabet, per spec.md §4.2). It builds an ordinary
// Huffman tree over the symbols with nonzero frequency, then applies the
// classic length-limiting correction (the same shift-bits-from-the-longest-
// codes technique zlib's trees.c uses in gen_bitlen) so that no code
// exceeds maxBits while the length multiset stays a valid prefix code.
func buildLengths(freq []int32, maxBits int) []uint8 {
	lengths := make([]uint8, len(freq))

	type symFreq struct {
		sym  int
		freq int64
	}
	var order []symFreq
	for sym, f := range freq {
		if f > 0 {
			order = append(order, symFreq{sym, int64(f)})
		}
	}
	if len(order) == 0 {
		return lengths
	}
	if len(order) == 1 {
		lengths[order[0].sym] = 1
		return lengths
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].freq != order[j].freq {
			return order[i].freq < order[j].freq
		}
		return order[i].sym < order[j].sym
	})

	m := len(order)

	// Build the Huffman tree with the standard two-queue method: leaves
	// are already sorted ascending by frequency, and internal nodes are
	// appended to a second queue in the order they are created, which is
	// also monotonically increasing. Picking the smaller of the two
	// queue fronts at each step reproduces a textbook min-heap build in
	// O(m), without needing a heap.
	parent := make([]int, 2*m-1)
	nodeFreq := make([]int64, 2*m-1)
	for i, sf := range order {
		nodeFreq[i] = sf.freq
		parent[i] = -1
	}

	leafPos, internalPos, nextInternal := 0, m, m
	take := func() int {
		if leafPos < m && (internalPos >= nextInternal || nodeFreq[leafPos] <= nodeFreq[internalPos]) {
			idx := leafPos
			leafPos++
			return idx
		}
		idx := internalPos
		internalPos++
		return idx
	}
	for nextInternal < 2*m-1 {
		a := take()
		b := take()
		nodeFreq[nextInternal] = nodeFreq[a] + nodeFreq[b]
		parent[a] = nextInternal
		parent[b] = nextInternal
		nextInternal++
	}

	// Depth of each leaf, unclamped.
	depth := make([]int, 2*m-1)
	for i := 2*m - 3; i >= 0; i-- {
		depth[i] = depth[parent[i]] + 1
	}

	var blCount [16]int // index 0 unused; lengths run 1..maxBits(<=15)
	totalOverflow := 0
	for i := 0; i < m; i++ {
		d := depth[i]
		if d > maxBits {
			totalOverflow += d - maxBits
			d = maxBits
		}
		blCount[d]++
	}

	// Each leaf beyond maxBits was clamped down by (depth-maxBits) levels
	// in aggregate; the classic fix redistributes that deficit two units
	// at a time, matching zlib's gen_bitlen correction loop.
	for totalOverflow > 0 {
		bits := maxBits - 1
		for bits > 0 && blCount[bits] == 0 {
			bits--
		}
		if bits == 0 {
			break
		}
		blCount[bits]--
		blCount[bits+1] += 2
		blCount[maxBits]--
		totalOverflow -= 2
	}

	// Reassign lengths: the least frequent symbols get the longest
	// codes. order[] is sorted ascending by frequency, so we walk it from
	// the front while handing out lengths from maxBits down to 1.
	idx := 0
	for bits := maxBits; bits >= 1; bits-- {
		for n := blCount[bits]; n > 0; n-- {
			lengths[order[idx].sym] = uint8(bits)
			idx++
		}
	}
	return lengths
}

// buildCodes assigns canonical codes from a length vector, following RFC
// 1951 §3.2.2: symbols with the same length receive consecutive codes in
// ascending symbol order, and each length's starting code is derived from
// the count of codes at every shorter length. The returned codes are in
// the natural (most-significant-bit-first) form; bitWriter.addHuffmanCode
// reverses them before packing, per DEFLATE's LSB-first bitstream.
func buildCodes(lengths []uint8, maxBits int) []uint16 {
	var blCount [16]int
	for _, l := range lengths {
		if l > 0 {
			blCount[l]++
		}
	}

	var nextCode [16]int
	code := 0
	for bits := 1; bits <= maxBits; bits++ {
		code = (code + blCount[bits-1]) << 1
		nextCode[bits] = code
	}

	codes := make([]uint16, len(lengths))
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		codes[sym] = uint16(nextCode[l])
		nextCode[l]++
	}
	return codes
}
