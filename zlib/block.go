package zlib

// Block emitters (C6): the three DEFLATE block encodings, sharing the
// 3-bit (BFINAL, BTYPE) header described in spec.md §4.6.

func blockHeader(final bool, btype uint32) uint32 {
	h := btype << 1
	if final {
		h |= 1
	}
	return h
}

// maxStoredBlockLen is the largest payload a single stored block can carry:
// LEN is a 16-bit field, so 65535 bytes is the hard ceiling (RFC 1951
// §3.2.4).
const maxStoredBlockLen = 65535

// emitStoredBlock writes data as one or more BTYPE=00 blocks, splitting it
// into chunks of at most maxStoredBlockLen so LEN never wraps. Only the
// last chunk carries final's BFINAL bit; an empty data with final=true
// still emits one empty final block.
func emitStoredBlock(bw *bitWriter, data []byte, final bool) {
	for {
		chunk := data
		last := true
		if len(chunk) > maxStoredBlockLen {
			chunk = chunk[:maxStoredBlockLen]
			last = false
		}
		data = data[len(chunk):]
		emitOneStoredBlock(bw, chunk, final && last)
		if last {
			return
		}
	}
}

// emitOneStoredBlock writes a single BTYPE=00 block: header, byte
// alignment, LEN / ~LEN, then the raw bytes. len(data) must not exceed
// maxStoredBlockLen.
func emitOneStoredBlock(bw *bitWriter, data []byte, final bool) {
	bw.addBits(blockHeader(final, 0), 3)
	bw.flushToByte()
	n := uint16(len(data))
	bw.putUint16LE(n)
	bw.putUint16LE(^n)
	for _, b := range data {
		bw.putByte(b)
	}
}

// emitSyncSentinel writes the empty stored block DEFLATE uses as a SYNC
// flush marker: a non-final stored block of length 0, whose body is just
// the LEN/NLEN pair (spec.md §4.6, "00 00 00 00 FF FF").
func emitSyncSentinel(bw *bitWriter) {
	emitStoredBlock(bw, nil, false)
}

// writeTokens walks tokens against data the way press.Encoder.Encode walks
// (src, matches) in the teacher, emitting each literal byte and match
// through litTable/distTable.
func writeTokens(bw *bitWriter, tokens []match, data []byte, litTable, distTable []fixedEntry) {
	pos := 0
	for _, m := range tokens {
		for i := 0; i < m.Unmatched; i++ {
			e := litTable[data[pos+i]]
			bw.addHuffmanCode(e.code, e.bits)
		}
		pos += m.Unmatched

		if m.Length > 0 {
			sym, extra, extraBits := lengthToSymbol(m.Length)
			e := litTable[sym]
			bw.addHuffmanCode(e.code, e.bits)
			if extraBits > 0 {
				bw.addBits(uint32(extra), uint(extraBits))
			}

			dsym, dextra, dextraBits := distToSymbol(m.Distance)
			de := distTable[dsym]
			bw.addHuffmanCode(de.code, de.bits)
			if dextraBits > 0 {
				bw.addBits(uint32(dextra), uint(dextraBits))
			}
			pos += m.Length
		}
	}
}

// emitFixedBlock writes a BTYPE=01 block using the standard fixed Huffman
// tables (spec.md §4.6). This is the path the teacher's stub fixed-mode
// getter left unimplemented (see spec.md §9, Open Question a); it follows
// the standard fixed-Huffman encoding directly instead.
func emitFixedBlock(bw *bitWriter, tokens []match, data []byte, final bool) {
	bw.addBits(blockHeader(final, 1), 3)
	writeTokens(bw, tokens, data, fixedHuffmanTable[:], fixedDistTable[:])
	eob := fixedHuffmanTable[256]
	bw.addHuffmanCode(eob.code, eob.bits)
}

// dynScratch holds the per-block working tables named in spec.md's data
// model (lit_len_lengths, dist_lengths, tree_*), reused across blocks
// instead of reallocated, per the "shared scratch arrays" design note.
type dynScratch struct {
	litLenLengths [286]uint8
	litLenCodes   [286]uint16
	litLenTable   [286]fixedEntry

	distLengths [30]uint8
	distCodes   [30]uint16
	distTable   [30]fixedEntry

	clLengths [19]uint8
	clCodes   [19]uint16

	hlit, hdist, hclen int

	pendingRLE []codeLenSymbol
}

func (s *dynScratch) reset() {
	s.litLenLengths = [286]uint8{}
	s.distLengths = [30]uint8{}
	s.clLengths = [19]uint8{}
}

// prepare computes the canonical Huffman tables for one dynamic block from
// the tokenizer's literal/length and distance frequency vectors. It returns
// an InvariantViolation if the code-length RLE emitter ever produces a
// meta-symbol outside the 0-18 alphabet, which would otherwise silently
// corrupt the block.
func (s *dynScratch) prepare(litFreq [286]int32, distFreq [30]int32) *Error {
	s.reset()

	if distFreq == ([30]int32{}) {
		// RFC 1951 requires at least one distance code even when no
		// match in the block uses one.
		distFreq[0] = 1
	}

	copy(s.litLenLengths[:], buildLengths(litFreq[:], 15))
	copy(s.distLengths[:], buildLengths(distFreq[:], 15))

	s.hlit = 257
	for i := 285; i >= 257; i-- {
		if s.litLenLengths[i] != 0 {
			s.hlit = i + 1
			break
		}
	}
	s.hdist = 1
	for i := 29; i >= 1; i-- {
		if s.distLengths[i] != 0 {
			s.hdist = i + 1
			break
		}
	}

	litCodes := buildCodes(s.litLenLengths[:], 15)
	copy(s.litLenCodes[:], litCodes)
	distCodes := buildCodes(s.distLengths[:], 15)
	copy(s.distCodes[:], distCodes)

	for i, l := range s.litLenLengths {
		s.litLenTable[i] = fixedEntry{code: s.litLenCodes[i], bits: l}
	}
	for i, l := range s.distLengths {
		s.distTable[i] = fixedEntry{code: s.distCodes[i], bits: l}
	}

	combined := make([]uint8, s.hlit+s.hdist)
	copy(combined, s.litLenLengths[:s.hlit])
	copy(combined[s.hlit:], s.distLengths[:s.hdist])

	rle, clFreq := s.compressCodeLengths(combined)
	for _, sym := range rle {
		if sym.sym > 18 {
			return newError(InvariantViolation, "code-length RLE emitted meta-symbol %d outside the 0-18 alphabet", sym.sym)
		}
	}
	copy(s.clLengths[:], buildLengths(clFreq[:], 7))
	clCodesSlice := buildCodes(s.clLengths[:], 7)
	copy(s.clCodes[:], clCodesSlice)

	s.hclen = 4
	for i := 18; i >= 4; i-- {
		if s.clLengths[codeLengthOrder[i]] != 0 {
			s.hclen = i + 1
			break
		}
	}

	s.pendingRLE = rle
	return nil
}

// compressCodeLengths is a thin wrapper kept so dynScratch owns the whole
// dynamic-table computation; it just delegates to the package-level C4
// implementation.
func (s *dynScratch) compressCodeLengths(combined []uint8) ([]codeLenSymbol, [19]int32) {
	return compressLengths(combined)
}

// emitDynamicBlock writes a BTYPE=10 block: HLIT/HDIST/HCLEN, the
// code-length alphabet's own lengths (permuted), the RLE-compressed
// combined length vector, the token stream, and the end-of-block symbol
// (spec.md §4.6).
func emitDynamicBlock(bw *bitWriter, tokens []match, data []byte, s *dynScratch, final bool) {
	bw.addBits(blockHeader(final, 2), 3)
	bw.addBits(uint32(s.hlit-257), 5)
	bw.addBits(uint32(s.hdist-1), 5)
	bw.addBits(uint32(s.hclen-4), 4)

	for i := 0; i < s.hclen; i++ {
		bw.addBits(uint32(s.clLengths[codeLengthOrder[i]]), 3)
	}

	for _, sym := range s.pendingRLE {
		bw.addHuffmanCode(s.clCodes[sym.sym], s.clLengths[sym.sym])
		if sym.extraBits > 0 {
			bw.addBits(uint32(sym.extra), uint(sym.extraBits))
		}
	}

	writeTokens(bw, tokens, data, s.litLenTable[:], s.distTable[:])

	eob := s.litLenTable[256]
	bw.addHuffmanCode(eob.code, eob.bits)
}
