package zlib

// codeLenSymbol is one entry of the code-length-alphabet stream produced
// by compressLengths (C4): a meta-symbol in 0..18, plus any extra bits it
// carries.
type codeLenSymbol struct {
	sym       uint8
	extra     uint16
	extraBits uint8
}

// compressLengths condenses the concatenated literal/length and distance
// code-length vectors into the 0-18 meta-alphabet described in spec.md
// §4.4, returning the emitted symbol/extra stream and a frequency vector
// over the 19 header symbols (extras are not counted as frequencies).
//
// The greedy policy never leaves a trailing remainder of 1 or 2 repeats:
// whenever taking the maximum legal repeat count would strand 1 or 2
// leftover copies, the current repeat is shortened by 3 so the remainder
// is at least 3 and can become its own repeat symbol.
func compressLengths(combined []uint8) ([]codeLenSymbol, [19]int32) {
	var out []codeLenSymbol
	var freq [19]int32

	emit := func(sym uint8, extra uint16, extraBits uint8) {
		out = append(out, codeLenSymbol{sym, extra, extraBits})
		freq[sym]++
	}

	n := len(combined)
	for i := 0; i < n; {
		v := combined[i]
		count := 1
		for i+count < n && combined[i+count] == v {
			count++
		}

		if v == 0 {
			remaining := count
			for remaining >= 3 {
				c := remaining
				if c > 138 {
					c = 138
				}
				if c < remaining && remaining-c < 3 {
					c -= 3
				}
				if c <= 10 {
					emit(17, uint16(c-3), 3)
				} else {
					emit(18, uint16(c-11), 7)
				}
				remaining -= c
			}
			for ; remaining > 0; remaining-- {
				emit(0, 0, 0)
			}
		} else {
			emit(v, 0, 0)
			remaining := count - 1
			for remaining >= 3 {
				c := remaining
				if c > 6 {
					c = 6
				}
				if c < remaining && remaining-c < 3 {
					c -= 3
				}
				emit(16, uint16(c-3), 2)
				remaining -= c
			}
			for ; remaining > 0; remaining-- {
				emit(v, 0, 0)
			}
		}

		i += count
	}

	return out, freq
}
