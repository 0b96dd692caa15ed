package zlib

// Result is the outcome of one Eval call, per spec.md §4.7 and §7. Flush
// and Wait are cooperative yields, not faults.
type Result int

const (
	// ResultOk means the stream is closed: the zlib trailer has been
	// written and fully drained into the output view.
	ResultOk Result = iota
	// ResultFlush means the output view's budget is exhausted; the
	// caller must drain it with Contents/Flush before calling Eval
	// again.
	ResultFlush
	// ResultWait means the input view is exhausted and no block is
	// pending; the caller must Refill before calling Eval again.
	ResultWait
	// ResultError means the encoder hit a fault described by Err and
	// will not resume.
	ResultError
)

// Mode selects which block encoding the driver uses for this stream, per
// spec.md's tagged mode variants.
type Mode int

const (
	ModeStored Mode = iota
	ModeFixedHuffman
	ModeDynamicHuffman
)

// FlushMode mirrors the caller-visible flush requests from spec.md §4.7.
// Sync, Partial and Full are handled identically at the wire level; Full
// additionally resets the LZ77 dictionary (spec.md §9, Open Question b).
type FlushMode int

const (
	FlushNone FlushMode = iota
	FlushSync
	FlushPartial
	FlushFull
)

// Compression levels, named the way the standard library's compress/flate
// package names them, matching the teacher's own rebalancing of the same
// scale in flate/matchfinder.go.
const (
	BestSpeed          = 1
	DefaultCompression = 6
	BestCompression    = 9
)

type encState int

const (
	stateHeader encState = iota
	stateRead
	stateCheckTrigger
	stateDoFlush
	stateCloseFinal
	stateDone
)

// ioBuffer is a caller-owned byte region with a cursor and a remaining-
// budget counter, per spec.md §3 (input_view / output_view). The encoder
// never allocates it and never reads past cursor+avail (input) or writes
// past cursor+avail (output, where avail doubles as "needed").
type ioBuffer struct {
	buf   []byte
	pos   int
	avail int
}

// Encoder is the pull-based driver (C7). The caller loop is: Refill input,
// call Eval, and react to ResultFlush (drain Contents, then call Flush) or
// ResultWait (Refill) until Eval returns ResultOk or ResultError.
type Encoder struct {
	windowBits int
	mode       Mode

	in  ioBuffer
	out ioBuffer

	bw       bitWriter
	drainPos int

	adler adler32Sink
	tok   *tokenizer

	storedBuf    []byte
	storedFilled int

	scratch *dynScratch

	lastBlock bool
	flushReq  FlushMode

	state       encState
	wroteHeader bool
	done        bool
	err         *Error
}

// NewEncoder constructs an encoder bound to the given caller-owned input
// and output buffers. windowBits is clamped to [8,15] the way the
// teacher's NewMatchFinder clamps its compression level rather than
// erroring. level selects the LZ77 search effort (1-9, see §4 of
// SPEC_FULL.md); it has no effect in ModeStored.
func NewEncoder(windowBits int, mode Mode, level int, input, output []byte) *Encoder {
	if windowBits < 8 {
		windowBits = 8
	}
	if windowBits > 15 {
		windowBits = 15
	}
	e := &Encoder{
		windowBits: windowBits,
		mode:       mode,
		in:         ioBuffer{buf: input},
		out:        ioBuffer{buf: output, avail: len(output)},
		adler:      newAdler32Sink(),
		scratch:    &dynScratch{},
	}
	if mode != ModeStored {
		e.tok = newTokenizer(windowBits, level)
	}
	return e
}

// Reset prepares the encoder to be reused for a new stream, keeping its
// allocated scratch buffers, mirroring every MatchFinder.Reset()/
// Encoder.Reset() pair in the teacher's codecs.
func (e *Encoder) Reset(input, output []byte) {
	e.in = ioBuffer{buf: input}
	e.out = ioBuffer{buf: output, avail: len(output)}
	e.bw = bitWriter{}
	e.drainPos = 0
	e.adler = newAdler32Sink()
	if e.tok != nil {
		e.tok.resetDictionary()
	}
	e.storedBuf = e.storedBuf[:0]
	e.storedFilled = 0
	e.lastBlock = false
	e.flushReq = FlushNone
	e.state = stateHeader
	e.wroteHeader = false
	e.done = false
	e.err = nil
}

// Refill tells the encoder that n fresh bytes are available at the start
// of the input buffer; the read cursor resets to 0 and n is added to the
// available-bytes counter (spec.md §6).
func (e *Encoder) Refill(n int) {
	e.in.pos = 0
	e.in.avail += n
}

// Flush tells the encoder that n bytes of output were consumed by the
// caller; the write cursor resets to 0 and n is added to the output
// budget (spec.md §6).
func (e *Encoder) Flush(n int) {
	if n > e.out.pos {
		e.err = newError(BudgetUnderflow, "flushed %d bytes but only %d were written", n, e.out.pos)
		return
	}
	e.out.pos = 0
	e.out.avail += n
}

// Last marks the stream as ending after the input already queued (and any
// input delivered by the next Refill) is consumed.
func (e *Encoder) Last(final bool) {
	e.lastBlock = final
}

// RequestFlush queues a Sync, Partial or Full flush at the next block
// boundary.
func (e *Encoder) RequestFlush(mode FlushMode) {
	e.flushReq = mode
}

// Contents returns the number of bytes currently written in the output
// view, counted from offset 0.
func (e *Encoder) Contents() int {
	return e.out.pos
}

// Err returns the fault that produced ResultError, or nil.
func (e *Encoder) Err() error {
	if e.err == nil {
		return nil
	}
	return e.err
}

// drain copies as much pending encoder output as fits into the caller's
// output view, respecting its budget. See bitWriter's doc comment for why
// output accumulates internally before being copied out this way.
func (e *Encoder) drain() int {
	pending := len(e.bw.out) - e.drainPos
	if pending <= 0 || e.out.avail <= 0 {
		return 0
	}
	n := pending
	if n > e.out.avail {
		n = e.out.avail
	}
	copy(e.out.buf[e.out.pos:], e.bw.out[e.drainPos:e.drainPos+n])
	e.out.pos += n
	e.out.avail -= n
	e.drainPos += n
	return n
}

func (e *Encoder) hasPending() bool {
	return e.drainPos < len(e.bw.out)
}

// Eval advances the state machine, per spec.md §4.7. It suspends by
// returning ResultFlush (output budget exhausted, pending bytes remain)
// or ResultWait (input exhausted, no flush pending), resuming from the
// same continuation label on the next call.
func (e *Encoder) Eval() Result {
	if e.err != nil {
		return ResultError
	}
	if len(e.out.buf) == 0 {
		e.err = newError(BufferMissing, "output view has zero capacity; the encoder can never drain its header, blocks or trailer")
		return ResultError
	}
	for {
		e.drain()
		if e.out.avail <= 0 && e.hasPending() {
			return ResultFlush
		}
		if e.done {
			return ResultOk
		}

		switch e.state {
		case stateHeader:
			if !e.wroteHeader {
				e.writeZlibHeader()
				e.wroteHeader = true
			}
			e.state = stateRead

		case stateRead:
			if e.in.avail == 0 {
				if e.lastBlock {
					e.state = stateCloseFinal
					continue
				}
				if e.flushReq != FlushNone {
					e.state = stateDoFlush
					continue
				}
				return ResultWait
			}
			e.consumeInput()
			e.state = stateCheckTrigger

		case stateCheckTrigger:
			if e.mode == ModeStored {
				threshold := storedBlockTrigger(e.windowBits)
				if e.storedFilled >= threshold {
					emitStoredBlock(&e.bw, e.storedBuf, false)
					e.storedBuf = e.storedBuf[:0]
					e.storedFilled = 0
				}
			}
			e.state = stateRead

		case stateDoFlush:
			if err := e.closeCurrentBlock(false); err != nil {
				e.err = err
				return ResultError
			}
			if e.flushReq == FlushFull && e.tok != nil {
				e.tok.resetDictionary()
			}
			emitSyncSentinel(&e.bw)
			e.flushReq = FlushNone
			e.state = stateRead

		case stateCloseFinal:
			if err := e.closeCurrentBlock(true); err != nil {
				e.err = err
				return ResultError
			}
			e.bw.flushToByte()
			e.writeTrailer()
			e.state = stateDone

		case stateDone:
			e.done = true
		}
	}
}

// storedBlockTrigger returns the stored-buffer size at which ModeStored
// closes the current block, clamped to maxStoredBlockLen (block.go) so the
// buffer this accumulates in never needs splitting on its own: at
// windowBits=15, 2*(1<<15) is 65536, one byte over the 16-bit LEN field's
// ceiling, so the unclamped heuristic would hand emitStoredBlock an
// oversized chunk every time.
func storedBlockTrigger(windowBits int) int {
	threshold := 2 * (1 << uint(windowBits))
	if threshold > maxStoredBlockLen {
		threshold = maxStoredBlockLen
	}
	return threshold
}

// consumeInput feeds whatever is currently available in the input view to
// the active mode, updating the Adler-32 checksum over exactly the bytes
// consumed, in order (spec.md invariant 2). In ModeStored it only takes as
// many bytes as fit before the stored-block size trigger, leaving the
// remainder in the input view for the next iteration.
func (e *Encoder) consumeInput() {
	data := e.in.buf[e.in.pos : e.in.pos+e.in.avail]

	if e.mode == ModeStored {
		threshold := storedBlockTrigger(e.windowBits)
		capacity := threshold - e.storedFilled
		n := len(data)
		if n > capacity {
			n = capacity
		}
		e.adler.update(data[:n])
		e.storedBuf = append(e.storedBuf, data[:n]...)
		e.storedFilled += n
		e.in.pos += n
		e.in.avail -= n
		return
	}

	e.adler.update(data)
	e.tok.ingest(data)
	e.in.pos += len(data)
	e.in.avail = 0
}

// closeCurrentBlock emits whatever has accumulated since the last block
// boundary. When nothing has accumulated and the stream is ending, it
// still emits a final block: an empty stored block in ModeStored, and
// otherwise a minimal fixed-Huffman block containing only the
// end-of-block symbol, which is what this driver (like zlib itself)
// produces for an empty stream (spec.md E1). It returns an error if
// building the block's tables hit an internal invariant violation.
func (e *Encoder) closeCurrentBlock(final bool) *Error {
	if e.mode == ModeStored {
		if e.storedFilled == 0 {
			if final {
				emitStoredBlock(&e.bw, nil, true)
			}
			return nil
		}
		emitStoredBlock(&e.bw, e.storedBuf, final)
		e.storedBuf = e.storedBuf[:0]
		e.storedFilled = 0
		return nil
	}

	tokens, data, litFreq, distFreq := e.tok.finish()
	if len(tokens) == 0 {
		if !final {
			return nil
		}
		emitFixedBlock(&e.bw, nil, nil, true)
		return nil
	}

	switch e.mode {
	case ModeFixedHuffman:
		emitFixedBlock(&e.bw, tokens, data, final)
	case ModeDynamicHuffman:
		if err := e.scratch.prepare(litFreq, distFreq); err != nil {
			return err
		}
		emitDynamicBlock(&e.bw, tokens, data, e.scratch, final)
	}
	return nil
}

// writeZlibHeader writes the 2-byte zlib header (spec.md §4.7, §6).
func (e *Encoder) writeZlibHeader() {
	cmf := uint16(0x08|((e.windowBits-8)<<4)) << 8
	const flevelFdict = 2 << 6 // FLEVEL=2, FDICT=0
	base := cmf | flevelFdict
	fcheck := uint16(0)
	for (base+fcheck)%31 != 0 {
		fcheck++
	}
	flg := flevelFdict | int(fcheck)
	e.bw.putByte(byte(cmf >> 8))
	e.bw.putByte(byte(flg))
}

// writeTrailer appends the big-endian Adler-32 of the original input
// (spec.md §6).
func (e *Encoder) writeTrailer() {
	sum := e.adler.finalize()
	e.bw.putUint16BE(uint16(sum >> 16))
	e.bw.putUint16BE(uint16(sum))
}
