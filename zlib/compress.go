package zlib

import "io"

// defaultBufferSize is the size of the internal input/output buffers
// Compress allocates. It has no bearing on the wire format; stored-mode
// block boundaries are driven by windowBits, not by this constant.
const defaultBufferSize = 32 * 1024

// Compress orchestrates Refill/Eval/Flush/Last to drive an Encoder end to
// end, reading src to exhaustion and writing the zlib stream to dst. It is
// the "convenience compress(input, output, refill_callback, flush_callback)"
// entry point named in spec.md §6.
func Compress(dst io.Writer, src io.Reader, windowBits int, mode Mode, level int) error {
	in := make([]byte, defaultBufferSize)
	out := make([]byte, defaultBufferSize)
	enc := NewEncoder(windowBits, mode, level, in, out)
	return drive(dst, src, in, enc)
}

func drive(dst io.Writer, src io.Reader, in []byte, enc *Encoder) error {
	eof := false

refill:
	for {
		if !eof {
			n, err := src.Read(in)
			if err != nil && err != io.EOF {
				return err
			}
			if n > 0 {
				enc.Refill(n)
			}
			if err == io.EOF {
				eof = true
				enc.Last(true)
				if n == 0 {
					enc.Refill(0)
				}
			}
		}

		for {
			switch enc.Eval() {
			case ResultWait:
				continue refill
			case ResultFlush:
				if n := enc.Contents(); n > 0 {
					if _, err := dst.Write(enc.out.buf[:n]); err != nil {
						return err
					}
					enc.Flush(n)
				}
			case ResultOk:
				if n := enc.Contents(); n > 0 {
					if _, err := dst.Write(enc.out.buf[:n]); err != nil {
						return err
					}
					enc.Flush(n)
				}
				return nil
			case ResultError:
				return enc.Err()
			}
		}
	}
}
