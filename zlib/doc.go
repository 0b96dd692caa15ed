// Package zlib implements a streaming DEFLATE encoder wrapped in the zlib
// container (RFC 1950 + RFC 1951). It exposes a pull-based state machine:
// the caller owns the input and output buffers and drives the encoder with
// Refill, Eval, Flush and Last, rather than handing it an io.Writer.
//
// The core pieces are an LZ77 tokenizer with a persistent sliding window, a
// canonical Huffman code builder, a bit-level output sink, and three block
// emitters (stored, fixed-Huffman, dynamic-Huffman) sharing one Adler-32
// checksum and one zlib frame.
//
// Only the zlib container is supported. There is no decoder here.
package zlib
