package zlib

import "hash/adler32"

// adler32Sink is C1: a running Adler-32 checksum over the original input
// bytes, exposing the update/finalize shape spec.md names. The teacher
// reaches for the standard library's hash/crc32 for its gzip trailer
// rather than rolling its own accumulator or importing a third-party
// checksum package (see flate/gzip.go); nothing in the retrieved pack
// implements Adler-32 itself, so the same precedent — standard-library
// hash package over a hand-rolled accumulator — applies here.
type adler32Sink struct {
	h hash32
}

// hash32 is the subset of hash.Hash32 this package needs, named locally
// so adler32.go doesn't have to import "hash" just for the interface.
type hash32 interface {
	Write(p []byte) (int, error)
	Sum32() uint32
}

func newAdler32Sink() adler32Sink {
	return adler32Sink{h: adler32.New()}
}

func (a *adler32Sink) update(b []byte) {
	a.h.Write(b)
}

func (a *adler32Sink) finalize() uint32 {
	return a.h.Sum32()
}
