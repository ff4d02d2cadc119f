package stablehash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// XXHasher combines payloads by summing the xxhash64 of each sequence number
// and payload pair (wrapping on overflow).
type XXHasher struct {
	digest *xxhash.Digest
	sum    uint64
}

var _ Hasher = (*XXHasher)(nil)

// NewXXHasher returns an empty hasher.
func NewXXHasher() *XXHasher {
	return &XXHasher{
		digest: xxhash.New(),
	}
}

// Write adds a payload at seq.
func (x *XXHasher) Write(seq *SequenceNumber, payload []byte) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seq.Rollup())

	x.digest.Reset()
	_, _ = x.digest.Write(buf[:])
	_, _ = x.digest.Write(payload)

	x.sum += x.digest.Sum64()
}

// Sum64 returns the combined hash of everything written so far.
func (x *XXHasher) Sum64() uint64 {
	return x.sum
}
