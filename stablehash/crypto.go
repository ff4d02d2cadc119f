package stablehash

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/zeebo/blake3"
)

// CryptoHasher combines payloads by summing the blake3 digest of each
// sequence number and payload pair modulo 2^256. It is slower than XXHasher
// but suitable where collisions must be infeasible to construct.
type CryptoHasher struct {
	buf []byte
	acc uint256.Int
}

var _ Hasher = (*CryptoHasher)(nil)

// NewCryptoHasher returns an empty hasher.
func NewCryptoHasher() *CryptoHasher {
	return &CryptoHasher{}
}

// Write adds a payload at seq.
func (c *CryptoHasher) Write(seq *SequenceNumber, payload []byte) {
	c.buf = binary.LittleEndian.AppendUint64(c.buf[:0], seq.Rollup())
	c.buf = append(c.buf, payload...)

	sum := blake3.Sum256(c.buf)

	var v uint256.Int
	v.SetBytes32(sum[:])
	c.acc.Add(&c.acc, &v)
}

// Sum256 returns the combined hash of everything written so far.
func (c *CryptoHasher) Sum256() [32]byte {
	return c.acc.Bytes32()
}

// CryptoSum hashes v with a fresh CryptoHasher at the root sequence number.
func CryptoSum(v Hashable) [32]byte {
	h := NewCryptoHasher()
	v.StableHash(Root(), h)

	return h.Sum256()
}
