package stablehash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// SequenceNumber locates a payload within a hashed value.
type SequenceNumber struct {
	rollup   uint64
	children uint64
}

// Root returns the sequence number of a top level value.
func Root() *SequenceNumber {
	return &SequenceNumber{}
}

// NextChild returns the sequence number of the next child field. The first
// call returns child 0, the second child 1 and so on.
func (s *SequenceNumber) NextChild() *SequenceNumber {
	var buf [16]byte

	binary.LittleEndian.PutUint64(buf[:8], s.rollup)
	binary.LittleEndian.PutUint64(buf[8:], s.children)
	s.children++

	return &SequenceNumber{
		rollup: xxhash.Sum64(buf[:]),
	}
}

// Rollup returns the value identifying this position.
func (s *SequenceNumber) Rollup() uint64 {
	return s.rollup
}

// Hasher accumulates tagged payloads.
type Hasher interface {
	Write(seq *SequenceNumber, payload []byte)
}

// Hashable is implemented by values that can feed a Hasher.
type Hashable interface {
	StableHash(seq *SequenceNumber, h Hasher)
}

// Sum hashes v with a fresh XXHasher at the root sequence number.
func Sum(v Hashable) uint64 {
	h := NewXXHasher()
	v.StableHash(Root(), h)

	return h.Sum64()
}
