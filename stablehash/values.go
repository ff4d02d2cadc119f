package stablehash

import "encoding/binary"

// AsInt feeds an integer given as a sign and little-endian magnitude.
// Trailing zero bytes of the magnitude are ignored, so padding does not
// change the hash. Zero writes nothing.
type AsInt struct {
	Negative     bool
	LittleEndian []byte
}

// StableHash implements Hashable.
func (a AsInt) StableHash(seq *SequenceNumber, h Hasher) {
	magnitude := a.LittleEndian
	for len(magnitude) > 0 && magnitude[len(magnitude)-1] == 0 {
		magnitude = magnitude[:len(magnitude)-1]
	}

	if len(magnitude) == 0 {
		return
	}

	payload := make([]byte, len(magnitude)+1)
	copy(payload, magnitude)
	if a.Negative {
		payload[len(magnitude)] = 1
	}

	h.Write(seq, payload)
}

// AsBytes feeds an opaque byte string. An empty string writes nothing.
type AsBytes []byte

// StableHash implements Hashable.
func (a AsBytes) StableHash(seq *SequenceNumber, h Hasher) {
	if len(a) == 0 {
		return
	}

	h.Write(seq, a)
}

// String feeds the UTF-8 bytes of a string.
type String string

// StableHash implements Hashable.
func (s String) StableHash(seq *SequenceNumber, h Hasher) {
	AsBytes(s).StableHash(seq, h)
}

// Uint64 feeds an unsigned native integer.
type Uint64 uint64

// StableHash implements Hashable.
func (u Uint64) StableHash(seq *SequenceNumber, h Hasher) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(u))

	AsInt{LittleEndian: buf[:]}.StableHash(seq, h)
}

// Int64 feeds a signed native integer.
type Int64 int64

// StableHash implements Hashable.
func (i Int64) StableHash(seq *SequenceNumber, h Hasher) {
	magnitude := uint64(i)
	if i < 0 {
		magnitude = ^magnitude + 1
	}

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], magnitude)

	AsInt{Negative: i < 0, LittleEndian: buf[:]}.StableHash(seq, h)
}
