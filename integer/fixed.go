package integer

import (
	"github.com/holiman/uint256"
)

// Fixed width little-endian integers as produced by ledger clients.
type (
	U64  [8]byte
	U128 [16]byte
	U256 [32]byte
)

// FromU64 interprets n as unsigned. Ledger fields of this width are block
// heights and similar, so no signed variant is provided.
func FromU64(n U64) Int {
	return FromUnsignedBytesLE(n[:])
}

// FromU128 interprets n as unsigned.
func FromU128(n U128) Int {
	return FromUnsignedBytesLE(n[:])
}

// FromUnsignedU256 interprets n as unsigned.
func FromUnsignedU256(n U256) Int {
	return FromUnsignedBytesLE(n[:])
}

// FromSignedU256 interprets n as two's complement.
func FromSignedU256(n U256) Int {
	return FromSignedBytesLE(n[:])
}

// ToSignedU256 returns the two's complement encoding of x. It panics unless
// -2^255 <= x < 2^255.
func (x Int) ToSignedU256() (n U256) {
	bytes := x.SignedBytesLE()
	if len(bytes) > len(n) {
		panic(Error.New("value does not fit into signed U256: %s", x))
	}

	if x.Sign() < 0 {
		for i := range n {
			n[i] = 0xff
		}
	}

	copy(n[:], bytes)

	return n
}

// ToUnsignedU256 returns the magnitude of x. It panics if x is negative or
// x >= 2^256.
func (x Int) ToUnsignedU256() (n U256) {
	negative, bytes := x.BytesLE()
	if negative {
		panic(Error.New("negative value encountered for U256: %s", x))
	}

	if len(bytes) > len(n) {
		panic(Error.New("value does not fit into U256: %s", x))
	}

	copy(n[:], bytes)

	return n
}

// U64Of returns v in the little-endian fixed width form.
func U64Of(v uint64) (n U64) {
	for i := range n {
		n[i] = byte(v >> (8 * i))
	}

	return n
}

// FromUint256 returns the value of an EVM word.
func FromUint256(n *uint256.Int) Int {
	return wrap(n.ToBig())
}

// Uint256 returns x as an EVM word. ok is false if x is negative or does not
// fit into 256 bits.
func (x Int) Uint256() (n *uint256.Int, ok bool) {
	if x.Sign() < 0 {
		return nil, false
	}

	n, overflow := uint256.FromBig(x.big())

	return n, !overflow
}
