package integer

import (
	"math/big"
)

// Block is a signed integer in sign and magnitude form.
type Block struct {
	Value    []byte
	Negative bool
}

// Block returns x as a Block. Value is the big-endian magnitude; zero is a
// single zero byte.
func (x Int) Block() Block {
	negative, value := x.BytesBE()

	// Note: big.Int encodes zero as an empty byte array, but we
	// desire zero to be an actual zero byte.
	if len(value) == 0 {
		value = []byte{0}
	}

	return Block{
		Value:    value,
		Negative: negative,
	}
}

// Int returns the value of the block.
func (b Block) Int() Int {
	i := new(big.Int).SetBytes(b.Value)
	if b.Negative {
		i.Neg(i)
	}

	return wrap(i)
}

// MarshalBinary implements encoding.BinaryMarshaler.
//
// The magnitude is shifted left one bit and the sign stored in the low bit
// (zigzag), then written big-endian.
func (b Block) MarshalBinary() (data []byte, err error) {
	i := new(big.Int).SetBytes(b.Value)

	i.Lsh(i, 1)
	if b.Negative {
		i.SetBit(i, 0, 1)
	}

	data = i.Bytes()

	// Note: big.Int encodes zero as an empty byte array, but we
	// desire zero to be an actual zero byte.
	if len(data) == 0 {
		data = []byte{0}
	}

	return data, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (b *Block) UnmarshalBinary(data []byte) (err error) {
	if len(data) == 0 {
		return Error.New("empty block")
	}

	i := new(big.Int).SetBytes(data)

	b.Negative = i.Bit(0) == 1
	i.Rsh(i, 1)

	data = i.Bytes()

	if len(data) == 0 {
		data = []byte{0}

		if b.Negative {
			return Error.New("negative zero")
		}
	}

	b.Value = data

	return nil
}
