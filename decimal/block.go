package decimal

import (
	"github.com/shopspring/decimal"

	"github.com/calebcase/ledgernum/integer"
)

// Block is a fixed point base 10 decimal number in wire form.
type Block struct {
	Value     *integer.Block
	Scale     *integer.Block
	ScaleSize uint8
}

// Scale size tags stored in the low two bits of the trailer.
const (
	scaleNone = 0b00
	scale6    = 0b01
	scale14   = 0b10
	scale22   = 0b11
)

// Block returns d in wire form.
func (d Decimal) Block() (b Block, err error) {
	mantissa, exp := d.Decompose()

	value := mantissa.Block()
	scale := integer.NewInt64(int64(exp)).Block()

	b.Value = &value

	if exp == 0 {
		b.ScaleSize = scaleNone

		return b, nil
	}

	z, err := zigzag(scale)
	if err != nil {
		return b, err
	}

	b.Scale = &scale

	switch {
	case z < 1<<6:
		b.ScaleSize = scale6
	case z < 1<<14:
		b.ScaleSize = scale14
	case z < 1<<22:
		b.ScaleSize = scale22
	default:
		return b, Error.New("scale too large: %d", exp)
	}

	return b, nil
}

// Decimal returns the normalized value of the block. It fails if the block
// carries trailing mantissa zeros that push the exponent out of range.
func (b Block) Decimal() (d Decimal, err error) {
	var exp int64
	if b.Scale != nil {
		scale := b.Scale.Int()
		if scale.Bits() > 21 {
			return d, Error.New("scale too large: %s", scale)
		}

		exp = scale.Big().Int64()
	}

	var mantissa integer.Int
	if b.Value != nil {
		mantissa = b.Value.Int()
	}

	return normalize(decimal.NewFromBigInt(mantissa.Big(), int32(exp)))
}

func zigzag(scale integer.Block) (z uint32, err error) {
	data, err := scale.MarshalBinary()
	if err != nil {
		return 0, err
	}

	if len(data) > 3 {
		return 0, Error.New("scale too large")
	}

	for _, v := range data {
		z = z<<8 | uint32(v)
	}

	if z >= 1<<22 {
		return 0, Error.New("scale too large")
	}

	return z, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
//
// The zigzag encoded value is followed by a one to three byte trailer holding
// the zigzag encoded scale with the scale size in the last two bits.
func (b Block) MarshalBinary() (data []byte, err error) {
	if b.Value == nil {
		return nil, Error.New("missing value")
	}

	data, err = b.Value.MarshalBinary()
	if err != nil {
		return nil, err
	}

	if b.ScaleSize == scaleNone {
		return append(data, scaleNone), nil
	}

	if b.Scale == nil {
		return nil, Error.New("missing scale")
	}

	z, err := zigzag(*b.Scale)
	if err != nil {
		return nil, err
	}

	trailer := z<<2 | uint32(b.ScaleSize)

	switch b.ScaleSize {
	case scale6:
		return append(data, byte(trailer)), nil
	case scale14:
		return append(data, byte(trailer>>8), byte(trailer)), nil
	}

	return append(data, byte(trailer>>16), byte(trailer>>8), byte(trailer)), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (b *Block) UnmarshalBinary(data []byte) (err error) {
	if len(data) < 2 {
		return Error.New("short decimal: %d bytes", len(data))
	}

	b.ScaleSize = data[len(data)-1] & 0b0000_0011

	n := 1
	switch b.ScaleSize {
	case scale14:
		n = 2
	case scale22:
		n = 3
	}

	if len(data) < n+1 {
		return Error.New("short decimal: %d bytes", len(data))
	}

	var trailer uint32
	for _, v := range data[len(data)-n:] {
		trailer = trailer<<8 | uint32(v)
	}

	b.Scale = nil

	if b.ScaleSize == scaleNone {
		if trailer != 0 {
			return Error.New("invalid scale trailer: %08b", trailer)
		}
	} else {
		z := trailer >> 2

		var buf []byte
		for z > 0 {
			buf = append([]byte{byte(z)}, buf...)
			z >>= 8
		}
		if len(buf) == 0 {
			buf = []byte{0}
		}

		b.Scale = &integer.Block{}
		err = b.Scale.UnmarshalBinary(buf)
		if err != nil {
			return err
		}
	}

	b.Value = &integer.Block{}

	return b.Value.UnmarshalBinary(data[:len(data)-n])
}
