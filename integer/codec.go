package integer

import (
	"io"
	"math/big"

	"github.com/calebcase/ledgernum/control"
)

// Schema for an integer field in a stream.
type Schema struct {
	// Bits bounds the magnitude of values. Zero is unbounded.
	Bits uint64

	// Signed integers are written zigzag encoded. Unsigned integers are
	// written as their plain magnitude and negative values are rejected.
	Signed bool
}

func (s Schema) check(x Int) (err error) {
	if !s.Signed && x.Sign() < 0 {
		return Error.New("negative value for unsigned schema: %s", x)
	}

	if s.Bits != 0 && x.Bits() > s.Bits {
		return Error.New("value exceeds %d bits: %s", s.Bits, x)
	}

	return nil
}

// Decoder is a decoder.
type Decoder struct {
	schema Schema
	cd     control.Decoder
}

// NewDecoder returns a new decoder.
func NewDecoder(schema Schema, cd control.Decoder) *Decoder {
	return &Decoder{
		schema: schema,
		cd:     cd,
	}
}

// Decode reads the next integer. It returns io.EOF at the end of the stream.
func (d *Decoder) Decode() (x Int, err error) {
	if !d.cd.Next() {
		if d.cd.Err() != nil {
			return x, Error.Wrap(d.cd.Err())
		}

		return x, io.EOF
	}

	data, err := d.cd.Data()
	if err != nil {
		return x, Error.Wrap(err)
	}

	if d.schema.Signed {
		b := &Block{}

		err = b.UnmarshalBinary(data)
		if err != nil {
			return x, err
		}

		x = b.Int()
	} else {
		x = wrap(new(big.Int).SetBytes(data))
	}

	err = d.schema.check(x)
	if err != nil {
		return Int{}, err
	}

	return x, nil
}

// Encoder is an encoder.
type Encoder struct {
	schema Schema
	ce     control.Encoder
}

// NewEncoder returns a new encoder.
func NewEncoder(schema Schema, ce control.Encoder) *Encoder {
	return &Encoder{
		schema: schema,
		ce:     ce,
	}
}

// Encode writes x.
func (e *Encoder) Encode(x Int) (err error) {
	err = e.schema.check(x)
	if err != nil {
		return err
	}

	blk := x.Block()

	data := blk.Value
	if e.schema.Signed {
		data, err = blk.MarshalBinary()
		if err != nil {
			return err
		}
	}

	return Error.Wrap(e.ce.Data(data))
}
