package decimal

import (
	"io"

	"github.com/calebcase/ledgernum/control"
)

// Schema represents a configured number format.
type Schema struct {
	// Digits is the largest number of mantissa digits accepted, matching
	// the precision of the column the values end up in. Zero is
	// unbounded.
	Digits uint64
}

func (s Schema) check(d Decimal) (err error) {
	if s.Digits != 0 && d.Digits() > s.Digits {
		return Error.New("%s has %d digits, schema allows %d", d, d.Digits(), s.Digits)
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

// Decode reads the next decimal. It returns io.EOF at the end of the stream.
func (d *Decoder) Decode() (v Decimal, err error) {
	if !d.cd.Next() {
		if d.cd.Err() != nil {
			return v, Error.Wrap(d.cd.Err())
		}

		return v, io.EOF
	}

	data, err := d.cd.Data()
	if err != nil {
		return v, Error.Wrap(err)
	}

	err = v.UnmarshalBinary(data)
	if err != nil {
		return Decimal{}, err
	}

	err = d.schema.check(v)
	if err != nil {
		return Decimal{}, err
	}

	return v, nil
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

// Encode writes v.
func (e *Encoder) Encode(v Decimal) (err error) {
	err = e.schema.check(v)
	if err != nil {
		return err
	}

	data, err := v.MarshalBinary()
	if err != nil {
		return err
	}

	return Error.Wrap(e.ce.Data(data))
}
