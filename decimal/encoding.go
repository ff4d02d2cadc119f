package decimal

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/calebcase/ledgernum/stablehash"
)

// MarshalText implements encoding.TextMarshaler.
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Decimal) UnmarshalText(text []byte) (err error) {
	*d, err = Parse(string(text))
	return err
}

// MarshalJSON writes d as a JSON string.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler. Only JSON strings are accepted.
func (d *Decimal) UnmarshalJSON(data []byte) (err error) {
	var s string

	err = json.Unmarshal(data, &s)
	if err != nil {
		return Error.New("expected a decimal string: %s", data)
	}

	return d.UnmarshalText([]byte(s))
}

// Value implements driver.Valuer. Decimals are stored as decimal text, which
// NUMERIC columns accept without loss.
func (d Decimal) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner.
func (d *Decimal) Scan(src interface{}) (err error) {
	switch v := src.(type) {
	case string:
		return d.UnmarshalText([]byte(v))
	case []byte:
		return d.UnmarshalText(v)
	case int64:
		*d = NewFromInt64(v)
		return nil
	}

	return Error.New("cannot scan %T into Decimal", src)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (d Decimal) MarshalBinary() ([]byte, error) {
	b, err := d.Block()
	if err != nil {
		return nil, err
	}

	return b.MarshalBinary()
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (d *Decimal) UnmarshalBinary(data []byte) (err error) {
	b := &Block{}

	err = b.UnmarshalBinary(data)
	if err != nil {
		return err
	}

	*d, err = b.Decimal()

	return err
}

// StableHash implements stablehash.Hashable.
//
// The exponent goes first on its own child so its encoding can change
// independently; the mantissa uses the parent sequence number. A decimal
// with a zero exponent therefore hashes like the unsigned integer equal to
// its mantissa.
func (d Decimal) StableHash(seq *stablehash.SequenceNumber, h stablehash.Hasher) {
	mantissa, exp := d.Decompose()

	stablehash.Int64(exp).StableHash(seq.NextChild(), h)
	mantissa.StableHash(seq, h)
}

var _ stablehash.Hashable = Decimal{}
