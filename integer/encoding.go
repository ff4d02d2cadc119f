package integer

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/calebcase/ledgernum/stablehash"
)

// MarshalText implements encoding.TextMarshaler.
func (x Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (x *Int) UnmarshalText(text []byte) (err error) {
	*x, err = Parse(string(text))
	return err
}

// MarshalJSON writes x as a JSON string so that no precision is lost to
// float64 decoding.
func (x Int) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.String())
}

// UnmarshalJSON implements json.Unmarshaler. Only JSON strings are accepted.
func (x *Int) UnmarshalJSON(data []byte) (err error) {
	var s string

	err = json.Unmarshal(data, &s)
	if err != nil {
		return Error.New("expected a decimal string: %s", data)
	}

	return x.UnmarshalText([]byte(s))
}

// Value implements driver.Valuer. Integers are stored as decimal text.
func (x Int) Value() (driver.Value, error) {
	return x.String(), nil
}

// Scan implements sql.Scanner.
func (x *Int) Scan(src interface{}) (err error) {
	switch v := src.(type) {
	case string:
		return x.UnmarshalText([]byte(v))
	case []byte:
		return x.UnmarshalText(v)
	case int64:
		*x = NewInt64(v)
		return nil
	}

	return Error.New("cannot scan %T into Int", src)
}

// MarshalBinary implements encoding.BinaryMarshaler using the zigzag Block
// encoding.
func (x Int) MarshalBinary() ([]byte, error) {
	return x.Block().MarshalBinary()
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (x *Int) UnmarshalBinary(data []byte) (err error) {
	b := &Block{}

	err = b.UnmarshalBinary(data)
	if err != nil {
		return err
	}

	*x = b.Int()

	return nil
}

// StableHash implements stablehash.Hashable. The hash depends only on the
// sign and magnitude of x.
func (x Int) StableHash(seq *stablehash.SequenceNumber, h stablehash.Hasher) {
	negative, magnitude := x.BytesLE()

	stablehash.AsInt{
		Negative:     negative,
		LittleEndian: magnitude,
	}.StableHash(seq, h)
}

var _ stablehash.Hashable = Int{}
