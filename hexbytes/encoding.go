package hexbytes

import (
	"database/sql/driver"
	"encoding/json"
	"io"

	"github.com/calebcase/oops"

	"github.com/calebcase/ledgernum/control"
	"github.com/calebcase/ledgernum/stablehash"
)

// MarshalText implements encoding.TextMarshaler.
func (b Bytes) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bytes) UnmarshalText(text []byte) (err error) {
	*b, err = Parse(string(text))
	return err
}

// MarshalJSON writes b as a JSON string.
func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Bytes) UnmarshalJSON(data []byte) (err error) {
	var s string

	err = json.Unmarshal(data, &s)
	if err != nil {
		return Error.New("expected a hex string: %s", data)
	}

	return b.UnmarshalText([]byte(s))
}

// Value implements driver.Valuer. Bytes are stored as a blob.
func (b Bytes) Value() (driver.Value, error) {
	return b.Slice(), nil
}

// Scan implements sql.Scanner. Blobs are taken as raw bytes and text as hex.
func (b *Bytes) Scan(src interface{}) (err error) {
	switch v := src.(type) {
	case []byte:
		*b = New(v)
		return nil
	case string:
		return b.UnmarshalText([]byte(v))
	case nil:
		*b = Bytes{}
		return nil
	}

	return Error.New("cannot scan %T into Bytes", src)
}

// StableHash implements stablehash.Hashable.
func (b Bytes) StableHash(seq *stablehash.SequenceNumber, h stablehash.Hasher) {
	stablehash.AsBytes(b.b).StableHash(seq, h)
}

var _ stablehash.Hashable = Bytes{}

// Encode writes b as a single control block. Empty bytes use the empty block.
func Encode(ce control.Encoder, b Bytes) (err error) {
	if b.Len() == 0 {
		return Error.Wrap(ce.Empty())
	}

	return Error.Wrap(ce.Data(b.b))
}

// Decode reads bytes written by Encode. It returns io.EOF at the end of the
// stream.
func Decode(cd control.Decoder) (b Bytes, err error) {
	if !cd.Next() {
		if cd.Err() != nil {
			return b, Error.Wrap(cd.Err())
		}

		return b, io.EOF
	}

	switch cd.Type() {
	case control.Empty:
		return Bytes{}, nil
	case control.Null:
		return b, Error.New("unexpected null block")
	}

	data, err := cd.Data()
	if err != nil {
		return b, Error.Wrap(oops.Trace(err))
	}

	return New(data), nil
}
