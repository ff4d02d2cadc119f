// Package hexbytes provides an immutable byte string with a 0x prefixed hex
// text form.
package hexbytes

import (
	"bytes"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/zeebo/errs"
)

var (
	// Error is the class of errors returned by this package.
	Error = errs.Class("hexbytes")

	// ErrMalformedHex is the class of errors for text that is not valid
	// hex.
	ErrMalformedHex = errs.Class("malformed hex")
)

// Bytes is an immutable byte string. The zero value is empty.
type Bytes struct {
	b []byte
}

// New returns a Bytes holding a copy of b.
func New(b []byte) Bytes {
	return Bytes{b: append([]byte(nil), b...)}
}

// FromAddress returns the 20 bytes of an address.
func FromAddress(a common.Address) Bytes {
	return New(a.Bytes())
}

// Parse reads hex text. The 0x prefix is optional and digits may be in
// either case.
func Parse(s string) (Bytes, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}

	b, err := hexutil.Decode(s)
	if err != nil {
		return Bytes{}, ErrMalformedHex.New("%q: %v", s, err)
	}

	return Bytes{b: b}, nil
}

// String returns "0x" followed by lowercase hex.
func (b Bytes) String() string {
	return hexutil.Encode(b.b)
}

// Len returns the number of bytes.
func (b Bytes) Len() int {
	return len(b.b)
}

// Slice returns a copy of the bytes.
func (b Bytes) Slice() []byte {
	return append([]byte(nil), b.b...)
}

// Equal reports whether b and o hold the same bytes.
func (b Bytes) Equal(o Bytes) bool {
	return bytes.Equal(b.b, o.b)
}

// Compare orders b and o byte-wise. The result is -1, 0 or +1.
func (b Bytes) Compare(o Bytes) int {
	return bytes.Compare(b.b, o.b)
}
