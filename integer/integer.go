// Package integer provides an immutable arbitrary precision integer for
// ledger values that do not fit native machine integers.
package integer

import (
	"math/big"

	"github.com/zeebo/errs"
)

// Error is the class of errors returned by this package.
var Error = errs.Class("integer")

// Conversion errors returned by Uint64.
var (
	ErrNegative = Error.New("cannot convert negative integer")
	ErrOverflow = Error.New("integer value is too large for type")
)

var zero = new(big.Int)

// Int is a signed integer of unbounded size.
//
// Int values are immutable; every operation returns a new Int. The zero value
// is 0. Compare with Equal or Cmp, not ==.
type Int struct {
	i *big.Int
}

func wrap(i *big.Int) Int {
	return Int{i: i}
}

// big returns the underlying value. It must not be modified.
func (x Int) big() *big.Int {
	if x.i == nil {
		return zero
	}

	return x.i
}

// NewInt64 returns v as an Int.
func NewInt64(v int64) Int {
	return wrap(big.NewInt(v))
}

// NewUint64 returns v as an Int.
func NewUint64(v uint64) Int {
	return wrap(new(big.Int).SetUint64(v))
}

// FromBig returns a copy of i as an Int.
func FromBig(i *big.Int) Int {
	if i == nil {
		return Int{}
	}

	return wrap(new(big.Int).Set(i))
}

// Big returns a copy of x as a *big.Int.
func (x Int) Big() *big.Int {
	return new(big.Int).Set(x.big())
}

// Parse reads a base 10 integer with an optional leading '-'.
func Parse(s string) (x Int, err error) {
	if !isDecimal(s) {
		return x, Error.New("invalid integer: %q", s)
	}

	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return x, Error.New("invalid integer: %q", s)
	}

	return wrap(i), nil
}

func isDecimal(s string) bool {
	if len(s) > 0 && s[0] == '-' {
		s = s[1:]
	}

	if len(s) == 0 {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// FromUnsignedBytesLE interprets b as a little-endian magnitude.
func FromUnsignedBytesLE(b []byte) Int {
	return wrap(new(big.Int).SetBytes(reversed(b)))
}

// FromSignedBytesLE interprets b as a little-endian two's complement number.
// The high bit of the last byte is the sign.
func FromSignedBytesLE(b []byte) Int {
	i := new(big.Int).SetBytes(reversed(b))

	if len(b) > 0 && b[len(b)-1]&0x80 != 0 {
		i.Sub(i, new(big.Int).Lsh(big.NewInt(1), uint(len(b)*8)))
	}

	return wrap(i)
}

// BytesLE returns the sign and little-endian magnitude of x. Zero has an
// empty magnitude.
func (x Int) BytesLE() (negative bool, magnitude []byte) {
	return x.big().Sign() < 0, reversed(x.big().Bytes())
}

// BytesBE returns the sign and big-endian magnitude of x.
func (x Int) BytesBE() (negative bool, magnitude []byte) {
	return x.big().Sign() < 0, x.big().Bytes()
}

// SignedBytesLE returns the shortest little-endian two's complement encoding
// of x. Zero encodes as a single zero byte.
func (x Int) SignedBytesLE() []byte {
	i := x.big()

	// The top bit of the last byte must be free for the sign, so a value
	// whose magnitude (less one, for negatives) has n bits needs n/8+1 bytes.
	t := i
	if i.Sign() < 0 {
		t = new(big.Int).Abs(i)
		t.Sub(t, big.NewInt(1))
	}

	size := t.BitLen()/8 + 1

	u := i
	if i.Sign() < 0 {
		u = new(big.Int).Lsh(big.NewInt(1), uint(size*8))
		u.Add(u, i)
	}

	out := make([]byte, size)
	for j, b := range reversed(u.Bytes()) {
		out[j] = b
	}

	return out
}

// Uint64 converts x to a uint64. It returns ErrNegative for negative values
// and ErrOverflow if the magnitude does not fit in 8 bytes.
func (x Int) Uint64() (uint64, error) {
	if x.big().Sign() < 0 {
		return 0, ErrNegative
	}

	if !x.big().IsUint64() {
		return 0, ErrOverflow
	}

	return x.big().Uint64(), nil
}

// MustUint64 is like Uint64 but panics on error.
func (x Int) MustUint64() uint64 {
	v, err := x.Uint64()
	if err != nil {
		panic(err)
	}

	return v
}

// Sign returns -1, 0 or +1.
func (x Int) Sign() int {
	return x.big().Sign()
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x Int) Cmp(y Int) int {
	return x.big().Cmp(y.big())
}

// Equal reports whether x and y have the same value.
func (x Int) Equal(y Int) bool {
	return x.Cmp(y) == 0
}

// Bits returns the bit length of the magnitude of x.
func (x Int) Bits() uint64 {
	return uint64(x.big().BitLen())
}

// Neg returns -x.
func (x Int) Neg() Int {
	return wrap(new(big.Int).Neg(x.big()))
}

// Add returns x+y.
func (x Int) Add(y Int) Int {
	return wrap(new(big.Int).Add(x.big(), y.big()))
}

// Sub returns x-y.
func (x Int) Sub(y Int) Int {
	return wrap(new(big.Int).Sub(x.big(), y.big()))
}

// Mul returns x*y.
func (x Int) Mul(y Int) Int {
	return wrap(new(big.Int).Mul(x.big(), y.big()))
}

// Div returns x/y truncated toward zero. It panics if y is zero.
func (x Int) Div(y Int) Int {
	if y.Sign() == 0 {
		panic(Error.New("cannot divide by zero-valued Int"))
	}

	return wrap(new(big.Int).Quo(x.big(), y.big()))
}

// Rem returns the remainder of x/y truncated toward zero; the result has the
// sign of x. It panics if y is zero.
func (x Int) Rem(y Int) Int {
	if y.Sign() == 0 {
		panic(Error.New("cannot divide by zero-valued Int"))
	}

	return wrap(new(big.Int).Rem(x.big(), y.big()))
}

// Pow returns x**exp.
func (x Int) Pow(exp uint8) Int {
	return wrap(new(big.Int).Exp(x.big(), big.NewInt(int64(exp)), nil))
}

// String returns the base 10 representation of x.
func (x Int) String() string {
	return x.big().String()
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}

	return out
}
