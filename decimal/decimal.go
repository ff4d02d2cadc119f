package decimal

import (
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zeebo/errs"

	"github.com/calebcase/ledgernum/integer"
)

// Error is the class of errors returned by this package.
var Error = errs.Class("decimal")

// MaxExponent bounds the normalized exponent of every Decimal in both
// directions. It is the largest exponent the binary form can hold.
const MaxExponent = 1<<21 - 1

// Decimal is an exact base 10 number: mantissa * 10^exponent.
//
// All operations return normalized values: trailing zeros of the mantissa
// are folded into the exponent and zero is always 0 * 10^0. Because of this
// two Decimals are Equal exactly when they have the same mantissa and
// exponent. The zero value is zero.
//
// Constructors and arithmetic panic if the normalized exponent of the result
// would fall outside -MaxExponent..MaxExponent. Parse and the decoders
// return an error instead.
type Decimal struct {
	d decimal.Decimal
}

// normalize returns the canonical form of d or an error if its exponent is
// out of range.
func normalize(d decimal.Decimal) (Decimal, error) {
	if d.IsZero() {
		return Zero(), nil
	}

	coefficient := d.Coefficient()
	negative := coefficient.Sign() < 0

	digits := coefficient.Abs(coefficient).Text(10)
	trimmed := strings.TrimRight(digits, "0")
	stripped := int64(len(digits) - len(trimmed))

	exp := int64(d.Exponent()) + stripped
	if exp > MaxExponent || exp < -MaxExponent {
		return Decimal{}, Error.New("exponent out of range: %d", exp)
	}

	mantissa, _ := new(big.Int).SetString(trimmed, 10)
	if negative {
		mantissa.Neg(mantissa)
	}

	return Decimal{d: decimal.NewFromBigInt(mantissa, int32(exp))}, nil
}

// from normalizes d and panics if that is not possible.
func from(d decimal.Decimal) Decimal {
	n, err := normalize(d)
	if err != nil {
		panic(err)
	}

	return n
}

// New returns mantissa * 10^exp. A positive exp makes the value larger.
func New(mantissa integer.Int, exp int32) Decimal {
	return from(decimal.NewFromBigInt(mantissa.Big(), exp))
}

// Zero returns the canonical zero.
func Zero() Decimal {
	return Decimal{}
}

// FromInt returns x as a Decimal.
func FromInt(x integer.Int) Decimal {
	return New(x, 0)
}

// FromIntExp returns mantissa * 10^exp. It panics if exp does not fit in 32
// bits or the normalized exponent exceeds MaxExponent.
func FromIntExp(mantissa, exp integer.Int) Decimal {
	b := exp.Big()
	if !b.IsInt64() || b.Int64() > math.MaxInt32 || b.Int64() < math.MinInt32 {
		panic(Error.New("exponent does not fit in int32: %s", exp))
	}

	return New(mantissa, int32(b.Int64()))
}

// NewFromInt64 returns v as a Decimal.
func NewFromInt64(v int64) Decimal {
	return from(decimal.NewFromInt(v))
}

// NewFromUint64 returns v as a Decimal.
func NewFromUint64(v uint64) Decimal {
	return FromInt(integer.NewUint64(v))
}

// NewFromFloat64 returns the shortest decimal that round trips to f. It
// panics if f is NaN or infinite.
func NewFromFloat64(f float64) Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic(Error.New("cannot represent %v as a decimal", f))
	}

	return from(decimal.NewFromFloat(f))
}

// Parse reads a decimal number such as "-12.5" or "1e18".
func Parse(s string) (d Decimal, err error) {
	if strings.HasPrefix(s, "+") {
		return d, Error.New("invalid decimal: %q", s)
	}

	v, err := decimal.NewFromString(s)
	if err != nil {
		return d, Error.New("invalid decimal: %q: %v", s, err)
	}

	d, err = normalize(v)
	if err != nil {
		return Decimal{}, Error.New("invalid decimal: %q: %v", s, err)
	}

	return d, nil
}

// Decompose returns the mantissa and exponent of d.
func (d Decimal) Decompose() (mantissa integer.Int, exp int32) {
	return integer.FromBig(d.d.Coefficient()), d.d.Exponent()
}

// Normalized returns the canonical form of d.
func (d Decimal) Normalized() Decimal {
	return from(d.d)
}

// Digits returns the number of decimal digits in the mantissa.
func (d Decimal) Digits() uint64 {
	coefficient := d.d.Coefficient()

	return uint64(len(coefficient.Abs(coefficient).Text(10)))
}

// Add returns d+o.
func (d Decimal) Add(o Decimal) Decimal {
	return from(d.d.Add(o.d))
}

// Sub returns d-o.
func (d Decimal) Sub(o Decimal) Decimal {
	return from(d.d.Sub(o.d))
}

// Mul returns d*o. The exponents of d and o are bounded, so their sum always
// fits the 32 bit exponent of the product before it is normalized.
func (d Decimal) Mul(o Decimal) Decimal {
	return from(d.d.Mul(o.d))
}

// Div returns d/o rounded to decimal.DivisionPrecision digits after the
// decimal point. It panics if o is zero.
func (d Decimal) Div(o Decimal) Decimal {
	if o.IsZero() {
		panic(Error.New("cannot divide by zero-valued Decimal"))
	}

	return from(d.d.Div(o.d))
}

// Neg returns -d.
func (d Decimal) Neg() Decimal {
	return Decimal{d: d.d.Neg()}
}

// Cmp compares d and o and returns -1, 0 or +1.
func (d Decimal) Cmp(o Decimal) int {
	return d.d.Cmp(o.d)
}

// Equal reports whether d and o have the same value.
func (d Decimal) Equal(o Decimal) bool {
	return d.d.Equal(o.d)
}

// Sign returns -1, 0 or +1.
func (d Decimal) Sign() int {
	return d.d.Sign()
}

// IsZero reports whether d is zero.
func (d Decimal) IsZero() bool {
	return d.d.IsZero()
}

// Int64 returns the integer part of d (truncated toward zero) if it fits.
func (d Decimal) Int64() (int64, bool) {
	i := d.d.BigInt()
	if !i.IsInt64() {
		return 0, false
	}

	return i.Int64(), true
}

// Uint64 returns the integer part of d (truncated toward zero) if it fits.
func (d Decimal) Uint64() (uint64, bool) {
	i := d.d.BigInt()
	if !i.IsUint64() {
		return 0, false
	}

	return i.Uint64(), true
}

// String returns d in plain decimal notation without an exponent.
func (d Decimal) String() string {
	return d.d.String()
}
