// Package decimal provides an exact base 10 number for ledger amounts.
//
// A Decimal is mantissa * 10^exponent with an unbounded mantissa and an
// exponent of at most MaxExponent (2^21 - 1) in magnitude. Values are kept
// normalized: trailing zeros of the mantissa move into the exponent, so 1.20
// is 12e-1, 1200 is 12e2 and zero is always 0e0. Two Decimals are equal
// exactly when their mantissas and exponents are.
//
// Arithmetic is exact except for Div, which rounds to 16 digits after the
// decimal point. Dividing by zero panics, as does a result whose exponent
// leaves the bounded range. Parse reports such input as an error.
//
// Binary Form
//
// MarshalBinary writes the zigzag mantissa (big-endian magnitude shifted left
// one bit with the sign in the low bit) followed by a trailer holding the
// zigzag exponent. The low two bits of the final byte give the trailer
// length:
//
//  00  exponent is zero, the trailer is the single byte 0x00
//  01  one byte trailer, |exponent| < 2^5
//  10  two byte trailer, |exponent| < 2^13
//  11  three byte trailer, |exponent| < 2^21
//
// This is why the exponent is bounded. A reader takes the last byte, learns
// the trailer length from it, and treats everything before the trailer as
// the mantissa.
//
// Some encodings:
//
//  value      mantissa  exponent  bytes
//  0          0         0         00 00
//  1000       1         3         02 19
//  -0.1       -1        -1        03 0d
//  0.0001     1         -4        02 25
//  20.47      2047      -2        0f fe 15
//  1e-18      1         -18       02 95
//  1e-100     1         -100      02 03 26
//
// Streams of decimals are framed with the control package by Encoder and
// Decoder.
package decimal
