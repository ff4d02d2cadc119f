package decimal

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calebcase/ledgernum/control"
	"github.com/calebcase/ledgernum/integer"
	"github.com/calebcase/ledgernum/stablehash"
)

func mustParse(t testing.TB, s string) Decimal {
	t.Helper()

	d, err := Parse(s)
	require.NoError(t, err)

	return d
}

func TestNormalize(t *testing.T) {
	type TC struct {
		mantissa int64
		exp      int32
		str      string
		wantM    string
		wantE    int32
	}

	tcs := []TC{
		{mantissa: 10, exp: -2, str: "0.1", wantM: "1", wantE: -1},
		{mantissa: 132400, exp: 4, str: "1324000000", wantM: "1324", wantE: 6},
		{mantissa: 1900000, exp: -3, str: "1900", wantM: "19", wantE: 2},
		{mantissa: -2500, exp: -4, str: "-0.25", wantM: "-25", wantE: -2},
		{mantissa: 0, exp: 3, str: "0", wantM: "0", wantE: 0},
		{mantissa: 0, exp: -5, str: "0", wantM: "0", wantE: 0},
		{mantissa: 7, exp: 0, str: "7", wantM: "7", wantE: 0},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.str), func(t *testing.T) {
			d := New(integer.NewInt64(tc.mantissa), tc.exp)
			require.Equal(t, tc.str, d.String())

			m, e := d.Decompose()
			require.Equal(t, tc.wantM, m.String())
			require.Equal(t, tc.wantE, e)

			// Normalizing again changes nothing.
			n := d.Normalized()
			m2, e2 := n.Decompose()
			require.True(t, m.Equal(m2))
			require.Equal(t, e, e2)
		})
	}

	t.Run("zero value", func(t *testing.T) {
		var d Decimal

		require.Equal(t, "0", d.String())
		require.True(t, d.IsZero())
		require.True(t, d.Equal(Zero()))
		require.True(t, d.Equal(New(integer.NewInt64(0), 9)))
	})

	t.Run("equal representations", func(t *testing.T) {
		a := New(integer.NewInt64(1), 0)
		b := New(integer.NewInt64(100), -2)
		require.True(t, a.Equal(b))

		ma, ea := a.Decompose()
		mb, eb := b.Decompose()
		require.True(t, ma.Equal(mb))
		require.Equal(t, ea, eb)
	})
}

func TestConstructors(t *testing.T) {
	require.Equal(t, "-42", NewFromInt64(-42).String())
	require.Equal(t, "18446744073709551615", NewFromUint64(math.MaxUint64).String())
	require.Equal(t, "0.1", NewFromFloat64(0.1).String())
	require.Equal(t, "0.0000001", NewFromFloat64(1e-7).String())
	require.Equal(t, "12", FromInt(integer.NewInt64(12)).String())
	require.Equal(t, "1200", FromIntExp(integer.NewInt64(12), integer.NewInt64(2)).String())

	require.Panics(t, func() { NewFromFloat64(math.NaN()) })
	require.Panics(t, func() { NewFromFloat64(math.Inf(1)) })
	require.Panics(t, func() {
		FromIntExp(integer.NewInt64(1), integer.NewInt64(math.MaxInt32+1))
	})
}

func TestParse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		type TC struct {
			in  string
			out string
		}

		for _, tc := range []TC{
			{in: "0", out: "0"},
			{in: "-0", out: "0"},
			{in: "0.000", out: "0"},
			{in: "1.50", out: "1.5"},
			{in: "-12.5", out: "-12.5"},
			{in: "1e3", out: "1000"},
			{in: "1e-18", out: "0.000000000000000001"},
			{in: "123456789012345678901234567890.0001", out: "123456789012345678901234567890.0001"},
		} {
			require.Equal(t, tc.out, mustParse(t, tc.in).String(), tc.in)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, s := range []string{"", "abc", "+1", "1..2", "0x10"} {
			_, err := Parse(s)
			require.Error(t, err, s)
			require.True(t, Error.Has(err), s)
		}
	})

	t.Run("exponent range", func(t *testing.T) {
		for _, s := range []string{
			"10e2147483647",
			"100e2147483646",
			"1e2000000000",
			"1e-2000000000",
			"1e2097152",
			"1e-2097152",
			"10e2097151",
		} {
			d, err := Parse(s)
			require.Error(t, err, s)
			require.True(t, Error.Has(err), s)
			require.True(t, d.IsZero(), s)
		}

		for _, s := range []string{"1e2097151", "1e-2097151", "10e2097150", "0e2147483647"} {
			_, err := Parse(s)
			require.NoError(t, err, s)
		}

		var d Decimal
		require.Error(t, d.UnmarshalText([]byte("10e2147483647")))
		require.Error(t, d.UnmarshalJSON([]byte(`"1e-2000000000"`)))
		require.Error(t, d.Scan("1e2097152"))
	})
}

func TestArithmetic(t *testing.T) {
	a := mustParse(t, "0.1")
	b := mustParse(t, "0.2")

	require.Equal(t, "0.3", a.Add(b).String())
	require.Equal(t, "-0.1", a.Sub(b).String())
	require.Equal(t, "0.02", a.Mul(b).String())
	require.Equal(t, "0.5", a.Div(b).String())
	require.Equal(t, "-0.1", a.Neg().String())

	// Sums that cancel trailing digits come back normalized.
	sum := mustParse(t, "0.25").Add(mustParse(t, "0.75"))
	m, e := sum.Decompose()
	require.Equal(t, "1", m.String())
	require.Equal(t, int32(0), e)

	third := NewFromInt64(1).Div(NewFromInt64(3))
	require.Equal(t, "0.3333333333333333", third.String())

	require.Panics(t, func() { a.Div(Zero()) })

	huge := mustParse(t, "1e2097151")
	require.Equal(t, "1", huge.Mul(mustParse(t, "1e-2097151")).String())
	require.Panics(t, func() { huge.Mul(mustParse(t, "10")) })
	require.Panics(t, func() { huge.Mul(huge) })
	require.Panics(t, func() { mustParse(t, "5e2097151").Add(mustParse(t, "5e2097151")) })

	require.Equal(t, -1, a.Cmp(b))
	require.Equal(t, 1, b.Cmp(a))
	require.Equal(t, 0, a.Cmp(mustParse(t, "0.10")))
	require.Equal(t, -1, a.Neg().Sign())
	require.Equal(t, 0, Zero().Sign())
}

func TestTruncate(t *testing.T) {
	d := mustParse(t, "-12.7")

	i, ok := d.Int64()
	require.True(t, ok)
	require.Equal(t, int64(-12), i)

	_, ok = d.Uint64()
	require.False(t, ok)

	u, ok := mustParse(t, "12.7").Uint64()
	require.True(t, ok)
	require.Equal(t, uint64(12), u)

	_, ok = mustParse(t, "1e30").Int64()
	require.False(t, ok)
}

func TestDigits(t *testing.T) {
	require.Equal(t, uint64(1), mustParse(t, "0.0001").Digits())
	require.Equal(t, uint64(4), mustParse(t, "20.47").Digits())
	require.Equal(t, uint64(1), mustParse(t, "1000").Digits())
	require.Equal(t, uint64(1), Zero().Digits())
}

func TestMarshalUnmarshal(t *testing.T) {
	type TC struct {
		name string
		blk  *Block
		data []byte
	}

	tcs := []TC{
		{
			name: "0",
			blk: &Block{
				Value:     &integer.Block{Value: []byte{0}},
				ScaleSize: scaleNone,
			},
			data: []byte{
				0b0000_0000,
				0b0000_0000,
			},
		},
		{
			name: "0.0001",
			blk: &Block{
				Value:     &integer.Block{Value: []byte{1}},
				Scale:     &integer.Block{Value: []byte{4}, Negative: true},
				ScaleSize: scale6,
			},
			data: []byte{
				0b0000_0010,
				0b0010_0101,
			},
		},
		{
			name: "-0.1",
			blk: &Block{
				Value:     &integer.Block{Value: []byte{1}, Negative: true},
				Scale:     &integer.Block{Value: []byte{1}, Negative: true},
				ScaleSize: scale6,
			},
			data: []byte{
				0b0000_0011,
				0b0000_1101,
			},
		},
		{
			name: "20.47",
			blk: &Block{
				Value:     &integer.Block{Value: []byte{0x07, 0xff}},
				Scale:     &integer.Block{Value: []byte{2}, Negative: true},
				ScaleSize: scale6,
			},
			data: []byte{
				0b0000_1111,
				0b1111_1110,
				0b0001_0101,
			},
		},
		{
			name: "1000",
			blk: &Block{
				Value:     &integer.Block{Value: []byte{1}},
				Scale:     &integer.Block{Value: []byte{3}},
				ScaleSize: scale6,
			},
			data: []byte{
				0b0000_0010,
				0b0001_1001,
			},
		},
		{
			name: "0.000000000000000001",
			blk: &Block{
				Value:     &integer.Block{Value: []byte{1}},
				Scale:     &integer.Block{Value: []byte{18}, Negative: true},
				ScaleSize: scale6,
			},
			data: []byte{
				0b0000_0010,
				0b1001_0101,
			},
		},
		{
			name: "1e-100",
			blk: &Block{
				Value:     &integer.Block{Value: []byte{1}},
				Scale:     &integer.Block{Value: []byte{100}, Negative: true},
				ScaleSize: scale14,
			},
			data: []byte{
				0b0000_0010,
				0b0000_0011,
				0b0010_0110,
			},
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			// These checks ensure that our test case name matches the value.
			d := mustParse(t, tc.name)

			t.Run("block", func(t *testing.T) {
				blk, err := d.Block()
				require.NoError(t, err)
				require.Equal(t, *tc.blk, blk)
			})

			t.Run("marshal", func(t *testing.T) {
				data, err := tc.blk.MarshalBinary()
				require.NoError(t, err)
				require.Equal(t, tc.data, data)
			})

			t.Run("unmarshal", func(t *testing.T) {
				blk := &Block{}
				err := blk.UnmarshalBinary(tc.data)
				require.NoError(t, err)
				require.Equal(t, tc.blk, blk)

				x, err := blk.Decimal()
				require.NoError(t, err)
				require.True(t, d.Equal(x), x.String())
			})

			t.Run("decimal", func(t *testing.T) {
				var x Decimal
				err := x.UnmarshalBinary(tc.data)
				require.NoError(t, err)
				require.True(t, d.Equal(x))

				data, err := x.MarshalBinary()
				require.NoError(t, err)
				require.Equal(t, tc.data, data)
			})
		})
	}

	t.Run("wide scale", func(t *testing.T) {
		for _, exp := range []int32{-(1 << 21) + 1, 1<<21 - 1, 1 << 13, -(1 << 13)} {
			d := New(integer.NewInt64(3), exp)

			data, err := d.MarshalBinary()
			require.NoError(t, err)

			var x Decimal
			require.NoError(t, x.UnmarshalBinary(data))
			require.True(t, d.Equal(x))

			_, e := x.Decompose()
			require.Equal(t, exp, e)
		}
	})

	t.Run("scale too large", func(t *testing.T) {
		for _, exp := range []int32{1 << 21, -(1 << 21), math.MinInt32, math.MaxInt32} {
			require.Panics(t, func() { New(integer.NewInt64(1), exp) }, "%d", exp)

			scale := integer.NewInt64(int64(exp)).Block()
			value := integer.NewInt64(1).Block()
			blk := Block{Value: &value, Scale: &scale, ScaleSize: scale22}

			_, err := blk.MarshalBinary()
			require.Error(t, err)
			require.True(t, Error.Has(err))

			_, err = blk.Decimal()
			require.Error(t, err)
			require.True(t, Error.Has(err))
		}
	})

	t.Run("trailing zeros past the largest scale", func(t *testing.T) {
		// 10 * 10^(2^21 - 1): encodable, but not once normalized.
		data := []byte{0b0001_0100, 0b1111_1111, 0b1111_1111, 0b1111_1011}

		blk := &Block{}
		require.NoError(t, blk.UnmarshalBinary(data))

		var x Decimal
		err := x.UnmarshalBinary(data)
		require.Error(t, err)
		require.True(t, Error.Has(err))
		require.True(t, x.IsZero())
	})

	t.Run("invalid", func(t *testing.T) {
		for _, data := range [][]byte{
			nil,
			{0b0000_0010},
			{0b0000_0010, 0b0000_0100},
			{0b0000_0001, 0b0000_0000},
			{0b0000_0010, 0b0000_0101},
			{0b0000_0011, 0b0010_0110},
		} {
			blk := &Block{}
			require.Error(t, blk.UnmarshalBinary(data), "%08b", data)
		}
	})
}

func TestEncodeDecode(t *testing.T) {
	type TC struct {
		name   string
		schema Schema
		data   []byte
	}

	tcs := []TC{
		{
			name:   "0",
			schema: Schema{},
			data:   []byte{0b0010_0000, 0b0000_0000},
		},
		{
			name:   "0.0001",
			schema: Schema{Digits: 1},
			data:   []byte{0b0010_0010, 0b0010_0101},
		},
		{
			name:   "20.47",
			schema: Schema{Digits: 4},
			data:   []byte{0b0001_1111, 0b1111_1110, 0b0001_0101},
		},
		{
			name:   "1000",
			schema: Schema{Digits: 1},
			data:   []byte{0b0010_0010, 0b0001_1001},
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			d := mustParse(t, tc.name)

			t.Run("encode", func(t *testing.T) {
				enc := NewEncoder(tc.schema, control.NewEncoder(buf))
				err := enc.Encode(d)
				require.NoError(t, err)
				require.Equal(t, tc.data, buf.Bytes())
			})

			t.Run("decode", func(t *testing.T) {
				dec := NewDecoder(tc.schema, control.NewDecoder(buf))
				got, err := dec.Decode()
				require.NoError(t, err)
				require.True(t, d.Equal(got), got.String())
			})
		})
	}

	t.Run("schema", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)

		enc := NewEncoder(Schema{Digits: 3}, control.NewEncoder(buf))
		require.Error(t, enc.Encode(mustParse(t, "20.47")))
		require.NoError(t, enc.Encode(mustParse(t, "204000")))

		wide := NewEncoder(Schema{}, control.NewEncoder(buf))
		require.NoError(t, wide.Encode(mustParse(t, "20.47")))

		dec := NewDecoder(Schema{Digits: 3}, control.NewDecoder(buf))

		d, err := dec.Decode()
		require.NoError(t, err)
		require.Equal(t, "204000", d.String())

		_, err = dec.Decode()
		require.Error(t, err)
		require.True(t, Error.Has(err))
	})

	t.Run("stream", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)

		values := []Decimal{
			mustParse(t, "-5.25"),
			mustParse(t, "1e-300"),
			Zero(),
			mustParse(t, "98765432109876543210987654321"),
		}

		enc := NewEncoder(Schema{}, control.NewEncoder(buf))
		for _, d := range values {
			require.NoError(t, enc.Encode(d))
		}

		dec := NewDecoder(Schema{}, control.NewDecoder(buf))
		for _, want := range values {
			got, err := dec.Decode()
			require.NoError(t, err)
			require.True(t, want.Equal(got), got.String())
		}

		_, err := dec.Decode()
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("corrupt size header", func(t *testing.T) {
		input := []byte{0b_0000_1111, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe}
		dec := NewDecoder(Schema{}, control.NewDecoder(bytes.NewReader(input)))

		require.NotPanics(t, func() {
			_, err := dec.Decode()
			require.Error(t, err)
			require.True(t, Error.Has(err))
		})
	})
}

func TestStableHash(t *testing.T) {
	same := func(t *testing.T, want stablehash.Hashable, d Decimal) {
		t.Helper()
		require.Equal(t, stablehash.Sum(want), stablehash.Sum(d), d.String())
	}

	same(t, stablehash.Uint64(0), NewFromUint64(0))
	same(t, stablehash.Uint64(4), NewFromUint64(4))
	same(t, stablehash.Uint64(1<<21), NewFromUint64(1<<21))
	same(t, stablehash.Int64(-7), NewFromInt64(-7))

	require.Equal(t, uint64(15875633188459135301), stablehash.Sum(mustParse(t, "0.1")))
	require.Equal(t, uint64(12458482401529970540), stablehash.Sum(mustParse(t, "-0.1")))
	require.Equal(t, uint64(138071552702146585), stablehash.Sum(NewFromInt64(100)))

	// Equal values hash equally whatever form they were built from.
	same(t, mustParse(t, "0.1"), New(integer.NewInt64(10), -2))
	same(t, mustParse(t, "1900"), New(integer.NewInt64(1900000), -3))

	require.NotEqual(t, stablehash.Sum(mustParse(t, "0.1")), stablehash.Sum(mustParse(t, "1")))
}
