package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calebcase/ledgernum/decimal"
	"github.com/calebcase/ledgernum/hexbytes"
	"github.com/calebcase/ledgernum/integer"
	"github.com/calebcase/ledgernum/stablehash"
)

func newIntCmd(a *app) *cobra.Command {
	var le, signed bool

	cmd := &cobra.Command{
		Use:   "int <value>",
		Short: "Show an integer in its fixed width forms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			var x integer.Int

			if le {
				b, err := hexbytes.Parse(args[0])
				if err != nil {
					return err
				}

				if signed {
					x = integer.FromSignedBytesLE(b.Slice())
				} else {
					x = integer.FromUnsignedBytesLE(b.Slice())
				}
			} else {
				x, err = integer.Parse(args[0])
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "value: %s\n", x)
			fmt.Fprintf(out, "bits: %d\n", x.Bits())

			if v, err := x.Uint64(); err == nil {
				fmt.Fprintf(out, "uint64: %d\n", v)
			}

			if x.Sign() >= 0 && x.Bits() <= 256 {
				n := x.ToUnsignedU256()
				fmt.Fprintf(out, "u256: %s\n", hexbytes.New(n[:]))
			}

			if len(x.SignedBytesLE()) <= 32 {
				n := x.ToSignedU256()
				fmt.Fprintf(out, "i256: %s\n", hexbytes.New(n[:]))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&le, "le", false, "read the value as little-endian hex bytes")
	cmd.Flags().BoolVar(&signed, "signed", false, "with --le, read the bytes as two's complement")

	return cmd
}

func newNormalizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <decimal>",
		Short: "Show the canonical form of a decimal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			d, err := decimal.Parse(args[0])
			if err != nil {
				return err
			}

			data, err := d.MarshalBinary()
			if err != nil {
				return err
			}

			mantissa, exp := d.Decompose()

			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "value: %s\n", d)
			fmt.Fprintf(out, "mantissa: %s\n", mantissa)
			fmt.Fprintf(out, "exponent: %d\n", exp)
			fmt.Fprintf(out, "binary: %s\n", hexbytes.New(data))

			return nil
		},
	}
}

func newHexCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hex <bytes>",
		Short: "Show the canonical form of hex bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			b, err := hexbytes.Parse(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", b, b.Len())

			return nil
		},
	}
}

func parseHashable(kind, value string) (stablehash.Hashable, error) {
	switch kind {
	case "int":
		return integer.Parse(value)
	case "decimal":
		return decimal.Parse(value)
	case "hex":
		return hexbytes.Parse(value)
	case "string":
		return stablehash.String(value), nil
	}

	return nil, Error.New("unknown type %q", kind)
}

func newHashCmd(a *app) *cobra.Command {
	var (
		kind   string
		crypto bool
	)

	cmd := &cobra.Command{
		Use:   "hash <value>",
		Short: "Print the stable hash of a value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			v, err := parseHashable(kind, args[0])
			if err != nil {
				return err
			}

			if crypto {
				sum := stablehash.CryptoSum(v)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", hexbytes.New(sum[:]))

				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", stablehash.Sum(v))

			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "type", "decimal", "value type (int, decimal, hex, string)")
	cmd.Flags().BoolVar(&crypto, "crypto", false, "print the 256 bit blake3 based hash instead")

	return cmd
}
