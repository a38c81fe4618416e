package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/firodj/mipsword/bitstr"
	"github.com/firodj/mipsword/instruction"
	"github.com/firodj/mipsword/internal"
)

type convFunc func(a *app, arg string) (string, error)

func convLeaf(a *app, name, usage, help string, fs *flag.FlagSet, fn convFunc) *ffcli.Command {
	var longHelp string
	if strings.Contains(usage, "[--]") {
		longHelp = "A negative value would be read as a flag; put -- before it:\n  conv " + name + " -- -3"
	}

	return &ffcli.Command{
		Name:       name,
		ShortUsage: "conv " + name + " " + usage,
		ShortHelp:  help,
		LongHelp:   longHelp,
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			if len(args) == 0 {
				return errors.New("missing value")
			}
			for _, arg := range args {
				out, err := fn(a, arg)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, out)
			}
			return nil
		},
	}
}

func parseValue(a *app, s string) (int64, error) {
	arg, err := internal.ParseArgument(s)
	if err != nil {
		return 0, err
	}
	a.logger.Debugf("%s -> %s", s, arg.Str(true))
	return arg.Value, nil
}

func convCommand(a *app) *ffcli.Command {
	dec2bitsFs := flag.NewFlagSet("dec2bits", flag.ExitOnError)
	width := dec2bitsFs.Int("width", instruction.WordBits, "bit width")

	bits2decFs := flag.NewFlagSet("bits2dec", flag.ExitOnError)
	bitsSigned := bits2decFs.Bool("signed", false, "two's complement")

	dec2hexFs := flag.NewFlagSet("dec2hex", flag.ExitOnError)
	digits := dec2hexFs.Int("len", instruction.WordDigits, "hex digits")

	hex2decFs := flag.NewFlagSet("hex2dec", flag.ExitOnError)
	hexSigned := hex2decFs.Bool("signed", false, "two's complement")

	extFs := flag.NewFlagSet("ext", flag.ExitOnError)
	extLen := extFs.Int("len", instruction.WordBits, "target length")
	extSign := extFs.Bool("sign", false, "replicate the leading bit instead of 0")

	return &ffcli.Command{
		Name:       "conv",
		ShortUsage: "conv <dec2bits|bits2dec|dec2hex|hex2dec|hex2bits|bits2hex|ones|twos|ext> <value> ...",
		ShortHelp:  "number conversions",
		Subcommands: []*ffcli.Command{
			convLeaf(a, "dec2bits", "[-width n] [--] <value>", "decimal to fixed width bits", dec2bitsFs,
				func(a *app, s string) (string, error) {
					v, err := parseValue(a, s)
					if err != nil {
						return "", err
					}
					b, err := bitstr.FromDecimal(v, *width)
					return b.String(), err
				}),
			convLeaf(a, "bits2dec", "[-signed] <bits>", "bits to decimal", bits2decFs,
				func(a *app, s string) (string, error) {
					v, err := bitstr.ToDecimal(bitstr.Bits(s), bitstr.InterpretationOf(*bitsSigned))
					return fmt.Sprint(v), err
				}),
			convLeaf(a, "dec2hex", "[-len n] [--] <value>", "decimal to fixed length hex", dec2hexFs,
				func(a *app, s string) (string, error) {
					v, err := parseValue(a, s)
					if err != nil {
						return "", err
					}
					return bitstr.DecimalToHex(v, *digits)
				}),
			convLeaf(a, "hex2dec", "[-signed] <hex>", "hex to decimal", hex2decFs,
				func(a *app, s string) (string, error) {
					v, err := bitstr.HexToDecimal(s, bitstr.InterpretationOf(*hexSigned))
					return fmt.Sprint(v), err
				}),
			convLeaf(a, "hex2bits", "<hex>", "hex to bits, 4 per digit", flag.NewFlagSet("hex2bits", flag.ExitOnError),
				func(a *app, s string) (string, error) {
					b, err := bitstr.FromHex(s)
					return b.String(), err
				}),
			convLeaf(a, "bits2hex", "<bits>", "bits to hex", flag.NewFlagSet("bits2hex", flag.ExitOnError),
				func(a *app, s string) (string, error) {
					return bitstr.ToHex(bitstr.Bits(s))
				}),
			convLeaf(a, "ones", "<bits>", "one's complement", flag.NewFlagSet("ones", flag.ExitOnError),
				func(a *app, s string) (string, error) {
					b, err := bitstr.Parse(s)
					if err != nil {
						return "", err
					}
					return bitstr.OnesComplement(b).String(), nil
				}),
			convLeaf(a, "twos", "<bits>", "two's complement", flag.NewFlagSet("twos", flag.ExitOnError),
				func(a *app, s string) (string, error) {
					b, err := bitstr.Parse(s)
					if err != nil {
						return "", err
					}
					return bitstr.TwosComplement(b).String(), nil
				}),
			convLeaf(a, "ext", "[-len n] [-sign] <bits>", "zero or sign extend", extFs,
				func(a *app, s string) (string, error) {
					b, err := bitstr.Parse(s)
					if err != nil {
						return "", err
					}
					e, err := bitstr.Extend(b, *extLen, *extSign)
					return e.String(), err
				}),
		},
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
	}
}
