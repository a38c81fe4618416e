// Package bitstr converts between integers, hex digits and fixed-width strings
// of '0'/'1' characters, most significant bit first.
package bitstr

import (
	"strconv"
	"strings"
)

// MaxWidth is the widest bit string that maps onto an int64.
const MaxWidth = 64

const hexDigits = "0123456789abcdef"

// Bits is a string of '0' and '1', MSB first. Its length is the field width.
type Bits string

func (b Bits) Len() int {
	return len(b)
}

func (b Bits) String() string {
	return string(b)
}

// Interpretation selects how a bit pattern is read back as an integer.
type Interpretation int

const (
	Unsigned Interpretation = iota
	Signed
)

func (m Interpretation) String() string {
	switch m {
	case Unsigned:
		return "unsigned"
	case Signed:
		return "signed"
	}
	return "Interpretation(" + strconv.Itoa(int(m)) + ")"
}

// InterpretationOf maps a signed flag onto an Interpretation.
func InterpretationOf(signed bool) Interpretation {
	if signed {
		return Signed
	}
	return Unsigned
}

// Parse checks s only holds '0' and '1'.
func Parse(s string) (Bits, error) {
	b := Bits(s)
	if err := validate("parse", b); err != nil {
		return "", err
	}
	return b, nil
}

func validate(op string, b Bits) error {
	for i := 0; i < len(b); i++ {
		if b[i] != '0' && b[i] != '1' {
			return precondition(op, "invalid bit %q at %d", b[i], i)
		}
	}
	return nil
}

func checkWidth(op string, width int) error {
	if width < 1 || width > MaxWidth {
		return precondition(op, "width %d outside 1..%d", width, MaxWidth)
	}
	return nil
}

// OnesComplement flips every bit.
func OnesComplement(b Bits) Bits {
	out := make([]byte, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] == '0' {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return Bits(out)
}

// TwosComplement returns OnesComplement(b)+1 wrapped to len(b) bits.
func TwosComplement(b Bits) Bits {
	out := []byte(OnesComplement(b))
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] == '0' {
			out[i] = '1'
			break
		}
		// carry out of the top bit is dropped
		out[i] = '0'
	}
	return Bits(out)
}

// Extend pads b on the left up to length. Zero extension pads with '0',
// sign extension replicates the leftmost bit. It never truncates.
func Extend(b Bits, length int, signExtend bool) (Bits, error) {
	if length < len(b) {
		return "", &RangeError{Value: "0b" + string(b), Width: length}
	}

	pad := "0"
	if signExtend && len(b) > 0 {
		pad = string(b[0])
	}
	return Bits(strings.Repeat(pad, length-len(b))) + b, nil
}

// FromDecimal encodes v at exactly width bits, negatives as two's complement.
func FromDecimal(v int64, width int) (Bits, error) {
	if err := checkWidth("decimal to bits", width); err != nil {
		return "", err
	}

	var magnitude uint64
	if v >= 0 {
		magnitude = uint64(v)
	} else {
		magnitude = uint64(-(v + 1)) + 1
	}

	b, err := Extend(Bits(strconv.FormatUint(magnitude, 2)), width, false)
	if err != nil {
		return "", &RangeError{Value: strconv.FormatInt(v, 10), Width: width}
	}

	if v < 0 {
		b = TwosComplement(b)
	}
	return b, nil
}

// ToDecimal reads b back as an integer. A leading '1' is only negative
// when mode is Signed.
func ToDecimal(b Bits, mode Interpretation) (int64, error) {
	if err := checkWidth("bits to decimal", len(b)); err != nil {
		return 0, err
	}
	if err := validate("bits to decimal", b); err != nil {
		return 0, err
	}

	if mode != Signed || b[0] == '0' {
		u, _ := strconv.ParseUint(string(b), 2, MaxWidth)
		if u > 1<<63-1 {
			return 0, &RangeError{Value: "0b" + string(b), Width: MaxWidth - 1}
		}
		return int64(u), nil
	}

	u, _ := strconv.ParseUint(string(TwosComplement(b)), 2, MaxWidth)
	return -int64(u), nil
}

// FromHex expands every hex digit into four bits.
func FromHex(h string) (Bits, error) {
	var sb strings.Builder
	sb.Grow(len(h) * 4)

	for i := 0; i < len(h); i++ {
		n := strings.IndexByte(hexDigits, lower(h[i]))
		if n < 0 {
			return "", precondition("hex to bits", "invalid hex digit %q at %d", h[i], i)
		}
		nibble := strconv.FormatUint(uint64(n), 2)
		sb.WriteString(strings.Repeat("0", 4-len(nibble)))
		sb.WriteString(nibble)
	}
	return Bits(sb.String()), nil
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'F' {
		return c + ('a' - 'A')
	}
	return c
}

// ToHex groups b into nibbles and renders lowercase digits. len(b) must be
// a multiple of four.
func ToHex(b Bits) (string, error) {
	if len(b)%4 != 0 {
		return "", precondition("bits to hex", "length %d is not a multiple of 4", len(b))
	}
	if err := validate("bits to hex", b); err != nil {
		return "", err
	}

	out := make([]byte, 0, len(b)/4)
	for i := 0; i < len(b); i += 4 {
		n, _ := strconv.ParseUint(string(b[i:i+4]), 2, 8)
		out = append(out, hexDigits[n])
	}
	return string(out), nil
}

// HexToDecimal reads a whole hex string as one integer of 4*len(h) bits.
func HexToDecimal(h string, mode Interpretation) (int64, error) {
	b, err := FromHex(h)
	if err != nil {
		return 0, err
	}
	return ToDecimal(b, mode)
}

// DecimalToHex renders v as digits hex digits (4*digits bits).
func DecimalToHex(v int64, digits int) (string, error) {
	if digits < 1 || digits > MaxWidth/4 {
		return "", precondition("decimal to hex", "%d digit(s) outside 1..%d", digits, MaxWidth/4)
	}
	b, err := FromDecimal(v, digits*4)
	if err != nil {
		return "", err
	}
	return ToHex(b)
}
