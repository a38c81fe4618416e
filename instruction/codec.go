package instruction

import (
	"fmt"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/firodj/mipsword/bitstr"
)

// Instruction is one of RType, IType or JType.
type Instruction interface {
	Format() Format
	// Fields lists every field in layout order.
	Fields() *orderedmap.OrderedMap[string, Field]
	Field(name string) (Field, bool)
	// Word is the whole 32 bit word, MSB first.
	Word() bitstr.Bits
	// Hex is the word as 8 lowercase hex digits.
	Hex() string
	Uint32() uint32
	String() string

	sealed()
}

type base struct {
	format Format
	fields []Field
	word   bitstr.Bits
	hex    string
	value  uint32
}

func (b base) Format() Format { return b.format }

func (b base) Word() bitstr.Bits { return b.word }

func (b base) Hex() string { return b.hex }

func (b base) Uint32() uint32 { return b.value }

func (b base) sealed() {}

func (b base) Fields() *orderedmap.OrderedMap[string, Field] {
	om := orderedmap.New[string, Field]()
	for _, f := range b.fields {
		om.Set(f.Name, f)
	}
	return om
}

func (b base) Field(name string) (Field, bool) {
	for _, f := range b.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (b base) String() string {
	var sb strings.Builder
	sb.WriteString(b.format.String())
	for _, f := range b.fields {
		sb.WriteByte(' ')
		sb.WriteString(f.String())
	}
	fmt.Fprintf(&sb, " [%s]", b.hex)
	return sb.String()
}

func newBase(format Format, fields []Field) (base, error) {
	var sb strings.Builder
	for _, f := range fields {
		sb.WriteString(string(f.Bits))
	}
	word := sb.String()
	if len(word) != WordBits {
		return base{}, &bitstr.PreconditionError{
			Op:     "compose",
			Reason: fmt.Sprintf("word is %d bits, want %d", len(word), WordBits),
		}
	}

	value, err := strconv.ParseUint(word, 2, WordBits)
	if err != nil {
		return base{}, &bitstr.PreconditionError{Op: "compose", Reason: err.Error()}
	}

	return base{
		format: format,
		fields: fields,
		word:   bitstr.Bits(word),
		hex:    fmt.Sprintf("%0*x", WordDigits, value),
		value:  uint32(value),
	}, nil
}

func modeOf(v int64) bitstr.Interpretation {
	if v < 0 {
		return bitstr.Signed
	}
	return bitstr.Unsigned
}

func arity(op string, l Layout, n int) error {
	if n != len(l) {
		return &bitstr.PreconditionError{
			Op:     op,
			Reason: fmt.Sprintf("got %d field(s), want %d (%s)", n, len(l), strings.Join(l.Names(), ", ")),
		}
	}
	return nil
}

func encodeFields(l Layout, values []int64) ([]Field, error) {
	if err := arity("encode", l, len(values)); err != nil {
		return nil, err
	}

	fields := make([]Field, len(l))
	for i, spec := range l {
		b, err := bitstr.FromDecimal(values[i], spec.Width)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Name, err)
		}
		fields[i] = Field{
			Name:  spec.Name,
			Width: spec.Width,
			Mode:  modeOf(values[i]),
			Value: values[i],
			Bits:  b,
		}
	}
	return fields, nil
}

func bitsFields(l Layout, bits []bitstr.Bits, mode bitstr.Interpretation) ([]Field, error) {
	if err := arity("from bits", l, len(bits)); err != nil {
		return nil, err
	}

	fields := make([]Field, len(l))
	for i, spec := range l {
		if len(bits[i]) != spec.Width {
			return nil, fmt.Errorf("%s: %w", spec.Name, &bitstr.PreconditionError{
				Op:     "from bits",
				Reason: fmt.Sprintf("got %d bit(s), want %d", len(bits[i]), spec.Width),
			})
		}

		m := bitstr.Unsigned
		if spec.Signable {
			m = mode
		}
		v, err := bitstr.ToDecimal(bits[i], m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Name, err)
		}
		fields[i] = Field{
			Name:  spec.Name,
			Width: spec.Width,
			Mode:  m,
			Value: v,
			Bits:  bits[i],
		}
	}
	return fields, nil
}

func decodeFields(l Layout, hex string, mode bitstr.Interpretation) ([]Field, error) {
	if len(hex) != WordDigits {
		return nil, &bitstr.PreconditionError{
			Op:     "decode",
			Reason: fmt.Sprintf("word %q is not %d hex digits", hex, WordDigits),
		}
	}

	word, err := bitstr.FromHex(hex)
	if err != nil {
		return nil, err
	}

	bits := make([]bitstr.Bits, len(l))
	for i, spec := range l {
		bits[i] = word[spec.Offset : spec.Offset+spec.Width]
	}
	return bitsFields(l, bits, mode)
}

// Encode builds an instruction of the given format from decimal field values
// in layout order.
func Encode(format Format, values []int64) (Instruction, error) {
	l := format.Layout()
	if l == nil {
		return nil, fmt.Errorf("encode: unknown format %v", format)
	}
	if err := arity("encode "+format.String(), l, len(values)); err != nil {
		return nil, err
	}

	var (
		instr Instruction
		err   error
	)
	switch format {
	case FormatR:
		instr, err = NewRType(values[0], values[1], values[2], values[3], values[4], values[5])
	case FormatI:
		instr, err = NewIType(values[0], values[1], values[2], values[3])
	default:
		instr, err = NewJType(values[0], values[1])
	}
	if err != nil {
		return nil, err
	}
	return instr, nil
}

// FromBits builds an instruction from pre-encoded fields in layout order.
// mode applies to the format's signable field only.
func FromBits(format Format, bits []bitstr.Bits, mode bitstr.Interpretation) (Instruction, error) {
	l := format.Layout()
	if l == nil {
		return nil, fmt.Errorf("from bits: unknown format %v", format)
	}
	if err := arity("from bits "+format.String(), l, len(bits)); err != nil {
		return nil, err
	}

	var (
		instr Instruction
		err   error
	)
	switch format {
	case FormatR:
		instr, err = RTypeFromBits(bits[0], bits[1], bits[2], bits[3], bits[4], bits[5], mode)
	case FormatI:
		instr, err = ITypeFromBits(bits[0], bits[1], bits[2], bits[3], mode)
	default:
		instr, err = JTypeFromBits(bits[0], bits[1])
	}
	if err != nil {
		return nil, err
	}
	return instr, nil
}

// Decode unpacks an 8 digit hex word. mode applies to the format's signable
// field only; the J format has none.
func Decode(format Format, hex string, mode bitstr.Interpretation) (Instruction, error) {
	var (
		instr Instruction
		err   error
	)
	switch format {
	case FormatR:
		instr, err = DecodeRType(hex, mode)
	case FormatI:
		instr, err = DecodeIType(hex, mode)
	case FormatJ:
		instr, err = DecodeJType(hex)
	default:
		return nil, fmt.Errorf("decode: unknown format %v", format)
	}
	if err != nil {
		return nil, err
	}
	return instr, nil
}
