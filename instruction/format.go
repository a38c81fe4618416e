// Package instruction packs and unpacks the three MIPS instruction word
// formats: register (R), immediate (I) and jump (J).
//
//	R: op(6) | rs(5) | rt(5) | rd(5) | shamt(5) | funct(6)
//	I: op(6) | rs(5) | rt(5) | immediate(16)
//	J: op(6) | address(26)
package instruction

import (
	"fmt"
	"strings"

	"github.com/firodj/mipsword/bitstr"
)

// WordBits is the width of every instruction word.
const WordBits = 32

// WordDigits is the number of hex digits of a word.
const WordDigits = WordBits / 4

type Format int

const (
	FormatR Format = iota
	FormatI
	FormatJ
)

func (f Format) String() string {
	switch f {
	case FormatR:
		return "r"
	case FormatI:
		return "i"
	case FormatJ:
		return "j"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat accepts "r", "i", "j" or their "rtype"/"r-type" spellings.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(strings.TrimSuffix(s, "type"), "-")
	switch s {
	case "r":
		return FormatR, nil
	case "i":
		return FormatI, nil
	case "j":
		return FormatJ, nil
	}
	return 0, &bitstr.PreconditionError{Op: "parse format", Reason: fmt.Sprintf("unknown format %q", s)}
}

func (f Format) Layout() Layout {
	switch f {
	case FormatR:
		return RLayout
	case FormatI:
		return ILayout
	case FormatJ:
		return JLayout
	}
	return nil
}

// FieldSpec places a named field inside the word. Offset counts from the
// most significant bit.
type FieldSpec struct {
	Name     string
	Offset   int
	Width    int
	Signable bool
}

type Layout []FieldSpec

var (
	RLayout = Layout{
		{Name: "op", Offset: 0, Width: 6},
		{Name: "rs", Offset: 6, Width: 5},
		{Name: "rt", Offset: 11, Width: 5},
		{Name: "rd", Offset: 16, Width: 5},
		{Name: "shamt", Offset: 21, Width: 5, Signable: true},
		{Name: "funct", Offset: 26, Width: 6},
	}
	ILayout = Layout{
		{Name: "op", Offset: 0, Width: 6},
		{Name: "rs", Offset: 6, Width: 5},
		{Name: "rt", Offset: 11, Width: 5},
		{Name: "immediate", Offset: 16, Width: 16, Signable: true},
	}
	JLayout = Layout{
		{Name: "op", Offset: 0, Width: 6},
		{Name: "address", Offset: 6, Width: 26},
	}
)

func (l Layout) Names() []string {
	names := make([]string, len(l))
	for i, spec := range l {
		names[i] = spec.Name
	}
	return names
}

// Field is one decoded field: the same value as a decimal and as bits.
type Field struct {
	Name  string
	Width int
	Mode  bitstr.Interpretation
	Value int64
	Bits  bitstr.Bits
}

func (f Field) String() string {
	return fmt.Sprintf("%s=%d", f.Name, f.Value)
}
