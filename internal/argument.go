package internal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/firodj/mipsword/bitstr"
	"github.com/firodj/mipsword/registers"
)

type ArgType string

const (
	ArgNone ArgType = ""
	ArgImm  ArgType = "imm"
	ArgReg  ArgType = "reg"
)

// Argument is one field value as typed by the user: a number in any Go
// integer literal form, or a register name.
type Argument struct {
	Type  ArgType
	Text  string
	Value int64
	Reg   string
}

func ParseArgument(opr string) (*Argument, error) {
	opr = strings.TrimSpace(opr)
	arg := &Argument{Text: opr}

	if strings.HasPrefix(opr, "$") || isRegName(opr) {
		n, ok := registers.Lookup(opr)
		if !ok {
			return nil, &bitstr.PreconditionError{Op: "parse argument", Reason: fmt.Sprintf("unknown register %q", opr)}
		}
		arg.Type = ArgReg
		arg.Reg = registers.Name(n)
		arg.Value = int64(n)
		return arg, nil
	}

	v, err := parseNumber(opr)
	if err != nil {
		return nil, &bitstr.PreconditionError{Op: "parse argument", Reason: fmt.Sprintf("invalid number %q", opr)}
	}
	arg.Type = ArgImm
	arg.Value = v
	return arg, nil
}

// parseNumber reads decimal unless a 0x, 0b or 0o prefix is given; a bare
// leading zero stays decimal.
func parseNumber(s string) (int64, error) {
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X', 'b', 'B', 'o', 'O':
			return strconv.ParseInt(s, 0, 64)
		}
	}
	return strconv.ParseInt(s, 10, 64)
}

func isRegName(opr string) bool {
	if opr == "" {
		return false
	}
	c := opr[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// ParseArguments resolves every operand into its decimal value.
func ParseArguments(oprs []string) ([]int64, error) {
	values := make([]int64, len(oprs))
	for i, opr := range oprs {
		arg, err := ParseArgument(opr)
		if err != nil {
			return nil, err
		}
		values[i] = arg.Value
	}
	return values, nil
}

func (arg *Argument) ValueStr(isDec bool) string {
	ss := ""
	n := arg.Value

	if arg.Value < 0 {
		ss += "-"
		n = -n
	}

	if !isDec {
		ss += fmt.Sprintf("0x%x", n)
	} else {
		ss += fmt.Sprintf("%d", n)
	}

	return ss
}

func (arg *Argument) Str(isDec bool) string {
	switch arg.Type {
	case ArgImm:
		return arg.ValueStr(isDec)
	case ArgReg:
		return "$" + arg.Reg
	}
	return "??"
}
