package instruction

import "github.com/firodj/mipsword/bitstr"

// JType is a jump format word: op | address. Both fields are unsigned.
type JType struct {
	base
}

func newJType(fields []Field) (JType, error) {
	b, err := newBase(FormatJ, fields)
	if err != nil {
		return JType{}, err
	}
	return JType{base: b}, nil
}

func NewJType(op, address int64) (JType, error) {
	fields, err := encodeFields(JLayout, []int64{op, address})
	if err != nil {
		return JType{}, err
	}
	return newJType(fields)
}

func JTypeFromBits(op, address bitstr.Bits) (JType, error) {
	fields, err := bitsFields(JLayout, []bitstr.Bits{op, address}, bitstr.Unsigned)
	if err != nil {
		return JType{}, err
	}
	return newJType(fields)
}

func DecodeJType(hex string) (JType, error) {
	fields, err := decodeFields(JLayout, hex, bitstr.Unsigned)
	if err != nil {
		return JType{}, err
	}
	return newJType(fields)
}

func (j JType) Op() Field      { return j.fields[0] }
func (j JType) Address() Field { return j.fields[1] }
