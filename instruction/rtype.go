package instruction

import "github.com/firodj/mipsword/bitstr"

// RType is a register format word: op | rs | rt | rd | shamt | funct.
type RType struct {
	base
}

func newRType(fields []Field) (RType, error) {
	b, err := newBase(FormatR, fields)
	if err != nil {
		return RType{}, err
	}
	return RType{base: b}, nil
}

// NewRType encodes decimal field values. A negative value is stored in two's
// complement at the field's width.
func NewRType(op, rs, rt, rd, shamt, funct int64) (RType, error) {
	fields, err := encodeFields(RLayout, []int64{op, rs, rt, rd, shamt, funct})
	if err != nil {
		return RType{}, err
	}
	return newRType(fields)
}

// RTypeFromBits takes already encoded fields; shamtMode decides how shamt
// reads back as a decimal.
func RTypeFromBits(op, rs, rt, rd, shamt, funct bitstr.Bits, shamtMode bitstr.Interpretation) (RType, error) {
	fields, err := bitsFields(RLayout, []bitstr.Bits{op, rs, rt, rd, shamt, funct}, shamtMode)
	if err != nil {
		return RType{}, err
	}
	return newRType(fields)
}

func DecodeRType(hex string, shamtMode bitstr.Interpretation) (RType, error) {
	fields, err := decodeFields(RLayout, hex, shamtMode)
	if err != nil {
		return RType{}, err
	}
	return newRType(fields)
}

func (r RType) Op() Field    { return r.fields[0] }
func (r RType) Rs() Field    { return r.fields[1] }
func (r RType) Rt() Field    { return r.fields[2] }
func (r RType) Rd() Field    { return r.fields[3] }
func (r RType) Shamt() Field { return r.fields[4] }
func (r RType) Funct() Field { return r.fields[5] }
