package instruction

import "github.com/firodj/mipsword/bitstr"

// IType is an immediate format word: op | rs | rt | immediate.
type IType struct {
	base
}

func newIType(fields []Field) (IType, error) {
	b, err := newBase(FormatI, fields)
	if err != nil {
		return IType{}, err
	}
	return IType{base: b}, nil
}

func NewIType(op, rs, rt, immediate int64) (IType, error) {
	fields, err := encodeFields(ILayout, []int64{op, rs, rt, immediate})
	if err != nil {
		return IType{}, err
	}
	return newIType(fields)
}

func ITypeFromBits(op, rs, rt, immediate bitstr.Bits, immMode bitstr.Interpretation) (IType, error) {
	fields, err := bitsFields(ILayout, []bitstr.Bits{op, rs, rt, immediate}, immMode)
	if err != nil {
		return IType{}, err
	}
	return newIType(fields)
}

// DecodeIType unpacks hex; immMode selects a signed or unsigned immediate.
func DecodeIType(hex string, immMode bitstr.Interpretation) (IType, error) {
	fields, err := decodeFields(ILayout, hex, immMode)
	if err != nil {
		return IType{}, err
	}
	return newIType(fields)
}

func (i IType) Op() Field        { return i.fields[0] }
func (i IType) Rs() Field        { return i.fields[1] }
func (i IType) Rt() Field        { return i.fields[2] }
func (i IType) Immediate() Field { return i.fields[3] }
