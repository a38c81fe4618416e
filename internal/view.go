package internal

import (
	"encoding/binary"

	"github.com/firodj/mipsword/instruction"
)

type FieldView struct {
	Name  string `json:"name" msgpack:"name"`
	Width int    `json:"width" msgpack:"width"`
	Mode  string `json:"mode" msgpack:"mode"`
	Value int64  `json:"value" msgpack:"value"`
	Bits  string `json:"bits" msgpack:"bits"`
}

// WordView is the wire form of an instruction shared by the HTTP API and
// the repository.
type WordView struct {
	Format string      `json:"format" msgpack:"format"`
	Hex    string      `json:"hex" msgpack:"hex"`
	Binary string      `json:"binary" msgpack:"binary"`
	Value  uint32      `json:"value" msgpack:"value"`
	Memory string      `json:"memory" msgpack:"memory"`
	Fields []FieldView `json:"fields" msgpack:"fields"`
}

func NewFieldViews(instr instruction.Instruction) []FieldView {
	fields := instr.Fields()
	views := make([]FieldView, 0, fields.Len())
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		f := pair.Value
		views = append(views, FieldView{
			Name:  f.Name,
			Width: f.Width,
			Mode:  f.Mode.String(),
			Value: f.Value,
			Bits:  f.Bits.String(),
		})
	}
	return views
}

func NewWordView(instr instruction.Instruction) *WordView {
	return &WordView{
		Format: instr.Format().String(),
		Hex:    instr.Hex(),
		Binary: instr.Word().String(),
		Value:  instr.Uint32(),
		Memory: instruction.MemoryBytes(instr, binary.LittleEndian),
		Fields: NewFieldViews(instr),
	}
}
