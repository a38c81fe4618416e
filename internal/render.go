package internal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/valyala/fasttemplate"
	"github.com/xlab/treeprint"

	"github.com/firodj/mipsword/instruction"
)

var fieldColors = []*color.Color{
	color.New(color.FgCyan),
	color.New(color.FgYellow),
	color.New(color.FgGreen),
	color.New(color.FgMagenta),
	color.New(color.FgBlue),
	color.New(color.FgRed),
}

// ColorBits prints the word with one color per field, fields separated by a
// space.
func ColorBits(instr instruction.Instruction) string {
	parts := make([]string, 0, 6)
	i := 0
	for pair := instr.Fields().Oldest(); pair != nil; pair = pair.Next() {
		parts = append(parts, fieldColors[i%len(fieldColors)].Sprint(pair.Value.Bits))
		i++
	}
	return strings.Join(parts, " ")
}

// Legend names every field with its width, in ColorBits order.
func Legend(instr instruction.Instruction) string {
	parts := make([]string, 0, 6)
	for pair := instr.Fields().Oldest(); pair != nil; pair = pair.Next() {
		parts = append(parts, fmt.Sprintf("%s(%d)", pair.Key, pair.Value.Width))
	}
	return strings.Join(parts, " ")
}

// RenderTemplate expands {{tag}} placeholders: format, hex, bin, value,
// memory, and every field by name plus <name>_bits.
func RenderTemplate(tpl string, instr instruction.Instruction) string {
	m := map[string]interface{}{
		"format": instr.Format().String(),
		"hex":    instr.Hex(),
		"bin":    instr.Word().String(),
		"value":  strconv.FormatUint(uint64(instr.Uint32()), 10),
		"memory": NewWordView(instr).Memory,
	}
	for pair := instr.Fields().Oldest(); pair != nil; pair = pair.Next() {
		m[pair.Key] = strconv.FormatInt(pair.Value.Value, 10)
		m[pair.Key+"_bits"] = pair.Value.Bits.String()
	}
	return fasttemplate.ExecuteString(tpl, "{{", "}}", m)
}

// Tree lists the fields under the word, each with its bit range counted
// from bit 31 down.
func Tree(instr instruction.Instruction) string {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("%s %s", instr.Format(), instr.Hex()))
	for _, spec := range instr.Format().Layout() {
		f, _ := instr.Field(spec.Name)
		hi := instruction.WordBits - 1 - spec.Offset
		lo := hi - spec.Width + 1
		tree.AddMetaNode(f.Bits, fmt.Sprintf("%s[%d:%d] = %d (%s)", spec.Name, hi, lo, f.Value, f.Mode))
	}
	return tree.String()
}
