package instruction

import (
	"encoding/binary"

	"github.com/tmthrgd/go-hex"
)

// MemoryBytes renders the word as it is laid out in memory for the given
// byte order, e.g. "20885302" for 02538820 on a little endian target.
func MemoryBytes(instr Instruction, order binary.ByteOrder) string {
	buf := make([]byte, 4)
	order.PutUint32(buf, instr.Uint32())
	return hex.EncodeToString(buf)
}
