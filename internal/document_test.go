package internal

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firodj/mipsword/bitstr"
	"github.com/firodj/mipsword/instruction"
)

func testLogger(t *testing.T) *log.Logger {
	logger, err := NewLogger(io.Discard, "test", "debug")
	require.NoError(t, err)
	return logger
}

const listing = `
# sample
.base 0x00400000
r 0 s2 s3 s1 0 32     # add s1, s2, s3
i 8 t0 t1 -1
j 2 67108864
x i 2109ffff signed
j 2 "0x100000"
`

func TestLoadListing(t *testing.T) {
	doc := NewDocument(0, testLogger(t))
	require.NoError(t, doc.LoadListing(strings.NewReader(listing)))
	assert.Equal(t, uint32(0x00400000), doc.Base)

	failed := doc.Process()
	assert.Equal(t, 1, failed)

	entries := doc.Entries()
	require.Len(t, entries, 5)

	t.Run("when encoded", func(t *testing.T) {
		e := doc.Get(0x00400000)
		require.NotNil(t, e)
		assert.Equal(t, 4, e.Line)
		assert.Equal(t, "add s1, s2, s3", e.Comment)
		require.NoError(t, e.Err)
		assert.Equal(t, "02538820", e.Instr.Hex())

		e = doc.Get(0x00400004)
		require.NoError(t, e.Err)
		assert.Equal(t, "2109ffff", e.Instr.Hex())
	})

	t.Run("when address is inside a word", func(t *testing.T) {
		e := doc.Get(0x00400006)
		require.NotNil(t, e)
		assert.Equal(t, uint32(0x00400004), e.Address)

		assert.Nil(t, doc.Get(0x003ffffc))
		assert.Nil(t, doc.Get(doc.End()))
		assert.Equal(t, uint32(0x00400014), doc.End())
		assert.Equal(t, uint32(0x100), NewDocument(0x100, testLogger(t)).End())
	})

	t.Run("when address overflows", func(t *testing.T) {
		e := doc.Get(0x00400008)
		assert.ErrorIs(t, e.Err, bitstr.ErrRange)
		assert.Nil(t, e.Instr)
	})

	t.Run("when decoded", func(t *testing.T) {
		e := doc.Get(0x0040000c)
		require.NoError(t, e.Err)
		assert.True(t, e.IsDecode())
		i, ok := e.Instr.(instruction.IType)
		require.True(t, ok)
		assert.Equal(t, int64(-1), i.Immediate().Value)
	})

	t.Run("listing", func(t *testing.T) {
		var buf bytes.Buffer
		doc.WriteListing(&buf, false)
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 5)
		assert.Equal(t, "0x00400000\t02538820\t00000010010100111000100000100000\t; add s1, s2, s3", lines[0])
		assert.True(t, strings.HasPrefix(lines[2], "0x00400008\t????????\t; line 6: address: "))
		assert.Equal(t, "0x00400010\t08100000\t00001000000100000000000000000000", lines[4])
	})
}

func TestLoadListingErrors(t *testing.T) {
	for _, src := range []string{
		"q 1 2",
		"x r",
		"x r 02538820 maybe",
		".base",
		".base zz",
		`r "0 1`,
	} {
		doc := NewDocument(0, testLogger(t))
		assert.Error(t, doc.LoadListing(strings.NewReader(src)), src)
	}
}

const program = `
base: 0x1000
instructions:
  - format: r
    fields: [0, s2, s3, s1, 0, 0x20]
    comment: add
  - format: i
    fields: [8, t0, t1, -1]
  - format: j
    hex: 0bffffff
  - format: r
    hex: 000007c0
    signed: true
`

func TestLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(program), 0644))

	doc, err := LoadDocument(path, testLogger(t))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x1000), doc.Base)
	assert.Equal(t, 0, doc.Process())

	entries := doc.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, uint32(0x1000), entries[0].Address)
	assert.Equal(t, "02538820", entries[0].Instr.Hex())
	assert.Equal(t, "add", entries[0].Comment)
	assert.Equal(t, "2109ffff", entries[1].Instr.Hex())

	j, ok := entries[2].Instr.(instruction.JType)
	require.True(t, ok)
	assert.Equal(t, int64(67108863), j.Address().Value)

	r, ok := entries[3].Instr.(instruction.RType)
	require.True(t, ok)
	assert.Equal(t, int64(-1), r.Shamt().Value)

	_, err = LoadDocument(filepath.Join(t.TempDir(), "missing.txt"), testLogger(t))
	assert.Error(t, err)
}
