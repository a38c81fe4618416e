package internal

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firodj/mipsword/instruction"
)

func TestRender(t *testing.T) {
	color.NoColor = true

	r, err := instruction.NewRType(0, 18, 19, 17, 0, 32)
	require.NoError(t, err)

	assert.Equal(t, "000000 10010 10011 10001 00000 100000", ColorBits(r))
	assert.Equal(t, "op(6) rs(5) rt(5) rd(5) shamt(5) funct(6)", Legend(r))

	j, err := instruction.NewJType(2, 1024)
	require.NoError(t, err)
	assert.Equal(t, "op(6) address(26)", Legend(j))

	t.Run("template", func(t *testing.T) {
		s := RenderTemplate("{{format}} {{hex}} rs={{rs}} funct={{funct_bits}} {{memory}}", r)
		assert.Equal(t, "r 02538820 rs=18 funct=100000 20885302", s)

		i, err := instruction.NewIType(8, 8, 9, -1)
		require.NoError(t, err)
		assert.Equal(t, "-1 65535", RenderTemplate("{{immediate}} {{missing}}65535", i))
	})
}

func TestTree(t *testing.T) {
	i, err := instruction.NewIType(8, 8, 9, -1)
	require.NoError(t, err)

	s := Tree(i)
	assert.True(t, strings.HasPrefix(s, "i 2109ffff\n"))
	assert.Contains(t, s, "op[31:26] = 8 (unsigned)")
	assert.Contains(t, s, "rs[25:21] = 8 (unsigned)")
	assert.Contains(t, s, "rt[20:16] = 9 (unsigned)")
	assert.Contains(t, s, "[1111111111111111]")
	assert.Contains(t, s, "immediate[15:0] = -1 (signed)")
}

func TestWordView(t *testing.T) {
	i, err := instruction.NewIType(8, 8, 9, -1)
	require.NoError(t, err)

	v := NewWordView(i)
	assert.Equal(t, "i", v.Format)
	assert.Equal(t, "2109ffff", v.Hex)
	assert.Equal(t, uint32(0x2109ffff), v.Value)
	assert.Equal(t, "ffff0921", v.Memory)
	require.Len(t, v.Fields, 4)
	assert.Equal(t, FieldView{Name: "immediate", Width: 16, Mode: "signed", Value: -1, Bits: "1111111111111111"}, v.Fields[3])
}
