package registers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstants(t *testing.T) {
	assert.Equal(t, 0, ZERO)
	assert.Equal(t, 8, T0)
	assert.Equal(t, 15, T7)
	assert.Equal(t, 16, S0)
	assert.Equal(t, 17, S1)
	assert.Equal(t, 18, S2)
	assert.Equal(t, 19, S3)
	assert.Equal(t, 24, T8)
	assert.Equal(t, 27, K1)
	assert.Equal(t, 31, RA)
}

func TestLookup(t *testing.T) {
	n, ok := Lookup("sp")
	assert.True(t, ok)
	assert.Equal(t, SP, n)

	n, ok = Lookup("$T0")
	assert.True(t, ok)
	assert.Equal(t, T0, n)

	n, ok = Lookup("$31")
	assert.True(t, ok)
	assert.Equal(t, RA, n)

	n, ok = Lookup("s8")
	assert.True(t, ok)
	assert.Equal(t, FP, n)

	_, ok = Lookup("$32")
	assert.False(t, ok)

	_, ok = Lookup("x1")
	assert.False(t, ok)

	_, ok = Lookup("")
	assert.False(t, ok)
}

func TestName(t *testing.T) {
	for i := 0; i < Count; i++ {
		n, ok := Lookup(Name(i))
		assert.True(t, ok)
		assert.Equal(t, i, n)
	}
	assert.Equal(t, "", Name(32))
	assert.Equal(t, "", Name(-1))
}
