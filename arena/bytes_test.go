package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesExtendZeroesNewRegion(t *testing.T) {
	a := NewBytes()
	base, err := a.Extend(16)
	require.NoError(t, err)
	assert.Equal(t, 0, base)
	assert.Equal(t, 16, a.Hi())
	for _, b := range a.Bytes() {
		assert.Zero(t, b)
	}
}

func TestBytesExtendIsContiguous(t *testing.T) {
	a := NewBytes()
	b1, err := a.Extend(8)
	require.NoError(t, err)
	b2, err := a.Extend(24)
	require.NoError(t, err)
	assert.Equal(t, 0, b1)
	assert.Equal(t, 8, b2)
	assert.Equal(t, 32, a.Hi())
}

func TestBytesExtendPreservesPriorContent(t *testing.T) {
	a := NewBytes()
	base, err := a.Extend(8)
	require.NoError(t, err)
	a.Bytes()[base] = 0xAB

	_, err = a.Extend(4096) // forces the backing buffer to be reallocated
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), a.Bytes()[base])
}

func TestBytesExtendRejectsNonPositive(t *testing.T) {
	a := NewBytes()
	_, err := a.Extend(0)
	assert.Error(t, err)
	_, err = a.Extend(-1)
	assert.Error(t, err)
}

func TestBytesResetDropsContent(t *testing.T) {
	a := NewBytes()
	_, err := a.Extend(16)
	require.NoError(t, err)
	a.Reset()
	assert.Equal(t, 0, a.Hi())
	assert.Empty(t, a.Bytes())
}
