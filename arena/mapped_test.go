//go:build linux

package arena

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappedExtendGrowsAndZeroes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.bin")
	m, err := NewMapped(path, 4096)
	require.NoError(t, err)
	defer m.Close()

	base, err := m.Extend(16)
	require.NoError(t, err)
	assert.Equal(t, 0, base)
	for _, b := range m.Bytes() {
		assert.Zero(t, b)
	}
}

func TestMappedExtendBeyondInitialRemaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.bin")
	m, err := NewMapped(path, 64)
	require.NoError(t, err)
	defer m.Close()

	base, err := m.Extend(32)
	require.NoError(t, err)
	m.Bytes()[base] = 0x42

	_, err = m.Extend(4096) // forces mremap past the initial mapping
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), m.Bytes()[base])
}

func TestMappedExtendRejectsNonPositive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.bin")
	m, err := NewMapped(path, 4096)
	require.NoError(t, err)
	defer m.Close()

	_, err = m.Extend(0)
	assert.Error(t, err)
}

func TestNewMappedRejectsNonPositiveInitial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.bin")
	_, err := NewMapped(path, 0)
	assert.Error(t, err)
}
