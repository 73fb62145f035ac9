package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heapalloc/heapalloc"
	"github.com/heapalloc/heapalloc/arena"
)

func TestRunExecutesTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.txt")
	require.NoError(t, os.WriteFile(path, []byte(
		"alloc a 32\n"+
			"alloc b 64\n"+
			"realloc a 128\n"+
			"free b\n"+
			"# a comment line\n"+
			"free a\n",
	), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	h, err := heapalloc.NewHeap(arena.NewBytes())
	require.NoError(t, err)

	require.NoError(t, run(h, f))
	assert.NoError(t, h.Check())
	assert.Equal(t, 1, h.Stats().FreeBlocks)
	assert.Zero(t, h.Stats().LiveBlocks)
}

func TestExecRejectsUnknownID(t *testing.T) {
	h, err := heapalloc.NewHeap(arena.NewBytes())
	require.NoError(t, err)
	err = exec(h, map[string]int{}, []string{"free", "missing"})
	assert.Error(t, err)
}
