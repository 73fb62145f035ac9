package refalloc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuddyArenaValidation(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		min     int
		max     int
		wantErr bool
	}{
		{"valid", 64 * 1024, 1024, 64 * 1024, false},
		{"valid_same_min_max", 4096, 4096, 4096, false},
		{"min_not_pow2", 64 * 1024, 1000, 64 * 1024, true},
		{"max_not_pow2", 64 * 1024, 1024, 60000, true},
		{"min_gt_max", 64 * 1024, 8192, 4096, true},
		{"min_le_header", 64 * 1024, 8, 64 * 1024, true},
		{"arena_not_multiple", 100 * 1024, 1024, 64 * 1024, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuddyArena(make([]byte, tt.size), tt.min, tt.max)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAllocWritesDisjointBlocks(t *testing.T) {
	a := newTestArena(t, 64*1024, 1024, 8192)

	p1, ok := a.Alloc(100)
	require.True(t, ok)
	p2, ok := a.Alloc(100)
	require.True(t, ok)
	assert.NotEqual(t, p1, p2)
}

func TestAllocTooLargeFails(t *testing.T) {
	a := newTestArena(t, 8192, 1024, 8192)
	_, ok := a.Alloc(8192)
	assert.False(t, ok)
}

func TestFreeThenReallocReusesSpace(t *testing.T) {
	a := newTestArena(t, 8192, 1024, 8192)
	p, ok := a.Alloc(100)
	require.True(t, ok)
	a.Free(p)

	p2, ok := a.Alloc(100)
	require.True(t, ok)
	assert.Equal(t, p, p2)
}

func TestFreeTwiceAndInvalidOffsetPanic(t *testing.T) {
	a := newTestArena(t, 8192, 1024, 8192)

	p, ok := a.Alloc(100)
	require.True(t, ok)
	assert.NotPanics(t, func() { a.Free(p) })
	assert.Panics(t, func() { a.Free(p) }, "double free must panic")
	assert.Panics(t, func() { a.Free(-1) })
}

func TestAvailableAfterRandomAllocFree(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := newTestArena(t, 4*1024*1024, 1024, 64*1024)
	initial := a.Available()

	var live []int
	sizes := []int{64, 200, 1024, 4096, 16384}

	for i := 0; i < 20000; i++ {
		if len(live) == 0 || rng.Intn(3) != 0 {
			sz := sizes[rng.Intn(len(sizes))]
			if p, ok := a.Alloc(sz); ok {
				live = append(live, p)
			}
		} else {
			idx := rng.Intn(len(live))
			a.Free(live[idx])
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
		}
	}
	for _, p := range live {
		a.Free(p)
	}

	a.CoalesceUntil(a.maxOrder)
	assert.Equal(t, initial, a.Available())
}

func newTestArena(t *testing.T, size, min, max int) *BuddyArena {
	t.Helper()
	a, err := NewBuddyArena(make([]byte, size), min, max)
	require.NoError(t, err)
	return a
}
