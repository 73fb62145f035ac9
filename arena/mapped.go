//go:build linux

package arena

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Mapped is an Arena backed by an mmap'd file, so a heapalloc.Heap can be
// handed a real OS-backed region instead of a plain Go slice. Growth is
// done with mremap; on platforms where that isn't available the caller
// should use Bytes instead.
type Mapped struct {
	file *os.File
	own  bool
	data []byte
	hi   int
}

// NewMapped creates (or truncates) the file at path and maps initial bytes
// of it. initial must be > 0.
func NewMapped(path string, initial int) (*Mapped, error) {
	if initial <= 0 {
		return nil, fmt.Errorf("arena: initial size must be positive, got %d", initial)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("arena: open backing file: %w", err)
	}
	m, err := newMappedFromFile(f, true, initial)
	if err != nil {
		f.Close()
		return nil, err
	}
	return m, nil
}

func newMappedFromFile(f *os.File, own bool, initial int) (*Mapped, error) {
	if err := f.Truncate(int64(initial)); err != nil {
		return nil, fmt.Errorf("arena: truncate backing file: %w", err)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, initial, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("arena: mmap: %w", err)
	}
	return &Mapped{file: f, own: own, data: data}, nil
}

func (m *Mapped) Lo() int      { return 0 }
func (m *Mapped) Hi() int      { return m.hi }
func (m *Mapped) Bytes() []byte { return m.data[:m.hi] }

// Extend grows the mapping if needed and returns the offset of the n newly
// committed bytes.
func (m *Mapped) Extend(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("arena: extend amount must be positive, got %d", n)
	}
	base := m.hi
	need := base + n
	if need > len(m.data) {
		newCap := len(m.data) * 2
		if newCap < need {
			newCap = need
		}
		if err := m.file.Truncate(int64(newCap)); err != nil {
			return 0, fmt.Errorf("arena: truncate backing file: %w", err)
		}
		remapped, err := unix.Mremap(m.data, newCap, unix.MREMAP_MAYMOVE)
		if err != nil {
			return 0, fmt.Errorf("arena: mremap: %w", err)
		}
		m.data = remapped
	}
	for i := base; i < need; i++ {
		m.data[i] = 0
	}
	m.hi = need
	return base, nil
}

// Close unmaps the region and, if this Mapped created the backing file,
// closes it.
func (m *Mapped) Close() error {
	if err := unix.Munmap(m.data); err != nil {
		return fmt.Errorf("arena: munmap: %w", err)
	}
	if m.own {
		return m.file.Close()
	}
	return nil
}
