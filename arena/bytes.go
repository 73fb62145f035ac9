// Copyright 2025 heapalloc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package arena

import (
	"fmt"

	"github.com/bytedance/gopkg/lang/mcache"
)

// Bytes is an in-process Arena backed by a []byte that grows by allocating
// a larger buffer and copying, same as the teacher's buffer-growth helpers
// (see bufiox.DefaultReader.acquire): new backing buffers are drawn from
// mcache so repeated grow/shrink-by-reset cycles reuse memory instead of
// pressuring the GC.
type Bytes struct {
	buf []byte
}

// NewBytes returns an empty Bytes arena.
func NewBytes() *Bytes {
	return &Bytes{}
}

func (a *Bytes) Lo() int { return 0 }
func (a *Bytes) Hi() int { return len(a.buf) }
func (a *Bytes) Bytes() []byte { return a.buf }

// Extend appends n zeroed bytes to the arena, growing the backing buffer if
// needed.
func (a *Bytes) Extend(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("arena: extend amount must be positive, got %d", n)
	}
	base := len(a.buf)
	need := base + n
	if need <= cap(a.buf) {
		a.buf = a.buf[:need]
		zero(a.buf[base:need])
		return base, nil
	}
	grown := mcache.Malloc(need, growCap(need))
	copy(grown, a.buf)
	zero(grown[base:need])
	if a.buf != nil {
		mcache.Free(a.buf)
	}
	a.buf = grown
	return base, nil
}

// Reset drops the arena back to empty length, returning the backing buffer
// to the mcache pool. The caller must not use any previously returned
// offsets after calling Reset.
func (a *Bytes) Reset() {
	if a.buf != nil {
		mcache.Free(a.buf)
	}
	a.buf = nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// growCap doubles the requested size once, the same over-allocation factor
// the teacher's gridbuf.WriteBuffer uses when refreshing a chunk.
func growCap(need int) int {
	return need * 2
}
