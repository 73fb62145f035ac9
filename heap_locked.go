/*
 * Copyright 2025 heapalloc Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package heapalloc

import "sync"

// Locked wraps a Heap with a mutex so the same heap can be shared across
// goroutines. The allocator core underneath remains single-threaded and
// synchronous; Locked only serializes entry into it.
type Locked struct {
	mu sync.Mutex
	h  *Heap
}

// NewLocked wraps h for concurrent use.
func NewLocked(h *Heap) *Locked {
	return &Locked{h: h}
}

func (l *Locked) Allocate(size int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.h.Allocate(size)
}

func (l *Locked) Free(p int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.h.Free(p)
}

func (l *Locked) Reallocate(p, size int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.h.Reallocate(p, size)
}
