/*
 * Copyright 2022 ByteDance Inc.
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

package lir

const _SlabSize = 64

// Arena is the arena allocator collaborator of spec.md §6: new LIR nodes
// are carved from growable slabs and are never freed individually, matching
// the lifecycle invariant of §3 ("this optimizer may allocate new nodes ...
// but never frees"). Instr carries live *Instr pointers (Ln/Lp), so slabs
// are plain typed Go slices rather than a byte-pool reinterpreted through
// unsafe -- the GC needs to see those pointers to scan them.
type Arena struct {
    slab []Instr
    next int
}

// NewArena creates an empty arena; the first New call lazily grows it.
func NewArena() *Arena {
    return &Arena{}
}

func (self *Arena) grow() {
    self.slab = make([]Instr, _SlabSize)
    self.next = 0
}

// New returns a zero-initialized node with Op set.
func (self *Arena) New(op OpCode) *Instr {
    if self.slab == nil || self.next >= len(self.slab) {
        self.grow()
    }

    p := &self.slab[self.next]
    self.next++
    *p = Instr{Op: op}
    return p
}
