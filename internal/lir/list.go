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

// InsertBefore splices ins into the list immediately before anchor. anchor
// must not be the head sentinel of the superblock being optimized.
func InsertBefore(anchor, ins *Instr) {
    p := anchor.Lp
    ins.Lp = p
    ins.Ln = anchor
    anchor.Lp = ins

    if p != nil {
        p.Ln = ins
    }
}

// InsertAfter splices ins into the list immediately after anchor. anchor
// must not be the tail sentinel of the superblock being optimized.
func InsertAfter(anchor, ins *Instr) {
    n := anchor.Ln
    ins.Ln = n
    ins.Lp = anchor
    anchor.Ln = ins

    if n != nil {
        n.Lp = ins
    }
}

// NewMove builds a register-to-register move without inserting it anywhere;
// the register-copy builder collaborator of §6.
func NewMove(a *Arena, dst, src int32, class RegClass) *Instr {
    i := a.New(OP_mov)
    i.Class = class
    i.Operands[0] = dst
    i.Operands[1] = src
    RecomputeMask(i)
    return i
}

// Clone deep-copies an LIR node's value fields (everything except the list
// links and Flags, so the clone starts live), used by store sinking and load hoisting to relocate an
// instruction without disturbing the original node's identity.
func Clone(a *Arena, src *Instr) *Instr {
    dst := a.New(src.Op)
    dst.Class = src.Class
    dst.Operands = src.Operands
    dst.UseMask = src.UseMask
    dst.DefMask = src.DefMask
    dst.Alias = src.Alias
    return dst
}

// Walk calls fn for every node strictly between head and tail, in list
// order. Neither sentinel is visited.
func Walk(head, tail *Instr, fn func(*Instr)) {
    for p := head.Ln; p != nil && p != tail; p = p.Ln {
        fn(p)
    }
}
