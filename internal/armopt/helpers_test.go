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

package armopt

import (
    `github.com/bytedance/armlo/internal/lir`
)

// newBlock wires up a fresh head/tail sentinel pair and splices body into
// it, in order, returning the sentinels. Each element of body must already
// be arena-allocated (via u.Arena.New) with its masks set via
// lir.RecomputeMask -- mirroring the invariant of spec.md §3 that a fresh
// node's masks are set before any scan inspects it.
func newBlock(u *Unit, body ...*lir.Instr) (head, tail *lir.Instr) {
    head = u.Arena.New(lir.OP_label)
    tail = u.Arena.New(lir.OP_label)

    head.Ln = tail
    tail.Lp = head

    for _, ins := range body {
        lir.InsertBefore(tail, ins)
    }

    return head, tail
}

// live returns every non-nop, non-pseudo instruction strictly between head
// and tail, in order -- the "what actually remains" view of a superblock
// after optimization.
func live(head, tail *lir.Instr) []*lir.Instr {
    var out []*lir.Instr

    lir.Walk(head, tail, func(i *lir.Instr) {
        if !i.Flags.IsNop && !i.IsPseudo() {
            out = append(out, i)
        }
    })

    return out
}

func ldrReg(u *Unit, dst, slot int32) *lir.Instr {
    i := u.Arena.New(lir.OP_ldr_reg)
    i.Operands[0] = dst
    i.Alias = lir.AliasInfo{Base: slot}
    lir.RecomputeMask(i)
    return i
}

func strReg(u *Unit, src, slot int32) *lir.Instr {
    i := u.Arena.New(lir.OP_str_reg)
    i.Operands[0] = src
    i.Alias = lir.AliasInfo{Base: slot}
    lir.RecomputeMask(i)
    return i
}

func ldrMem(u *Unit, dst, base int32) *lir.Instr {
    i := u.Arena.New(lir.OP_ldr_mem)
    i.Operands[0] = dst
    i.Operands[1] = base
    lir.RecomputeMask(i)
    return i
}

func addReg(u *Unit, dst, rn, rm int32) *lir.Instr {
    i := u.Arena.New(lir.OP_add)
    i.Operands[0], i.Operands[1], i.Operands[2] = dst, rn, rm
    lir.RecomputeMask(i)
    return i
}

func lslImm(u *Unit, dst, rm, amount int32) *lir.Instr {
    i := u.Arena.New(lir.OP_lsl)
    i.Operands[0], i.Operands[1], i.Operands[2] = dst, rm, amount
    lir.RecomputeMask(i)
    return i
}

func vmul(u *Unit, dst, dn, dm int32) *lir.Instr {
    i := u.Arena.New(lir.OP_vmul_f64)
    i.Class = lir.ClassFloat
    i.Operands[0], i.Operands[1], i.Operands[2] = dst, dn, dm
    lir.RecomputeMask(i)
    return i
}

func vadd(u *Unit, dst, dn, dm int32) *lir.Instr {
    i := u.Arena.New(lir.OP_vadd_f64)
    i.Class = lir.ClassFloat
    i.Operands[0], i.Operands[1], i.Operands[2] = dst, dn, dm
    lir.RecomputeMask(i)
    return i
}

func barrier(u *Unit) *lir.Instr {
    i := u.Arena.New(lir.OP_barrier)
    lir.RecomputeMask(i)
    return i
}
