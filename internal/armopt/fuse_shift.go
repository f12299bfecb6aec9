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

// fuseShiftArithmetic is the shift-into-arithmetic fuser of spec.md §4.6: a
// shift-by-immediate feeding directly into a three-register add collapses
// into a single shifted-add, matching what the target ISA can express as one
// instruction.
func fuseShiftArithmetic(u *Unit, head, tail *lir.Instr) {
    for cur := head.Ln; cur != nil && cur != tail; {
        next := cur.Ln

        if cur.Flags.IsNop || cur.IsPseudo() || !isShiftByImm(cur) {
            cur = next
            continue
        }

        nextLIR := nextLive(cur, tail)

        if nextLIR != nil && tryFuseShiftAdd(u, cur, nextLIR) {
            cur = nextLIR.Ln
            continue
        }

        cur = next
    }
}

func isShiftByImm(i *lir.Instr) bool {
    return i.Op == lir.OP_lsl || i.Op == lir.OP_lsr
}

// nextLive returns the next non-nop, non-pseudo instruction after i, up to
// (not including) tail, or nil if none exists.
func nextLive(i, tail *lir.Instr) *lir.Instr {
    for p := i.Ln; p != nil && p != tail; p = p.Ln {
        if !p.Flags.IsNop && !p.IsPseudo() {
            return p
        }
    }
    return nil
}

func tryFuseShiftAdd(u *Unit, shift, add *lir.Instr) bool {
    if add.Op != lir.OP_add || add.Operands[3] != 0 {
        return false
    }

    shiftDst := shift.Dest()

    var rSrc1 int32
    var matched bool

    switch {
    case add.Operands[1] == shiftDst:
        rSrc1, matched = add.Operands[2], true
    case add.Operands[2] == shiftDst:
        rSrc1, matched = add.Operands[1], true
    }

    if !matched {
        return false
    }

    amount := uint8(shift.Operands[2])

    var shiftKind lir.ShiftType
    if shift.Op == lir.OP_lsr {
        shiftKind = lir.ShiftLSR
    } else {
        shiftKind = lir.ShiftLSL
    }

    fused := u.Arena.New(lir.OP_add)
    fused.Class = lir.ClassInt
    fused.Operands[0] = add.Dest()
    fused.Operands[1] = rSrc1
    fused.Operands[2] = shift.Operands[1] // the value being shifted
    fused.Operands[3] = lir.PackShift(amount, shiftKind)
    lir.RecomputeMask(fused)

    lir.InsertBefore(add, fused)

    shift.Flags.IsNop = true
    add.Flags.IsNop = true

    return true
}
