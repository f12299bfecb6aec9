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

// fuseMultiplyAdd is the floating multiply-add fuser of spec.md §4.7: a
// double-precision multiply feeding an accumulator-form add collapses into a
// single vmla.f64, provided the target core implements a hardware FMA.
func fuseMultiplyAdd(u *Unit, head, tail *lir.Instr) {
    if !u.hasHardwareFMA {
        return
    }

    for cur := head.Ln; cur != nil && cur != tail; {
        next := cur.Ln

        if cur.Flags.IsNop || cur.IsPseudo() || cur.Op != lir.OP_vmul_f64 {
            cur = next
            continue
        }

        nextLIR := nextLive(cur, tail)

        if nextLIR != nil && tryFuseMulAdd(u, cur, nextLIR) {
            cur = nextLIR.Ln
            continue
        }

        cur = next
    }
}

func tryFuseMulAdd(u *Unit, mul, add *lir.Instr) bool {
    if add.Op != lir.OP_vadd_f64 {
        return false
    }

    // accumulator form: d = d + x, and x is the mul's result.
    if add.Operands[0] != add.Operands[1] || add.Operands[2] != mul.Dest() {
        return false
    }

    fused := u.Arena.New(lir.OP_vmla_f64)
    fused.Class = lir.ClassFloat
    fused.Operands[0] = add.Operands[0]
    fused.Operands[1] = mul.Operands[1]
    fused.Operands[2] = mul.Operands[2]
    lir.RecomputeMask(fused)

    lir.InsertBefore(add, fused)

    mul.Flags.IsNop = true
    add.Flags.IsNop = true

    return true
}
