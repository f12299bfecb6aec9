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

// Apply runs the four local optimization passes over the superblock bounded
// by head and tail, in the fixed order required by §5: load/store
// elimination, load hoisting, shift fusion, multiply-add fusion. Any pass
// may be individually skipped through u.Disabled. head and tail are never
// themselves mutated or crossed.
func Apply(u *Unit, head, tail *lir.Instr) {
    if head == nil || tail == nil {
        panic("armopt: nil superblock sentinel")
    }

    if !u.Disabled.has(LoadStoreElimination) {
        eliminateLoadsStores(u, head, tail)
    }

    if !u.Disabled.has(LoadHoisting) {
        hoistLoads(u, head, tail)
    }

    if !u.Disabled.has(ShiftArithmetic) {
        fuseShiftArithmetic(u, head, tail)
    }

    if !u.Disabled.has(MultiplyArithmetic) {
        fuseMultiplyAdd(u, head, tail)
    }
}
