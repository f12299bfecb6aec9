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
    `github.com/oleiade/lane`

    `github.com/bytedance/armlo/internal/lir`
)

const (
    maxHoistDistance = 20 // width of the prevInstList window, §4.5
    ldldDistance     = 4  // minimum gap left behind a dependence-stopping load
    ldLatency        = 2  // slots below which further hoisting is unprofitable
)

// hoistLoads is the load hoisting pass of spec.md §4.5: for every load, walk
// backward over a bounded window of preceding instructions, then scan that
// window from just below the dependence point down toward the load and
// splice a clone of the load into the first slot where a barrier, an
// existing load-use pair or the LD_LATENCY limit ends the scan, to hide the
// load's use latency behind independent work.
func hoistLoads(u *Unit, head, tail *lir.Instr) {
    for cur := head.Ln; cur != nil && cur != tail; cur = cur.Ln {
        if cur.Flags.IsNop || cur.IsPseudo() || !cur.IsLoad() {
            continue
        }

        hoistOne(u, head, cur)
    }
}

func hoistOne(u *Unit, head, thisLIR *lir.Instr) {
    memRegion := lir.MemMask(thisLIR.UseMask)

    stopUseMask := thisLIR.UseMask &^ lir.ENCODE_MEM
    stopDefMask := thisLIR.DefMask &^ lir.ENCODE_MEM

    if memRegion == lir.HEAP_REF {
        stopUseMask |= lir.REG_PC
    }

    window := lane.NewDeque()

    for check := thisLIR.Lp; check != nil; check = check.Lp {
        if check == head {
            window.Append(check)
            break
        }

        if check.Flags.IsNop {
            continue
        }

        stopper := isMemoryStopper(memRegion, thisLIR.Alias, check) ||
            lir.RegDepends(stopUseMask, stopDefMask, check)

        if stopper || !check.IsPseudo() {
            window.Append(check)
        }

        if stopper {
            break
        }

        if window.Size() >= maxHoistDistance {
            break
        }
    }

    prevInstList := make([]*lir.Instr, 0, window.Size())
    for window.Size() > 0 {
        prevInstList = append(prevInstList, window.Shift().(*lir.Instr))
    }

    n := len(prevInstList)

    if n == 0 {
        return
    }

    if n < 2 {
        return
    }

    depLIR := prevInstList[n-1]
    firstSlot := n - 2

    if depLIR.IsLoad() {
        // Leave a full LDLD_DISTANCE gap behind the dependence-stopping
        // load. When the window is too short for that, abandon the hoist
        // rather than force a shorter gap: the slot-search loop below simply
        // doesn't run when firstSlot is negative.
        firstSlot -= ldldDistance
    }

    if firstSlot < 0 {
        return
    }

    chosenSlot := -1

    for slot := firstSlot; slot >= 0; slot-- {
        above := prevInstList[slot+1]
        cur := prevInstList[slot]

        if above.IsHardBarrier() {
            // Hoisting a load above a barrier-adjacent load is unlikely to
            // pay off, so keep scanning further down instead of stopping
            // here. Any other instruction right below the barrier is as far
            // as we can go.
            if cur.IsLoad() {
                continue
            }

            chosenSlot = slot
            break
        }

        if cur.UseMask&above.DefMask != 0 && above.IsLoad() {
            chosenSlot = slot
            break
        }

        if slot < ldLatency {
            chosenSlot = slot
            break
        }
    }

    if chosenSlot < 0 {
        return
    }

    anchor := prevInstList[chosenSlot]

    // anchor is the sentinel head itself only when chosenSlot == n-1 and the
    // walk ran off the top of the block; InsertBefore forbids that, so the
    // clone lands right after head instead.
    if anchor == head {
        clone := sinkClone(u, thisLIR, head, false)
        _ = clone
    } else {
        sinkClone(u, thisLIR, anchor, true)
    }

    thisLIR.Flags.IsNop = true
}

// isMemoryStopper implements the memory half of §4.5 step 3: an earlier
// instruction blocks hoisting past it when it writes into the same memory
// region the load reads, and (for DALVIK_REG) the write may alias the load's
// slot.
func isMemoryStopper(loadRegion lir.ResourceMask, loadAlias lir.AliasInfo, check *lir.Instr) bool {
    defRegion := lir.MemMask(check.DefMask)

    if defRegion&loadRegion == 0 {
        return false
    }

    switch loadRegion {
    case lir.DALVIK_REG:
        switch lir.AliasCheck(lir.DALVIK_REG, loadAlias, check.Alias) {
        case lir.MustAlias, lir.PartialOverlap:
            return true
        default:
            return false
        }

    case lir.HEAP_REF:
        return true

    default:
        return false
    }
}
