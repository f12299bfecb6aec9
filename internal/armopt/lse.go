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

// eliminateLoadsStores is the redundant load/store elimination pass of
// spec.md §4.4. It scans the superblock top-down; for every candidate it
// walks forward looking for a must-alias access to fold or kill, and for a
// dependence that forces it to stop. A store whose inner scan ran past at
// least one live instruction before a register dependence stopped it is
// sunk: a clone of the store is spliced in immediately before the stopping
// instruction, shortening the store's source register's live range. A scan
// stopped by a memory-alias conflict never sinks the store.
func eliminateLoadsStores(u *Unit, head, tail *lir.Instr) {
    for cur := tail.Lp; cur != nil && cur != head; {
        prev := cur.Lp
        thisLIR := cur
        cur = prev

        if thisLIR.Flags.IsNop || thisLIR.IsPseudo() {
            continue
        }

        if !thisLIR.IsLoad() && !thisLIR.IsStore() {
            continue
        }

        thisMemMask := lir.MemMask(thisLIR.UseMask | thisLIR.DefMask)

        if thisMemMask != lir.LITERAL && thisMemMask != lir.DALVIK_REG {
            continue
        }

        eliminateOne(u, thisLIR, thisMemMask, tail)
    }
}

func eliminateOne(u *Unit, thisLIR *lir.Instr, thisMemMask lir.ResourceMask, tail *lir.Instr) {
    nativeReg := thisLIR.Dest()
    thisIsLoad := thisLIR.IsLoad()

    stopUseRegMask := (thisLIR.UseMask | lir.REG_PC) &^ lir.ENCODE_MEM
    stopDefRegMask := thisLIR.DefMask &^ lir.ENCODE_MEM

    sinkDistance := 0
    var stopCheck *lir.Instr
    regDepStop := false

    for check := thisLIR.Ln; check != nil && check != tail; check = check.Ln {
        if check.Flags.IsNop {
            continue
        }

        checkMemMask := lir.MemMask(check.UseMask | check.DefMask)
        aliasCondition := thisMemMask & checkMemMask
        stopHere := false
        turnedNop := false

        if checkMemMask != lir.ENCODE_MEM && aliasCondition != 0 {
            switch aliasCondition {
            case lir.LITERAL:
                if !check.IsLoad() {
                    panic("armopt: LITERAL region access that is not a load")
                }

                if check.Alias == thisLIR.Alias && check.Class == thisLIR.Class {
                    if check.Dest() == nativeReg {
                        check.Flags.IsNop = true
                    } else {
                        replaceLoadWithMove(u, check, check.Dest(), nativeReg, check.Class)
                    }
                    turnedNop = true
                }

            case lir.DALVIK_REG:
                switch lir.AliasCheck(lir.DALVIK_REG, thisLIR.Alias, check.Alias) {
                case lir.MustAlias:
                    switch {
                    case thisIsLoad && check.IsLoad(): // RAR
                        if check.Class == thisLIR.Class {
                            if check.Dest() != nativeReg {
                                replaceLoadWithMove(u, check, check.Dest(), nativeReg, check.Class)
                            } else {
                                check.Flags.IsNop = true
                            }
                            turnedNop = true
                        } else {
                            stopHere = true
                        }

                    case !thisIsLoad && check.IsLoad(): // RAW
                        if check.Class == thisLIR.Class {
                            if check.Dest() != nativeReg {
                                replaceLoadWithMove(u, check, check.Dest(), nativeReg, check.Class)
                            } else {
                                check.Flags.IsNop = true
                            }
                            turnedNop = true
                        } else {
                            stopHere = true
                        }

                    case thisIsLoad && check.IsStore(): // WAR: cached value killed
                        stopHere = true

                    case !thisIsLoad && check.IsStore(): // WAW: earlier store is dead
                        thisLIR.Flags.IsNop = true
                        stopHere = true
                    }

                case lir.PartialOverlap:
                    // Conservative: wide/narrow mixing is rare and hard to
                    // test exhaustively, so any partial overlap stops the
                    // scan even when check only reads.
                    stopHere = true
                }
            }

            if stopHere {
                stopCheck = check
                break
            }

            if turnedNop {
                continue
            }
        }

        if lir.RegDepends(stopUseRegMask, stopDefRegMask, check) {
            stopCheck = check
            regDepStop = true
            break
        }

        sinkDistance++
    }

    // Store sinking only fires when the scan was stopped by a plain
    // register dependence. A memory-alias stop (WAR/WAW/class-mismatch/
    // PartialOverlap) exits the scan without authorizing a sink: the store
    // has not been proven safe to move past whatever aliased it.
    if regDepStop && sinkDistance > 0 && !thisIsLoad && !thisLIR.Flags.IsNop {
        sinkClone(u, thisLIR, stopCheck, true)
        thisLIR.Flags.IsNop = true
    }
}
