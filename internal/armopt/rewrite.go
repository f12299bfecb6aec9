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

// replaceLoadWithMove inserts a mov from src into dst immediately after
// load, and marks load itself as dead. Insertion-after (rather than
// in-place replacement) means the top-down scan of the elimination pass
// revisits the new mov with fresh dependence information, per §4.3.
func replaceLoadWithMove(u *Unit, load *lir.Instr, dst, src int32, class lir.RegClass) {
    mov := lir.NewMove(u.Arena, dst, src, class)
    lir.InsertAfter(load, mov)
    load.Flags.IsNop = true
}

// sinkClone clones src and splices the clone immediately before anchor (or
// immediately after it when before is false), used by store sinking (§4.4 step 4) and load hoisting (§4.5 step 6). The
// clone's resource mask is copied verbatim from src, since it performs the
// identical operation; callers that change Operands (none currently do)
// would need to call lir.RecomputeMask on the clone afterward.
func sinkClone(u *Unit, src, anchor *lir.Instr, before bool) *lir.Instr {
    clone := lir.Clone(u.Arena, src)

    if before {
        lir.InsertBefore(anchor, clone)
    } else {
        lir.InsertAfter(anchor, clone)
    }

    return clone
}
