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

// AliasKind classifies the outcome of comparing two memory accesses that
// share a memory-region bit.
type AliasKind int

const (
    NoAlias AliasKind = iota
    MustAlias
    MayAlias
    PartialOverlap
)

// AliasCheck disambiguates two accesses known to touch the same memory
// region (LITERAL, DALVIK_REG, or HEAP_REF, as selected by region).
//
//   - LITERAL    : equal AliasInfo means the same constant.
//   - DALVIK_REG : equal AliasInfo is a must-alias; overlapping but unequal
//                  ranges are a partial (wide/narrow) overlap; otherwise
//                  no alias.
//   - HEAP_REF   : always may-alias; there is no disambiguating info.
func AliasCheck(region ResourceMask, a, b AliasInfo) AliasKind {
    switch region {
    case LITERAL:
        if a == b {
            return MustAlias
        }
        return NoAlias

    case DALVIK_REG:
        if a == b {
            return MustAlias
        }
        if a.Overlaps(b) {
            return PartialOverlap
        }
        return NoAlias

    case HEAP_REF:
        return MayAlias

    default:
        panic("lir: AliasCheck on a non-memory or multi-region mask")
    }
}

// Clobbers reports whether a and b, both DALVIK_REG accesses, share any
// spill-slot index — the alias helper of §4.2, used to detect partial
// wide/narrow overlap independently of the caller's AliasCheck path.
func Clobbers(a, b AliasInfo) bool {
    return a.Overlaps(b)
}
