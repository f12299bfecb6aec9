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

// Package cpu is a thin wrapper over the target's detected feature set,
// mirroring the teacher's internal/cpu package (referenced by
// pass_fusion_amd64.go's cpu.HasMOVBE gate, itself backed by
// klauspost/cpuid/v2) but probing an ARM feature relevant to this
// optimizer's fusion passes instead of an x86 one.
package cpu

import (
    `github.com/klauspost/cpuid/v2`
)

// HasFusedMultiplyAdd reports whether the running core's vector unit
// implements Advanced SIMD (NEON); cores with NEON also implement a
// hardware fused multiply-accumulate for double-precision floats, which is
// the capability the §4.7 fuser depends on. Cores without it (plain VFPv3)
// must not receive folded vmla.f64 instructions.
func HasFusedMultiplyAdd() bool {
    return cpuid.CPU.Supports(cpuid.ASIMD)
}
