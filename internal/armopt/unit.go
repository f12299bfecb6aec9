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

// Package armopt implements the local (intra-superblock) peephole and
// scheduling optimizer: redundant load/store elimination with store
// sinking, load hoisting, shift-into-arithmetic fusion, and floating
// multiply-add fusion.
package armopt

import (
    `github.com/bytedance/armlo/internal/cpu`
    `github.com/bytedance/armlo/internal/lir`
)

// DisableFlags is the caller-supplied bitmask of individually-disabled
// optimizations, per spec.md §5/§6.
type DisableFlags uint32

const (
    LoadStoreElimination DisableFlags = 1 << iota
    LoadHoisting
    ShiftArithmetic
    MultiplyArithmetic
)

func (self DisableFlags) has(bit DisableFlags) bool {
    return self&bit != 0
}

// Unit is the opaque compilation context threaded through every pass: it
// carries the arena new nodes are allocated from and the disable-flags
// word. Mirrors the teacher's pattern of a single context struct
// (internal/opts.Options) configured through functional Options.
type Unit struct {
    Arena        *lir.Arena
    Disabled     DisableFlags
    hasHardwareFMA bool
}

// Option configures a Unit, following the same functional-option shape as
// the teacher's top-level WithMaxInlineDepth/WithMaxInlineILSize.
type Option func(*Unit)

// WithDisabled disables the given passes for this Unit.
func WithDisabled(flags DisableFlags) Option {
    return func(u *Unit) { u.Disabled |= flags }
}

// WithCPUFeatures overrides the hardware-FMA probe result; used by tests to
// exercise both code paths of the §4.7 fuser without depending on the host
// CPU's actual feature set.
func WithCPUFeatures(hasFMA bool) Option {
    return func(u *Unit) { u.hasHardwareFMA = hasFMA }
}

// NewUnit creates a Unit backed by a fresh arena.
func NewUnit(opts ...Option) *Unit {
    u := &Unit{
        Arena:          lir.NewArena(),
        hasHardwareFMA: cpu.HasFusedMultiplyAdd(),
    }

    for _, opt := range opts {
        opt(u)
    }

    return u
}
