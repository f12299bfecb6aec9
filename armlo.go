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

// Package armlo is the local (intra-superblock) peephole and scheduling
// optimizer for the linear IR produced by a JIT compiler targeting a 32-bit
// ARM-like instruction set.
package armlo

import (
	"github.com/bytedance/armlo/internal/armopt"
	"github.com/bytedance/armlo/internal/lir"
)

// Option configures a Unit returned by NewUnit.
type Option = armopt.Option

// DisableFlags is the caller-supplied bitmask of individually-disabled
// optimizations.
type DisableFlags = armopt.DisableFlags

const (
	LoadStoreElimination = armopt.LoadStoreElimination
	LoadHoisting         = armopt.LoadHoisting
	ShiftArithmetic      = armopt.ShiftArithmetic
	MultiplyArithmetic   = armopt.MultiplyArithmetic
)

// WithDisabled disables the given passes.
func WithDisabled(flags DisableFlags) Option {
	return armopt.WithDisabled(flags)
}

// WithCPUFeatures overrides the hardware-FMA probe result.
func WithCPUFeatures(hasFMA bool) Option {
	return armopt.WithCPUFeatures(hasFMA)
}

// Unit is the opaque compilation context threaded through every pass: it
// carries the arena new nodes are allocated from and the disable-flags word.
type Unit struct {
	u *armopt.Unit
}

// NewUnit creates a new optimizer context.
func NewUnit(opts ...Option) *Unit {
	return &Unit{u: armopt.NewUnit(opts...)}
}

// Arena exposes the context's backing node allocator, so callers can build
// the superblock from the same arena the optimizer will allocate into.
func (self *Unit) Arena() *lir.Arena {
	return self.u.Arena
}

// Apply runs the four local optimization passes over the superblock bounded
// by head and tail, in their fixed order.
func Apply(u *Unit, head, tail *lir.Instr) {
	armopt.Apply(u.u, head, tail)
}
