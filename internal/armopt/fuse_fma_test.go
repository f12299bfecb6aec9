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
    `testing`

    `github.com/davecgh/go-spew/spew`
    `github.com/stretchr/testify/assert`
    `github.com/stretchr/testify/require`

    `github.com/bytedance/armlo/internal/lir`
)

// S6: vmul.f64 d9,d9,d10 / vadd.f64 d8,d8,d9 fuses into vmla.f64 d8,d9,d10
// when the host implements a hardware FMA.
func TestFuseFMA_S6_MulAddBecomesVMLA(t *testing.T) {
    u := NewUnit(WithCPUFeatures(true))

    mul := vmul(u, 9, 9, 10)
    add := vadd(u, 8, 8, 9)

    head, tail := newBlock(u, mul, add)
    fuseMultiplyAdd(u, head, tail)

    require.True(t, mul.Flags.IsNop)
    require.True(t, add.Flags.IsNop)

    got := live(head, tail)
    if !assert.Len(t, got, 1) {
        spew.Dump(got)
    }

    fused := got[0]
    assert.Equal(t, lir.OP_vmla_f64, fused.Op)
    assert.Equal(t, int32(8), fused.Operands[0])
    assert.Equal(t, int32(9), fused.Operands[1])
    assert.Equal(t, int32(10), fused.Operands[2])
}

// Without hardware FMA support the pass is a no-op entirely, regardless of
// how perfect the match is.
func TestFuseFMA_NoHardwareSupportSkipsFusion(t *testing.T) {
    u := NewUnit(WithCPUFeatures(false))

    mul := vmul(u, 9, 9, 10)
    add := vadd(u, 8, 8, 9)

    head, tail := newBlock(u, mul, add)
    fuseMultiplyAdd(u, head, tail)

    assert.False(t, mul.Flags.IsNop)
    assert.False(t, add.Flags.IsNop)
}

// The add must be in accumulator form (dst == first operand); otherwise the
// mul's result isn't actually being folded into an existing accumulation.
func TestFuseFMA_RequiresAccumulatorForm(t *testing.T) {
    u := NewUnit(WithCPUFeatures(true))

    mul := vmul(u, 9, 9, 10)
    add := vadd(u, 8, 7, 9) // dst (8) != operand[1] (7)

    head, tail := newBlock(u, mul, add)
    fuseMultiplyAdd(u, head, tail)

    assert.False(t, mul.Flags.IsNop)
    assert.False(t, add.Flags.IsNop)
}

// If the add doesn't actually consume the mul's destination, there's nothing
// to fuse.
func TestFuseFMA_RequiresAddConsumesMulResult(t *testing.T) {
    u := NewUnit(WithCPUFeatures(true))

    mul := vmul(u, 9, 9, 10)
    add := vadd(u, 8, 8, 11) // unrelated source register

    head, tail := newBlock(u, mul, add)
    fuseMultiplyAdd(u, head, tail)

    assert.False(t, mul.Flags.IsNop)
    assert.False(t, add.Flags.IsNop)
}

// A plain integer add right after a float multiply is never mistaken for a
// fusable accumulator add.
func TestFuseFMA_IgnoresNonFloatAdd(t *testing.T) {
    u := NewUnit(WithCPUFeatures(true))

    mul := vmul(u, 9, 9, 10)
    add := addReg(u, 8, 8, 9)

    head, tail := newBlock(u, mul, add)
    fuseMultiplyAdd(u, head, tail)

    assert.False(t, mul.Flags.IsNop)
    assert.False(t, add.Flags.IsNop)
}
