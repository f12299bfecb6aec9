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

// ResourceMask is a bit-packed encoding of the resources (architectural
// registers plus memory regions) an instruction uses or defines. The
// universe is small enough that a single 64-bit word suffices.
type ResourceMask uint64

const (
    _B_r0    = 0  // architectural registers occupy bits [0, NumRegs)
    NumRegs         = 16
    _B_pc    = _B_r0 + NumRegs // REG_PC

    _B_literal    = _B_pc + 1 // constant pool
    _B_dalvik_reg = _B_literal + 1 // spill slots
    _B_heap_ref   = _B_dalvik_reg + 1 // general heap memory
)

const (
    // REG_PC is the resource bit for the program counter; including it in a
    // use mask prevents an instruction from being reordered across branches.
    REG_PC ResourceMask = 1 << _B_pc

    LITERAL    ResourceMask = 1 << _B_literal
    DALVIK_REG ResourceMask = 1 << _B_dalvik_reg
    HEAP_REF   ResourceMask = 1 << _B_heap_ref

    // ENCODE_MEM is the union of all memory-region bits.
    ENCODE_MEM ResourceMask = LITERAL | DALVIK_REG | HEAP_REF

    // EncodeAll saturates every bit; an instruction carrying this as its
    // DefMask is a hard scheduling barrier that must never be crossed.
    EncodeAll ResourceMask = ^ResourceMask(0)
)

// Reg returns the resource bit for architectural register r.
func Reg(r int32) ResourceMask {
    if r < 0 || int(r) >= NumRegs {
        panic("lir: register out of range")
    }
    return 1 << (uint(_B_r0) + uint(r))
}

// RegDepends implements the register dependence check of §4.1: A (the pivot,
// described by useA/defA) is earlier, b is later. Callers pre-mask
// ENCODE_MEM bits out of useA/defA when memory dependence is handled
// separately through AliasInfo.
func RegDepends(useA, defA ResourceMask, b *Instr) bool {
    useB, defB := b.UseMask&^ENCODE_MEM, b.DefMask&^ENCODE_MEM

    /* read-after-write */
    if defA&useB != 0 {
        return true
    }

    /* write-after-read / write-after-write */
    if (useA|defA)&defB != 0 {
        return true
    }

    return false
}

// MemMask extracts the memory-region bits from a combined mask.
func MemMask(m ResourceMask) ResourceMask {
    return m & ENCODE_MEM
}
