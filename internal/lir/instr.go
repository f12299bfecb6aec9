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

// Package lir implements the linear intermediate representation consumed by
// the local peephole and scheduling optimizer: an intrusive doubly-linked
// list of fixed-shape instructions, each carrying a resource mask and
// optional alias information.
package lir

import (
    `fmt`
)

// OpCode identifies the operation an Instr performs.
type OpCode uint8

const (
    OP_nop     OpCode = iota // pseudo: no operation, already eliminated
    OP_label                 // pseudo: branch target annotation
    OP_barrier               // pseudo: hard scheduling barrier (defMask == ENCODE_ALL)

    OP_ldr_lit // load from the constant pool            -> Rd
    OP_ldr_reg // load from a Dalvik spill slot           -> Rd
    OP_ldr_mem // load from general heap memory           -> Rd
    OP_str_reg // store Rd into a Dalvik spill slot
    OP_str_mem // store Rd into general heap memory

    OP_mov  // Rd <- Rm
    OP_add  // Rd <- Rn + Rm, optionally Rm shifted (Operands[3])
    OP_sub  // Rd <- Rn - Rm
    OP_lsl  // Rd <- Rm << #imm
    OP_lsr  // Rd <- Rm >> #imm (logical)

    OP_vmul_f64 // Dd <- Dn * Dm
    OP_vadd_f64 // Dd <- Dn + Dm
    OP_vmla_f64 // Dd <- Dd + (Dn * Dm), fused

    OP_b // unconditional/conditional branch, consumes REG_PC implicitly
)

// ShiftType encodes the shift applied to the second source operand of a
// shifted-arithmetic instruction; stored packed into Operands[3] as
// ((amount & 0x1F) << 2) | shiftType, per the shift-into-arithmetic fuser.
type ShiftType uint8

const (
    ShiftLSL ShiftType = 0
    ShiftLSR ShiftType = 1
)

// PackShift builds the operands[3] shift-encoding field.
func PackShift(amount uint8, kind ShiftType) int32 {
    return int32((uint32(amount&0x1F) << 2) | uint32(kind&0x3))
}

// UnpackShift decomposes a shift-encoding field back into amount and kind.
func UnpackShift(v int32) (amount uint8, kind ShiftType) {
    u := uint32(v)
    return uint8((u >> 2) & 0x1F), ShiftType(u & 0x3)
}

// RegClass distinguishes integer (generic) registers from floating-point
// (double) registers; §4.4 requires the two never to be conflated when
// forwarding a cached value.
type RegClass uint8

const (
    ClassInt RegClass = iota
    ClassFloat
)

// Flags holds the per-instruction mutable state that the optimizer owns.
type Flags struct {
    IsNop bool
}

// AliasInfo disambiguates memory operands that share a memory region bit.
// Width is 0 for a single (32-bit) slot, 1 for a wide/double (64-bit) slot
// occupying [Base, Base+1].
type AliasInfo struct {
    Base  int32
    Width int32
}

// Hi returns the last Dalvik-register index the access touches.
func (self AliasInfo) Hi() int32 {
    return self.Base + self.Width
}

// Overlaps reports whether two AliasInfo ranges share any Dalvik-register
// index, used for the conservative partial-overlap check of §4.4/§4.5.
func (self AliasInfo) Overlaps(other AliasInfo) bool {
    return self.Base <= other.Hi() && other.Base <= self.Hi()
}

// Instr is one node of the intrusive doubly-linked LIR list. Operands an
// opcode does not use are left at zero; Class records whether Operands[0] is
// an integer or floating-point register for the forwarding check of §4.4.
type Instr struct {
    Op       OpCode
    Class    RegClass
    Operands [4]int32 // [0]=Rd (dest for loads, src for stores), [1]=Rn, [2]=Rm, [3]=shift/imm
    UseMask  ResourceMask
    DefMask  ResourceMask
    Alias    AliasInfo
    Flags    Flags
    Ln       *Instr // next
    Lp       *Instr // prev
}

// IsPseudo reports whether op carries no machine semantics.
func (op OpCode) IsPseudo() bool {
    return op == OP_nop || op == OP_label || op == OP_barrier
}

func (self *Instr) IsLoad() bool {
    return OpcodeFlags(self.Op).IsLoad
}

func (self *Instr) IsStore() bool {
    return OpcodeFlags(self.Op).IsStore
}

func (self *Instr) IsPseudo() bool {
    return self.Op.IsPseudo()
}

// IsHardBarrier reports whether this instruction's DefMask saturates the
// entire resource universe, making it an impassable scheduling barrier.
func (self *Instr) IsHardBarrier() bool {
    return self.DefMask == EncodeAll
}

// Dest returns the destination register operand, valid for loads, moves,
// and arithmetic; for stores this is the source register being stored.
func (self *Instr) Dest() int32 {
    return self.Operands[0]
}

func (self *Instr) SetDest(r int32) {
    self.Operands[0] = r
}

func (self *Instr) String() string {
    return fmt.Sprintf("%s %v", self.Op, self.Operands)
}

func (op OpCode) String() string {
    switch op {
    case OP_nop:
        return "nop"
    case OP_label:
        return "label"
    case OP_barrier:
        return "barrier"
    case OP_ldr_lit:
        return "ldr.lit"
    case OP_ldr_reg:
        return "ldr.reg"
    case OP_ldr_mem:
        return "ldr.mem"
    case OP_str_reg:
        return "str.reg"
    case OP_str_mem:
        return "str.mem"
    case OP_mov:
        return "mov"
    case OP_add:
        return "add"
    case OP_sub:
        return "sub"
    case OP_lsl:
        return "lsl"
    case OP_lsr:
        return "lsr"
    case OP_vmul_f64:
        return "vmul.f64"
    case OP_vadd_f64:
        return "vadd.f64"
    case OP_vmla_f64:
        return "vmla.f64"
    case OP_b:
        return "b"
    default:
        panic(fmt.Sprintf("lir: invalid OpCode: 0x%02x", uint8(op)))
    }
}
