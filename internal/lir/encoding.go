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

// EncodingFlags mirrors the flag bits an instruction-encoding table would
// report for an opcode; the optimizer only ever inspects IsLoad/IsStore.
type EncodingFlags struct {
    IsLoad  bool
    IsStore bool
}

var encodingTable = [...]EncodingFlags{
    OP_nop:     {},
    OP_label:   {},
    OP_barrier: {},
    OP_ldr_lit: {IsLoad: true},
    OP_ldr_reg: {IsLoad: true},
    OP_ldr_mem: {IsLoad: true},
    OP_str_reg: {IsStore: true},
    OP_str_mem: {IsStore: true},
    OP_mov:     {},
    OP_add:     {},
    OP_sub:     {},
    OP_lsl:     {},
    OP_lsr:     {},
    OP_vmul_f64: {},
    OP_vadd_f64: {},
    OP_vmla_f64: {},
    OP_b:       {},
}

// OpcodeFlags is the encoding-table lookup collaborator of §6.
func OpcodeFlags(op OpCode) EncodingFlags {
    return encodingTable[op]
}

// RecomputeMask fills in UseMask/DefMask for a freshly synthesized
// instruction, based purely on its opcode and operands. Real backends derive
// this from the machine encoding table; this is the self-contained stand-in
// required to keep the module buildable, and it is always called on a new
// node before any scan inspects it (the invariant of spec.md §3).
func RecomputeMask(i *Instr) {
    switch i.Op {
    case OP_nop, OP_label, OP_barrier:
        if i.Op == OP_barrier {
            i.DefMask = EncodeAll
        }
        return

    case OP_ldr_lit:
        i.UseMask = LITERAL
        i.DefMask = Reg(i.Operands[0])

    case OP_ldr_reg:
        i.UseMask = DALVIK_REG
        i.DefMask = Reg(i.Operands[0])

    case OP_ldr_mem:
        i.UseMask = HEAP_REF | Reg(i.Operands[1])
        i.DefMask = Reg(i.Operands[0])

    case OP_str_reg:
        i.UseMask = Reg(i.Operands[0])
        i.DefMask = DALVIK_REG

    case OP_str_mem:
        i.UseMask = Reg(i.Operands[0]) | Reg(i.Operands[1])
        i.DefMask = HEAP_REF

    case OP_mov:
        i.UseMask = Reg(i.Operands[1])
        i.DefMask = Reg(i.Operands[0])

    case OP_add, OP_sub:
        i.UseMask = Reg(i.Operands[1]) | Reg(i.Operands[2])
        i.DefMask = Reg(i.Operands[0])

    case OP_lsl, OP_lsr:
        i.UseMask = Reg(i.Operands[1])
        i.DefMask = Reg(i.Operands[0])

    case OP_vmul_f64, OP_vadd_f64:
        i.UseMask = Reg(i.Operands[1]) | Reg(i.Operands[2])
        i.DefMask = Reg(i.Operands[0])

    case OP_vmla_f64:
        i.UseMask = Reg(i.Operands[0]) | Reg(i.Operands[1]) | Reg(i.Operands[2])
        i.DefMask = Reg(i.Operands[0])

    case OP_b:
        i.UseMask = REG_PC
        i.DefMask = REG_PC

    default:
        panic("lir: RecomputeMask: unhandled opcode")
    }
}
