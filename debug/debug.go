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

// Package debug renders a superblock's LIR as ARM-flavored assembly text,
// for dumping optimizer state before and after a pass runs.
package debug

import (
	"fmt"
	"strings"

	"golang.org/x/arch/arm/armasm"

	"github.com/bytedance/armlo/internal/lir"
)

// Disassemble renders every instruction strictly between head and tail,
// one per line, using ARM register and shift mnemonics. Nop'd instructions
// are still printed, prefixed with a semicolon, so a before/after diff shows
// exactly what the optimizer removed.
func Disassemble(head, tail *lir.Instr) string {
	var b strings.Builder

	for p := head.Ln; p != nil && p != tail; p = p.Ln {
		line := disassemble(p)

		if p.Flags.IsNop {
			b.WriteString("; ")
		}

		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String()
}

func reg(r int32) string {
	if r < 0 {
		return "-"
	}
	return armasm.Reg(int(armasm.R0) + int(r)).String()
}

func dreg(r int32) string {
	return fmt.Sprintf("d%d", r)
}

func shiftOperand(v int32) string {
	amount, kind := lir.UnpackShift(v)

	name := "lsl"
	if kind == lir.ShiftLSR {
		name = "lsr"
	}

	return fmt.Sprintf("%s #%d", name, amount)
}

func disassemble(self *lir.Instr) string {
	switch self.Op {
	case lir.OP_nop:
		return "nop"
	case lir.OP_label:
		return "label"
	case lir.OP_barrier:
		return "barrier"

	case lir.OP_ldr_lit:
		return fmt.Sprintf("ldr     %s, =lit(base=%d)", reg(self.Operands[0]), self.Alias.Base)
	case lir.OP_ldr_reg:
		return fmt.Sprintf("ldr     %s, [spill+%d]", reg(self.Operands[0]), self.Alias.Base)
	case lir.OP_ldr_mem:
		return fmt.Sprintf("ldr     %s, [%s]", reg(self.Operands[0]), reg(self.Operands[1]))
	case lir.OP_str_reg:
		return fmt.Sprintf("str     %s, [spill+%d]", reg(self.Operands[0]), self.Alias.Base)
	case lir.OP_str_mem:
		return fmt.Sprintf("str     %s, [%s]", reg(self.Operands[0]), reg(self.Operands[1]))

	case lir.OP_mov:
		return fmt.Sprintf("mov     %s, %s", reg(self.Operands[0]), reg(self.Operands[1]))
	case lir.OP_add:
		if self.Operands[3] != 0 {
			return fmt.Sprintf("add     %s, %s, %s, %s", reg(self.Operands[0]), reg(self.Operands[1]), reg(self.Operands[2]), shiftOperand(self.Operands[3]))
		}
		return fmt.Sprintf("add     %s, %s, %s", reg(self.Operands[0]), reg(self.Operands[1]), reg(self.Operands[2]))
	case lir.OP_sub:
		return fmt.Sprintf("sub     %s, %s, %s", reg(self.Operands[0]), reg(self.Operands[1]), reg(self.Operands[2]))
	case lir.OP_lsl:
		return fmt.Sprintf("lsl     %s, %s, #%d", reg(self.Operands[0]), reg(self.Operands[1]), self.Operands[2])
	case lir.OP_lsr:
		return fmt.Sprintf("lsr     %s, %s, #%d", reg(self.Operands[0]), reg(self.Operands[1]), self.Operands[2])

	case lir.OP_vmul_f64:
		return fmt.Sprintf("vmul.f64 %s, %s, %s", dreg(self.Operands[0]), dreg(self.Operands[1]), dreg(self.Operands[2]))
	case lir.OP_vadd_f64:
		return fmt.Sprintf("vadd.f64 %s, %s, %s", dreg(self.Operands[0]), dreg(self.Operands[1]), dreg(self.Operands[2]))
	case lir.OP_vmla_f64:
		return fmt.Sprintf("vmla.f64 %s, %s, %s", dreg(self.Operands[0]), dreg(self.Operands[1]), dreg(self.Operands[2]))

	case lir.OP_b:
		return "b       <barrier>"

	default:
		panic(fmt.Sprintf("debug: invalid OpCode: 0x%02x", self.Op))
	}
}
