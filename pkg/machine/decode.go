// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package machine

import (
	"github.com/lassandro/lc3vm/pkg/encoding"
)

// Instruction is a fetched word; its accessors extract the operand fields.
type Instruction uint16

// Decode classifies word, rejecting opcodes the machine has no semantics for.
func Decode(word uint16) (Instruction, error) {
	inst := Instruction(word)

	switch inst.Opcode() {
	case OP_RTI, OP_RES:
		return inst, ErrIllegalOpcode
	}

	return inst, nil
}

func (inst Instruction) Opcode() uint16 {
	return uint16(inst) >> 12
}

// DR, SR in ST/STI/STR
func (inst Instruction) DR() uint16 {
	return (uint16(inst) >> 9) & 0x7
}

// SR1, SR in NOT, BaseR
func (inst Instruction) SR1() uint16 {
	return (uint16(inst) >> 6) & 0x7
}

func (inst Instruction) SR2() uint16 {
	return uint16(inst) & 0x7
}

// N/Z/P mask of BR
func (inst Instruction) Cond() uint16 {
	return (uint16(inst) >> 9) & 0x7
}

func (inst Instruction) Immediate() bool {
	return (uint16(inst)>>5)&0x1 == 1
}

// JSR (PC-relative) versus JSRR (register)
func (inst Instruction) Long() bool {
	return (uint16(inst)>>11)&0x1 == 1
}

func (inst Instruction) Imm5() uint16 {
	return encoding.SignExtend(uint16(inst), 5)
}

func (inst Instruction) Offset6() uint16 {
	return encoding.SignExtend(uint16(inst), 6)
}

func (inst Instruction) Offset9() uint16 {
	return encoding.SignExtend(uint16(inst), 9)
}

func (inst Instruction) Offset11() uint16 {
	return encoding.SignExtend(uint16(inst), 11)
}

func (inst Instruction) TrapVector() uint16 {
	return encoding.ZeroExtend(uint16(inst), 8)
}
