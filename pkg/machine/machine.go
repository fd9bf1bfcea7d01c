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
	"context"

	"github.com/hashicorp/go-hclog"
)

func NewMachine(console Console, logger hclog.Logger) *Machine {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	mc := &Machine{Console: console, Logger: logger}
	mc.Reset()

	return mc
}

// Reset clears memory and registers and puts the machine back in the
// running state with PC at the start of user space.
func (mc *Machine) Reset() {
	mc.Registers = RegisterFile{
		Program:   MEMSPACE_USER,
		Condition: FLAG_ZERO,
	}
	mc.Memory.Words = [MemorySize]uint16{}

	if mc.Console != nil {
		mc.Attach(mc.Console)
	}

	mc.state = Running
	mc.fault = nil
}

// Attach connects console to the trap routines and the keyboard registers.
func (mc *Machine) Attach(console Console) {
	mc.Console = console
	mc.Memory.Keyboard = console
}

func (mc *Machine) State() State {
	return mc.state
}

// Fault returns the fault that stopped the machine, if any.
func (mc *Machine) Fault() *FaultError {
	return mc.fault
}

func (mc *Machine) logger() hclog.Logger {
	if mc.Logger == nil {
		mc.Logger = hclog.NewNullLogger()
	}

	return mc.Logger
}

// Run executes instructions until the machine halts, faults, a trap fails or
// ctx is done. Halting returns nil. State is left as it was after the last
// completed cycle.
func (mc *Machine) Run(ctx context.Context) error {
	done := ctx.Done()

	for mc.state == Running {
		select {
		case <-done:
			return ctx.Err()
		default:
		}

		if err := mc.Step(ctx); err != nil {
			return err
		}
	}

	return nil
}

// Step executes a single instruction.
func (mc *Machine) Step(ctx context.Context) error {
	if mc.fault != nil {
		return mc.fault
	}

	if mc.state == Halted {
		return ErrHalted
	}

	rf := &mc.Registers
	addr := rf.Program
	instruction, err := Decode(mc.Memory.Read(addr))

	rf.Program = Offset(rf.Program, 1)

	if err != nil {
		mc.fault = &FaultError{Address: addr, Instruction: uint16(instruction)}
		mc.logger().Debug(
			"fault", "pc", hclog.Fmt("%#04x", addr),
			"instruction", hclog.Fmt("%#04x", uint16(instruction)),
		)
		return mc.fault
	}

	switch instruction.Opcode() {
	// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
	// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_ADD:
		dest := instruction.DR()

		if instruction.Immediate() {
			rf.Write(dest, rf.Read(instruction.SR1())+instruction.Imm5())
		} else {
			rf.Write(dest, rf.Read(instruction.SR1())+rf.Read(instruction.SR2()))
		}

		rf.SetFlags(rf.Read(dest))

	// AND  |0101    |DR   |SR1  |0|00 |SR2   | Register  bitwise
	// AND  |0101    |DR   |SR1  |1|imm5      | Immediate bitwise
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_AND:
		dest := instruction.DR()

		if instruction.Immediate() {
			rf.Write(dest, rf.Read(instruction.SR1())&instruction.Imm5())
		} else {
			rf.Write(dest, rf.Read(instruction.SR1())&rf.Read(instruction.SR2()))
		}

		rf.SetFlags(rf.Read(dest))

	// NOT  |1001    |DR   |SR   |1|11111     | Bitwise complement
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_NOT:
		dest := instruction.DR()

		rf.Write(dest, ^rf.Read(instruction.SR1()))

		rf.SetFlags(rf.Read(dest))

	// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_BR:
		if instruction.Cond()&rf.Condition != 0 {
			rf.Program = Offset(rf.Program, instruction.Offset9())
		}

	// JMP  |1100    |000  |BaseR|000000      | Jump
	// RET  |1100    |000  |111  |000000      | Return
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JMP:
		rf.Program = rf.Read(instruction.SR1())

	// JSR  |0100    |1|PCoffset11            | Jump to subroutine
	// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JSR:
		// BaseR is read first so JSRR R7 jumps to the old R7
		target := rf.Read(instruction.SR1())

		if instruction.Long() {
			target = Offset(rf.Program, instruction.Offset11())
		}

		rf.Write(7, rf.Program)
		rf.Program = target

	// LD   |0010    |DR   |PCoffset9         | Load
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LD:
		dest := instruction.DR()

		rf.Write(dest, mc.Memory.Read(Offset(rf.Program, instruction.Offset9())))

		rf.SetFlags(rf.Read(dest))

	// LDI  |1010    |DR   |PCoffset9         | Load indirect
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LDI:
		dest := instruction.DR()
		pointer := mc.Memory.Read(Offset(rf.Program, instruction.Offset9()))

		rf.Write(dest, mc.Memory.Read(pointer))

		rf.SetFlags(rf.Read(dest))

	// LDR  |0110    |DR   |BaseR|offset6     | Load base+offset
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LDR:
		dest := instruction.DR()
		addr := Offset(rf.Read(instruction.SR1()), instruction.Offset6())

		rf.Write(dest, mc.Memory.Read(addr))

		rf.SetFlags(rf.Read(dest))

	// LEA  |1110    |DR   |PCoffset9         | Load effective address
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LEA:
		dest := instruction.DR()

		rf.Write(dest, Offset(rf.Program, instruction.Offset9()))

		rf.SetFlags(rf.Read(dest))

	// ST   |0011    |SR   |PCoffset9         | Store
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_ST:
		addr := Offset(rf.Program, instruction.Offset9())

		mc.Memory.Write(addr, rf.Read(instruction.DR()))

	// STI  |1011    |SR   |PCoffset9         | Store indirect
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_STI:
		pointer := mc.Memory.Read(Offset(rf.Program, instruction.Offset9()))

		mc.Memory.Write(pointer, rf.Read(instruction.DR()))

	// STR  |0111    |SR   |BaseR|offset6     | Store base+offset
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_STR:
		addr := Offset(rf.Read(instruction.SR1()), instruction.Offset6())

		mc.Memory.Write(addr, rf.Read(instruction.DR()))

	// TRAP |1111    |0000   |trapvect8       | System call
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_TRAP:
		return mc.trap(ctx, instruction.TrapVector())
	}

	return nil
}
