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

// trap runs the built-in service routine for vector. R7 is left untouched.
func (mc *Machine) trap(ctx context.Context, vector uint16) error {
	if _, known := trapNames[vector]; !known {
		mc.logger().Warn(
			"ignoring unknown trap vector",
			"vector", hclog.Fmt("%#02x", vector),
			"pc", hclog.Fmt("%#04x", mc.Registers.Program),
		)
		return nil
	}

	var err error

	switch vector {
	case TRAP_GETC:
		err = mc.trapGetc(ctx)
	case TRAP_OUT:
		err = mc.trapOut()
	case TRAP_PUTS:
		err = mc.trapPuts()
	case TRAP_IN:
		err = mc.trapIn(ctx)
	case TRAP_PUTSP:
		err = mc.trapPutsp()
	case TRAP_HALT:
		err = mc.trapHalt()
	}

	if err != nil {
		return &TrapError{Vector: vector, Err: err}
	}

	return nil
}

func (mc *Machine) trapGetc(ctx context.Context) error {
	key, err := mc.readKey(ctx)
	if err != nil {
		return err
	}

	mc.Registers.Write(0, uint16(key))
	return nil
}

func (mc *Machine) trapOut() error {
	return mc.print([]byte{byte(mc.Registers.Read(0))})
}

// One character per word, low byte.
func (mc *Machine) trapPuts() error {
	var out []byte

	addr := mc.Registers.Read(0)

	for i := 0; i < MemorySize; i++ {
		word := mc.Memory.Peek(addr)
		if word == 0 {
			break
		}

		out = append(out, byte(word))
		addr = Offset(addr, 1)
	}

	return mc.print(out)
}

func (mc *Machine) trapIn(ctx context.Context) error {
	if err := mc.print([]byte(f("Enter a character: "))); err != nil {
		return err
	}

	key, err := mc.readKey(ctx)
	if err != nil {
		return err
	}

	mc.Registers.Write(0, uint16(key))
	return mc.print([]byte{key})
}

// Two characters per word, low byte first; a zero high byte ends the word.
func (mc *Machine) trapPutsp() error {
	var out []byte

	addr := mc.Registers.Read(0)

	for i := 0; i < MemorySize; i++ {
		word := mc.Memory.Peek(addr)
		if word == 0 {
			break
		}

		out = append(out, byte(word))

		if high := byte(word >> 8); high != 0 {
			out = append(out, high)
		}

		addr = Offset(addr, 1)
	}

	return mc.print(out)
}

func (mc *Machine) trapHalt() error {
	mc.state = Halted
	mc.logger().Debug("halted", "pc", hclog.Fmt("%#04x", mc.Registers.Program))

	if mc.Console == nil {
		return nil
	}

	return mc.print([]byte(f("HALT") + "\n"))
}

func (mc *Machine) readKey(ctx context.Context) (byte, error) {
	if mc.Console == nil {
		return 0, ErrNoConsole
	}

	return mc.Console.ReadKey(ctx)
}

func (mc *Machine) print(out []byte) error {
	if mc.Console == nil {
		return ErrNoConsole
	}

	if len(out) > 0 {
		if _, err := mc.Console.Write(out); err != nil {
			return err
		}
	}

	return mc.Console.Flush()
}
