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
	"errors"

	"github.com/lassandro/lc3vm/internal/translate"
)

var f = translate.From

var (
	ErrIllegalOpcode  = errors.New(f("illegal opcode"))
	ErrHalted         = errors.New(f("machine halted"))
	ErrNoConsole      = errors.New(f("no console attached"))
	ErrImageEmpty     = errors.New(f("image has no origin"))
	ErrImageTruncated = errors.New(f("image ends mid-word"))
)

// FaultError reports an instruction the machine cannot execute.
type FaultError struct {
	Address     uint16
	Instruction uint16
}

func (err *FaultError) Opcode() uint16 {
	return err.Instruction >> 12
}

func (err *FaultError) Error() string {
	return f(
		"%#04x: %v %#04x (instruction %#04x)",
		err.Address, ErrIllegalOpcode, err.Opcode(), err.Instruction,
	)
}

func (err *FaultError) Unwrap() error {
	return ErrIllegalOpcode
}

// TrapError reports a console failure inside a trap routine.
type TrapError struct {
	Vector uint16
	Err    error
}

func (err *TrapError) Error() string {
	name, ok := trapNames[err.Vector]
	if !ok {
		name = f("%#02x", err.Vector)
	}

	return f("trap %s: %v", name, err.Err)
}

func (err *TrapError) Unwrap() error {
	return err.Err
}
