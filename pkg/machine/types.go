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
	"io"

	"github.com/hashicorp/go-hclog"
)

// Keyboard is the device behind KBSR/KBDR.
type Keyboard interface {
	// Poll consumes and returns a pending character. It never waits.
	Poll() (key byte, ok bool)
}

// Console is the host side of the trap routines.
type Console interface {
	Keyboard
	io.Writer

	// ReadKey blocks until a character arrives or ctx is done.
	ReadKey(ctx context.Context) (byte, error)
	Flush() error
}

type State uint8

const (
	Running State = iota
	Halted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	default:
		return "unknown"
	}
}

type RegisterFile struct {
	Registers [8]uint16
	Program   uint16
	Condition uint16
}

type Memory struct {
	Words    [MemorySize]uint16
	Keyboard Keyboard
}

type Machine struct {
	Console   Console
	Logger    hclog.Logger
	Registers RegisterFile
	Memory    Memory

	state State
	fault *FaultError
}
