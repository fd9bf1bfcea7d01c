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
	"fmt"
)

// Snapshot is a printable view of the machine used for fault reports.
type Snapshot struct {
	State     string            `yaml:"state"`
	Program   string            `yaml:"pc"`
	Condition string            `yaml:"cond"`
	Registers map[string]string `yaml:"registers"`
	Fault     *FaultSnapshot    `yaml:"fault,omitempty"`
}

type FaultSnapshot struct {
	Address     string `yaml:"address"`
	Instruction string `yaml:"instruction"`
	Opcode      string `yaml:"opcode"`
	Message     string `yaml:"message"`
}

func hex(value uint16) string {
	return fmt.Sprintf("0x%04X", value)
}

func (mc *Machine) Snapshot() Snapshot {
	snap := Snapshot{
		State:     mc.state.String(),
		Program:   hex(mc.Registers.Program),
		Condition: ConditionName(mc.Registers.Condition),
		Registers: make(map[string]string, len(mc.Registers.Registers)),
	}

	for i, value := range mc.Registers.Registers {
		snap.Registers[fmt.Sprintf("R%d", i)] = hex(value)
	}

	if mc.fault != nil {
		snap.State = "faulted"
		snap.Fault = &FaultSnapshot{
			Address:     hex(mc.fault.Address),
			Instruction: hex(mc.fault.Instruction),
			Opcode:      fmt.Sprintf("0b%04b", mc.fault.Opcode()),
			Message:     mc.fault.Error(),
		}
	}

	return snap
}
