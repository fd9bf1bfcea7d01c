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

func (rf *RegisterFile) Read(index uint16) uint16 {
	return rf.Registers[index&0x7]
}

func (rf *RegisterFile) Write(index uint16, value uint16) {
	rf.Registers[index&0x7] = value
}

// SetFlags replaces the condition code with the one describing value.
func (rf *RegisterFile) SetFlags(value uint16) {
	if value == 0 {
		rf.Condition = FLAG_ZERO
	} else if value>>15 == 1 {
		rf.Condition = FLAG_NEG
	} else {
		rf.Condition = FLAG_POS
	}
}

func ConditionName(condition uint16) string {
	switch condition {
	case FLAG_POS:
		return "P"
	case FLAG_ZERO:
		return "Z"
	case FLAG_NEG:
		return "N"
	default:
		return "-"
	}
}
