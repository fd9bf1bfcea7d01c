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

// Offset adds offset to base modulo the size of the address space.
func Offset(base uint16, offset uint16) uint16 {
	return uint16((uint32(base) + uint32(offset)) % MemorySize)
}

// Read returns the word at addr. Reading KBSR polls the keyboard: a pending
// character is latched into KBDR and sets the ready bit, otherwise the status
// word is cleared and KBDR keeps its last value.
func (m *Memory) Read(addr uint16) uint16 {
	if addr == DEV_KBSR {
		var key byte
		var ok bool

		if m.Keyboard != nil {
			key, ok = m.Keyboard.Poll()
		}

		if ok {
			m.Words[DEV_KBSR] = 1 << 15
			m.Words[DEV_KBDR] = uint16(key)
		} else {
			m.Words[DEV_KBSR] = 0
		}
	}

	return m.Words[addr]
}

func (m *Memory) Write(addr uint16, value uint16) {
	m.Words[addr] = value
}

// Peek reads addr without touching any device.
func (m *Memory) Peek(addr uint16) uint16 {
	return m.Words[addr]
}
