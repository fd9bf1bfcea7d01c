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

package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassandro/lc3vm/pkg/encoding"
)

func TestSignExtend(t *testing.T) {
	tests := []struct {
		Name  string
		Value uint16
		Bits  uint16
		Want  uint16
	}{
		{"imm5 -1", 0x1F, 5, 0xFFFF},
		{"imm5 15", 0x0F, 5, 0x000F},
		{"imm5 -16", 0x10, 5, 0xFFF0},
		{"imm5 zero", 0x00, 5, 0x0000},
		{"offset6 -32", 0x20, 6, 0xFFE0},
		{"offset6 31", 0x1F, 6, 0x001F},
		{"offset9 -1", 0x1FF, 9, 0xFFFF},
		{"offset9 255", 0x0FF, 9, 0x00FF},
		{"offset11 -1024", 0x400, 11, 0xFC00},
		{"offset11 1023", 0x3FF, 11, 0x03FF},
		{"ignores bits above field", 0xFFEF, 5, 0x000F},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			assert.Equalf(
				t, test.Want, encoding.SignExtend(test.Value, test.Bits),
				"SignExtend(%#04x, %d)", test.Value, test.Bits,
			)
		})
	}
}

func TestZeroExtend(t *testing.T) {
	assert.Equal(t, uint16(0x00FF), encoding.ZeroExtend(0xF0FF, 8))
	assert.Equal(t, uint16(0x0080), encoding.ZeroExtend(0x0080, 8))
	assert.Equal(t, uint16(0xFFFF), encoding.ZeroExtend(0xFFFF, 16))
}

func TestDecodeHex(t *testing.T) {
	for input, want := range map[string]uint16{
		"0x3000": 0x3000,
		"x3000":  0x3000,
		"X3000":  0x3000,
		"0xFF":   0x00FF,
		"xff":    0x00FF,
		" x10 ":  0x0010,
	} {
		have, err := encoding.DecodeHex(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, have, input)
	}

	for _, input := range []string{"3000", "", "1x30", "0x10000", "xZZ"} {
		_, err := encoding.DecodeHex(input)
		assert.Error(t, err, input)
	}
}
