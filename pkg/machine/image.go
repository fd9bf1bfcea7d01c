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
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/hashicorp/go-hclog"
)

// LoadImage copies a program image into memory and returns its origin. The
// image is a big-endian origin word followed by the words to place at
// consecutive addresses from the origin. Words past the end of memory are
// dropped.
func (mc *Machine) LoadImage(reader io.Reader) (uint16, error) {
	buffered := bufio.NewReader(reader)
	scratch := make([]byte, 2)

	if _, err := io.ReadFull(buffered, scratch); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, ErrImageEmpty
		} else if errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, ErrImageTruncated
		}

		return 0, err
	}

	origin := binary.BigEndian.Uint16(scratch)
	index := uint32(origin)

	for index < MemorySize {
		_, err := io.ReadFull(buffered, scratch)

		if errors.Is(err, io.EOF) {
			return origin, nil
		} else if errors.Is(err, io.ErrUnexpectedEOF) {
			return origin, ErrImageTruncated
		} else if err != nil {
			return origin, err
		}

		mc.Memory.Words[index] = binary.BigEndian.Uint16(scratch)
		index++
	}

	if _, err := buffered.Peek(1); err == nil {
		mc.logger().Warn(
			"image runs past the end of memory, truncated",
			"origin", hclog.Fmt("%#04x", origin),
		)
	}

	return origin, nil
}
