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

package console

import (
	"bufio"
	"context"
	"io"
)

// Stream is a console over plain readers and writers. A key is available to
// Poll whenever the reader can produce a byte without error.
type Stream struct {
	Input  *bufio.Reader
	Output *bufio.Writer
}

func NewStream(in io.Reader, out io.Writer) *Stream {
	var stream Stream

	if in != nil {
		stream.Input = bufio.NewReader(in)
	}

	if out == nil {
		out = io.Discard
	}

	stream.Output = bufio.NewWriter(out)

	return &stream
}

// Poll reads the next input byte. It only keeps the Keyboard promise of never
// waiting when the input never blocks, as with a bytes.Buffer or
// strings.Reader. Use a Terminal for pipes, sockets and ttys.
func (s *Stream) Poll() (byte, bool) {
	if s.Input == nil {
		return 0, false
	}

	key, err := s.Input.ReadByte()
	if err != nil {
		return 0, false
	}

	return key, true
}

func (s *Stream) ReadKey(ctx context.Context) (byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if s.Input == nil {
		return 0, io.EOF
	}

	return s.Input.ReadByte()
}

func (s *Stream) Write(p []byte) (int, error) {
	return s.Output.Write(p)
}

func (s *Stream) Flush() error {
	return s.Output.Flush()
}
