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

package console_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassandro/lc3vm/pkg/console"
	"github.com/lassandro/lc3vm/pkg/machine"
)

var _ machine.Console = (*console.Stream)(nil)

func TestStreamPoll(t *testing.T) {
	var input bytes.Buffer

	stream := console.NewStream(&input, nil)

	_, ok := stream.Poll()
	assert.False(t, ok, "no input pending")

	input.WriteString("ok")

	key, ok := stream.Poll()
	require.True(t, ok)
	assert.Equal(t, byte('o'), key)

	key, ok = stream.Poll()
	require.True(t, ok)
	assert.Equal(t, byte('k'), key)

	_, ok = stream.Poll()
	assert.False(t, ok, "input drained")
}

func TestStreamReadKey(t *testing.T) {
	stream := console.NewStream(bytes.NewReader([]byte("z")), nil)

	key, err := stream.ReadKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, byte('z'), key)

	_, err = stream.ReadKey(context.Background())
	assert.ErrorIs(t, err, io.EOF)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = stream.ReadKey(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStreamNoInput(t *testing.T) {
	stream := console.NewStream(nil, nil)

	_, ok := stream.Poll()
	assert.False(t, ok)

	_, err := stream.ReadKey(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestStreamWrite(t *testing.T) {
	var output bytes.Buffer

	stream := console.NewStream(nil, &output)

	_, err := stream.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Empty(t, output.String(), "buffered until flush")

	require.NoError(t, stream.Flush())
	assert.Equal(t, "hello", output.String())
}

func TestStreamPollReaderEOF(t *testing.T) {
	stream := console.NewStream(strings.NewReader("a"), nil)

	key, ok := stream.Poll()
	require.True(t, ok)
	assert.Equal(t, byte('a'), key)

	_, ok = stream.Poll()
	assert.False(t, ok, "an exhausted reader reports no key")
}
