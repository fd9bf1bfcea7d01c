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

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sys/unix"
)

// Milliseconds between context checks while blocked in ReadKey.
const readInterval = 50

// Terminal is the host console. Opened in raw mode it switches off line
// buffering and echo until Close.
type Terminal struct {
	fd      int
	out     *bufio.Writer
	restore *unix.Termios
	logger  hclog.Logger
}

// Open attaches a console to in and out. With raw set and in a terminal, the
// terminal leaves canonical mode; callers must Close to restore it.
func Open(in *os.File, out io.Writer, raw bool, logger hclog.Logger) (*Terminal, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	term := &Terminal{
		fd:     int(in.Fd()),
		out:    bufio.NewWriter(out),
		logger: logger,
	}

	if !raw {
		return term, nil
	}

	termios, err := unix.IoctlGetTermios(term.fd, ioctlGetTermios)

	if errors.Is(err, unix.ENOTTY) {
		logger.Debug("input is not a terminal, raw mode skipped", "fd", term.fd)
		return term, nil
	} else if err != nil {
		return nil, err
	}

	restore := *termios
	termstate := *termios

	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	termstate.Cflag &^= unix.CSIZE | unix.PARENB
	termstate.Cflag |= unix.CS8

	termstate.Cc[unix.VMIN] = 1
	termstate.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(term.fd, ioctlSetTermios, &termstate); err != nil {
		return nil, err
	}

	term.restore = &restore
	logger.Debug("terminal in raw mode", "fd", term.fd)

	return term, nil
}

// Close flushes pending output and restores the terminal. It is safe to call
// more than once.
func (t *Terminal) Close() error {
	err := t.out.Flush()

	if t.restore != nil {
		if rerr := unix.IoctlSetTermios(
			t.fd, ioctlSetTermios, t.restore,
		); rerr != nil {
			err = errors.Join(err, rerr)
		} else {
			t.logger.Debug("terminal restored", "fd", t.fd)
		}

		t.restore = nil
	}

	return err
}

func (t *Terminal) Raw() bool {
	return t.restore != nil
}

func (t *Terminal) Poll() (byte, bool) {
	ready, err := t.wait(0)
	if err != nil {
		t.logger.Trace("keyboard poll failed", "error", err)
		return 0, false
	}

	if !ready {
		return 0, false
	}

	key, err := t.read()
	if err != nil {
		return 0, false
	}

	return key, true
}

func (t *Terminal) ReadKey(ctx context.Context) (byte, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		ready, err := t.wait(readInterval)
		if err != nil {
			return 0, err
		}

		if ready {
			return t.read()
		}
	}
}

func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

func (t *Terminal) Flush() error {
	return t.out.Flush()
}

// wait reports whether a read on the input would not block.
func (t *Terminal) wait(timeout int) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(t.fd), Events: unix.POLLIN}}

	n, err := unix.Poll(fds, timeout)

	if errors.Is(err, unix.EINTR) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	return n > 0 && fds[0].Revents&(unix.POLLIN|unix.POLLHUP) != 0, nil
}

func (t *Terminal) read() (byte, error) {
	scratch := make([]byte, 1)

	for {
		n, err := unix.Read(t.fd, scratch)

		if errors.Is(err, unix.EINTR) {
			continue
		} else if err != nil {
			return 0, err
		} else if n == 0 {
			return 0, io.EOF
		}

		return scratch[0], nil
	}
}
