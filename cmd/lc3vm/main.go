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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lassandro/lc3vm/internal/config"
	"github.com/lassandro/lc3vm/internal/translate"
)

var f = translate.From

const usage = "lc3vm [flags] image..."

const (
	exitOK        = 0
	exitFailure   = 1
	exitUsage     = 2
	exitFault     = 3
	exitInterrupt = 130
)

var errNoImages = errors.New(f("no program image given"))

type exitError struct {
	code int
	err  error
}

func (err *exitError) Error() string {
	return err.err.Error()
}

func (err *exitError) Unwrap() error {
	return err.err
}

// streams are the host files the emulated console is bound to.
type streams struct {
	in  *os.File
	out io.Writer
	err io.Writer
}

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func newRootCommand(std streams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   usage,
		Short: f("Run LC-3 program images"),
		Long: f("lc3vm loads one or more LC-3 object images into a 16-bit " +
			"machine and runs it from the origin of the first image until " +
			"the program halts."),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &exitError{code: exitUsage, err: errNoImages}
			}

			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return &exitError{code: exitUsage, err: err}
			}

			return run(cmd.Context(), cfg, args, std)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: exitUsage, err: err}
	})
	cmd.SetOut(std.out)
	cmd.SetErr(std.err)

	config.RegisterFlags(cmd.Flags())

	return cmd
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}

	return exitFailure
}

func execute(ctx context.Context, args []string, std streams) int {
	cmd := newRootCommand(std)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	code := exitCode(err)

	switch code {
	case exitOK, exitInterrupt:
	case exitUsage:
		log.Println(err)
		log.Println(usage)
	default:
		log.Println(err)
	}

	return code
}

func lc3vm() int {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	return execute(ctx, os.Args[1:], streams{
		in:  os.Stdin,
		out: os.Stdout,
		err: os.Stderr,
	})
}

func main() {
	os.Exit(lc3vm())
}
