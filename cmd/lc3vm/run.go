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
	"os"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"

	"github.com/lassandro/lc3vm/internal/config"
	"github.com/lassandro/lc3vm/internal/logging"
	"github.com/lassandro/lc3vm/pkg/console"
	"github.com/lassandro/lc3vm/pkg/machine"
)

// boot builds a machine from the images at paths. PC starts at entry when
// set, otherwise at the origin of the first image.
func boot(paths []string, entry uint16, hasEntry bool, logger hclog.Logger) (*machine.Machine, error) {
	mc := machine.NewMachine(nil, logger)

	for i, path := range paths {
		origin, err := loadImage(mc, path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		logger.Info("image loaded", "path", path, "origin", hclog.Fmt("%#04x", origin))

		if i == 0 {
			mc.Registers.Program = origin
		}
	}

	if hasEntry {
		mc.Registers.Program = entry
	}

	return mc, nil
}

func loadImage(mc *machine.Machine, path string) (uint16, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}

	defer file.Close()

	return mc.LoadImage(file)
}

func run(ctx context.Context, cfg *config.Config, paths []string, std streams) error {
	logger, closer, err := logging.New("lc3vm", cfg.Log, std.err)
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}

	defer closer.Close()

	entry, hasEntry, err := cfg.EntryPoint()
	if err != nil {
		return &exitError{code: exitUsage, err: fmt.Errorf("entry: %w", err)}
	}

	mc, err := boot(paths, entry, hasEntry, logger)
	if err != nil {
		return &exitError{code: exitFailure, err: err}
	}

	term, err := console.Open(std.in, std.out, cfg.Raw, logger)
	if err != nil {
		return &exitError{code: exitFailure, err: err}
	}

	defer term.Close()

	for {
		mc.Attach(term)

		err := session(ctx, mc, cfg, std, logger)

		if exitCode(err) == exitInterrupt {
			newline(term, logger)
			return err
		}

		if !cfg.Watch {
			return err
		}

		if err != nil {
			logger.Error("run failed", "error", err)
		}

		mc, err = reload(ctx, paths, entry, hasEntry, logger)

		if errors.Is(err, context.Canceled) {
			newline(term, logger)
			return &exitError{code: exitInterrupt, err: err}
		} else if err != nil {
			return &exitError{code: exitFailure, err: err}
		}
	}
}

// newline moves the shell prompt off the interrupted program's last line.
func newline(term machine.Console, logger hclog.Logger) {
	if _, err := term.Write([]byte("\n")); err != nil {
		logger.Debug("interrupt newline", "error", err)
		return
	}

	if err := term.Flush(); err != nil {
		logger.Debug("interrupt newline", "error", err)
	}
}

// reload waits for one of paths to change and boots a fresh machine from
// them. Images that fail to load are reported and waited on again.
func reload(ctx context.Context, paths []string, entry uint16, hasEntry bool, logger hclog.Logger) (*machine.Machine, error) {
	for {
		if err := waitForChange(ctx, paths, logger); err != nil {
			return nil, err
		}

		mc, err := boot(paths, entry, hasEntry, logger)
		if err != nil {
			logger.Error("reload failed", "error", err)
			continue
		}

		return mc, nil
	}
}

// session runs mc to completion under its own id.
func session(ctx context.Context, mc *machine.Machine, cfg *config.Config, std streams, logger hclog.Logger) error {
	logger = logger.With("session", uuid.NewString())
	mc.Logger = logger

	logger.Info("running", "pc", hclog.Fmt("%#04x", mc.Registers.Program))

	err := mc.Run(ctx)

	var fault *machine.FaultError

	switch {
	case err == nil:
		logger.Info("halted")
		return nil

	case errors.As(err, &fault):
		logger.Error("fault", "error", err)

		if cfg.Dump != "" {
			if derr := dump(cfg.Dump, mc.Snapshot(), std.err); derr != nil {
				logger.Error("fault dump failed", "path", cfg.Dump, "error", derr)
			}
		}

		return &exitError{code: exitFault, err: err}

	case errors.Is(err, context.Canceled):
		logger.Info("interrupted", "pc", hclog.Fmt("%#04x", mc.Registers.Program))
		return &exitError{code: exitInterrupt, err: err}

	default:
		return &exitError{code: exitFailure, err: err}
	}
}

// dump writes snap as YAML to path, or to stderr for "-".
func dump(path string, snap machine.Snapshot, stderr io.Writer) error {
	var out io.Writer = stderr

	if path != "-" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}

		defer file.Close()
		out = file
	}

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)

	if err := encoder.Encode(snap); err != nil {
		return err
	}

	return encoder.Close()
}
