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
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

// Quiet period after the last write before an image counts as changed.
var settleDelay = 200 * time.Millisecond

var errWatcherClosed = errors.New(f("image watcher closed"))

// waitForChange blocks until one of paths is written or recreated. The
// parent directories are watched so editors that replace files are seen.
func waitForChange(ctx context.Context, paths []string, logger hclog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	defer watcher.Close()

	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool, len(paths))

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		watched[abs] = true

		if dir := filepath.Dir(abs); !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return err
			}

			dirs[dir] = true
		}
	}

	logger.Info("waiting for images to change", "images", len(paths))

	var settle <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return errWatcherClosed
			}

			if !watched[filepath.Clean(event.Name)] {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				logger.Debug("image changed", "path", event.Name)
				settle = time.After(settleDelay)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return errWatcherClosed
			}

			logger.Warn("image watcher", "error", err)

		case <-settle:
			return nil
		}
	}
}
