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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassandro/lc3vm/internal/config"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	flags := pflag.NewFlagSet("lc3vm", pflag.ContinueOnError)
	config.RegisterFlags(flags)
	require.NoError(t, flags.Parse(args))

	return flags
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lc3vm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Entry)
	assert.True(t, cfg.Raw)
	assert.False(t, cfg.Watch)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Log.MaxSize)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
	assert.Equal(t, 28, cfg.Log.MaxAge)

	_, ok, err := cfg.EntryPoint()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfigFile(t *testing.T) {
	path := writeConfig(t, `
entry: x4000
raw: false
dump: fault.yaml
log:
  level: debug
  file: lc3vm.log
  max_backups: 7
`)

	cfg, err := config.Load(newFlags(t, "--config", path))
	require.NoError(t, err)

	assert.False(t, cfg.Raw)
	assert.Equal(t, "fault.yaml", cfg.Dump)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "lc3vm.log", cfg.Log.File)
	assert.Equal(t, 7, cfg.Log.MaxBackups)
	assert.Equal(t, 10, cfg.Log.MaxSize)

	addr, ok, err := cfg.EntryPoint()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint16(0x4000), addr)
}

func TestConfigFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "lc3vm.yaml"), []byte("watch: true\n"), 0o644,
	))
	chdir(t, dir)

	cfg, err := config.Load(newFlags(t))
	require.NoError(t, err)
	assert.True(t, cfg.Watch)
}

func TestPrecedence(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\nentry: x4000\n")

	t.Setenv("LC3VM_LOG_LEVEL", "error")
	t.Setenv("LC3VM_ENTRY", "x5000")

	cfg, err := config.Load(newFlags(t, "--config", path, "--entry", "x6000"))
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level, "environment beats file")
	assert.Equal(t, "x6000", cfg.Entry, "flags beat environment")
}

func TestMissingConfigFile(t *testing.T) {
	_, err := config.Load(newFlags(
		t, "--config", filepath.Join(t.TempDir(), "missing.yaml"),
	))
	assert.Error(t, err)
}

func TestBadEntry(t *testing.T) {
	cfg := config.Config{Entry: "3000"}

	_, _, err := cfg.EntryPoint()
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test, restoring
// it on cleanup (equivalent to testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
