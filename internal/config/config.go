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

package config

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lassandro/lc3vm/pkg/encoding"
)

const EnvPrefix = "LC3VM"

type Log struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

type Config struct {
	Entry string `mapstructure:"entry"`
	Raw   bool   `mapstructure:"raw"`
	Watch bool   `mapstructure:"watch"`
	Dump  string `mapstructure:"dump"`
	Log   Log    `mapstructure:"log"`
}

// Config keys and the flags that override them
var flagKeys = map[string]string{
	"entry":           "entry",
	"raw":             "raw",
	"watch":           "watch",
	"dump":            "dump",
	"log.level":       "log-level",
	"log.file":        "log-file",
	"log.max_size":    "log-max-size",
	"log.max_backups": "log-max-backups",
	"log.max_age":     "log-max-age",
}

func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Path to a config file (default ./lc3vm.yaml)")
	flags.String("entry", "", "Start address in hex, e.g. x3000 (default: origin of the first image)")
	flags.Bool("raw", true, "Switch the terminal to raw mode while running")
	flags.Bool("watch", false, "Run again whenever an image changes")
	flags.String("dump", "", "Write a YAML machine snapshot here on fault ('-' for stderr)")
	flags.String("log-level", "warn", "Log level: trace, debug, info, warn, error")
	flags.String("log-file", "", "Write logs to a rotated file instead of stderr")
	flags.Int("log-max-size", 10, "Log file size in megabytes before rotation")
	flags.Int("log-max-backups", 3, "Rotated log files to keep")
	flags.Int("log-max-age", 28, "Days to keep rotated log files")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("entry", "")
	v.SetDefault("raw", true)
	v.SetDefault("watch", false)
	v.SetDefault("dump", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
}

// Load merges flags, LC3VM_* environment variables, the config file and
// defaults, in that order of precedence.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var path string

	if flags != nil {
		for key, name := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, err
				}
			}
		}

		path, _ = flags.GetString("config")
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("lc3vm")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lc3vm")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError

		if path != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// EntryPoint decodes the entry override. ok is false when none is set.
func (cfg *Config) EntryPoint() (addr uint16, ok bool, err error) {
	if strings.TrimSpace(cfg.Entry) == "" {
		return 0, false, nil
	}

	addr, err = encoding.DecodeHex(cfg.Entry)
	if err != nil {
		return 0, false, err
	}

	return addr, true, nil
}
