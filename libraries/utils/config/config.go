// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the settings shared by the containers, scene caches and the shared scene
// cache from YAML or TOML files.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/dolthub/cortex/store/attributecache"
	"github.com/dolthub/cortex/store/fio"
	"github.com/dolthub/cortex/store/object"
	"github.com/dolthub/cortex/store/scene"
)

// Format is the syntax of a config file.
type Format int

const (
	YAML Format = iota
	TOML
)

var ErrUnknownFormat = errors.New("unknown config file format")

type Config struct {
	// LogLevel is any level understood by logrus.ParseLevel.
	LogLevel string `yaml:"log_level" toml:"log_level" default:"info"`

	// MaxScenes bounds the shared scene cache. Values below 1 are raised to 1 by Validate.
	MaxScenes int `yaml:"max_scenes" toml:"max_scenes" default:"200"`

	SyncOnCommit bool `yaml:"sync_on_commit" toml:"sync_on_commit" default:"true"`
	LockWriters  bool `yaml:"lock_writers" toml:"lock_writers" default:"true"`
}

// Default returns a Config holding the default of every field.
func Default() (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to apply config defaults")
	}
	return &cfg, nil
}

// FormatOf picks the format from a file extension: .yaml and .yml are YAML, .toml is TOML.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return 0, errors.Wrapf(ErrUnknownFormat, "'%s'", path)
	}
}

// Load reads and validates the config file at |path|. Fields missing from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file '%s'", path)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file '%s'", path)
	}
	return cfg, nil
}

// Parse decodes and validates |data|. Unknown keys are an error.
func Parse(data []byte, format Format) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// an empty document leaves the defaults in place
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "invalid yaml")
		}
	case TOML:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, errors.Wrap(err, "invalid toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("unknown toml key '%s'", undecoded[0].String())
		}
	default:
		return nil, ErrUnknownFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the log level and clamps out of range values.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log_level")
	}
	if c.MaxScenes < 1 {
		c.MaxScenes = 1
	}
	return nil
}

// Logger returns a logrus logger at the configured level.
func (c *Config) Logger() (*logrus.Entry, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "invalid log_level")
	}
	l := logrus.New()
	l.SetLevel(level)
	return logrus.NewEntry(l), nil
}

func (c *Config) FileOptions(log *logrus.Entry) fio.Options {
	return fio.Options{
		LockWriters:  c.LockWriters,
		SyncOnCommit: c.SyncOnCommit,
		Logger:       log,
	}
}

func (c *Config) SceneOptions(log *logrus.Entry) scene.Options {
	return scene.Options{
		File:     c.FileOptions(log),
		Registry: object.DefaultRegistry(),
		Logger:   log,
	}
}

func (c *Config) SharedOptions(log *logrus.Entry) scene.SharedOptions {
	return scene.SharedOptions{
		MaxScenes: c.MaxScenes,
		Scene:     c.SceneOptions(log),
	}
}

func (c *Config) AttributeCacheOptions(log *logrus.Entry) attributecache.Options {
	return attributecache.Options{
		File:     c.FileOptions(log),
		Registry: object.DefaultRegistry(),
		Logger:   log,
	}
}
