// Released under an MIT license. See LICENSE.

// Package config handles mal.toml runtime configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"
)

// Name is the file name searched for when no path is given.
const Name = "mal.toml"

// Config represents a mal.toml file.
type Config struct {
	Heap    Heap    `toml:"heap"`
	Log     Log     `toml:"log"`
	History History `toml:"history"`
	IO      IO      `toml:"io"`

	// Path is the file the configuration was loaded from, if any.
	Path string `toml:"-"`
}

// Heap bounds the memory used by mal values.
type Heap struct {
	// Limit is the most bytes the heap may hold. Zero selects a default.
	Limit int64 `toml:"limit"`

	// Threshold is the live-value count that triggers a collection.
	// Zero selects a default.
	Threshold int `toml:"threshold"`
}

// Log configures the logging backend.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// History configures the interactive line history.
type History struct {
	File string `toml:"file"`
}

// IO configures file input and output.
type IO struct {
	Encoding string `toml:"encoding"`
}

var log = commonlog.GetLogger("mal.config") //nolint:gochecknoglobals

// Default returns the configuration used when there is no mal.toml.
func Default() *Config {
	c := &Config{}
	c.defaults()

	return c
}

// Load parses the mal.toml file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Path = path

	log.Infof("loaded configuration from %s", path)

	return c, nil
}

// Parse decodes configuration text. Unset values take their defaults.
func Parse(text string) (*Config, error) {
	var c Config

	md, err := toml.Decode(text, &c)
	if err != nil {
		return nil, err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %s", undecoded[0])
	}

	c.defaults()

	return &c, nil
}

// Find loads path if it is not empty. Otherwise it looks for mal.toml in
// the current directory and then in the user's configuration directory.
// If none is found the defaults are returned.
func Find(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	candidates := []string{Name}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "mal", Name))
	}

	for _, p := range candidates {
		c, err := Load(p)
		if err == nil {
			return c, nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	log.Debug("no configuration found, using defaults")

	return Default(), nil
}

func (c *Config) defaults() {
	if c.History.File == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.History.File = filepath.Join(home, ".mal_history")
		}
	}

	if c.IO.Encoding == "" {
		c.IO.Encoding = "utf-8"
	}
}
