// Package config loads settings of the realpath command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ngicks/go-fsys-helper/realpath"
	"gopkg.in/yaml.v3"
)

// Config holds command settings. Zero fields are filled by [Config.Fill].
type Config struct {
	// MaxSymlinks bounds symlink expansions per path.
	MaxSymlinks int `yaml:"max_symlinks"`
	// Size is the capacity of the output buffer, including the terminating NUL.
	Size int `yaml:"size"`
	// Root, if set, makes resolution happen under this OS directory.
	Root string `yaml:"root"`
	// Wd is the working directory relative paths are resolved from.
	// If Root is set, Wd is interpreted under Root.
	Wd string `yaml:"wd"`
	// Table prints results as a table.
	Table bool `yaml:"table"`
	// Partial prints the resolved prefix of failed paths.
	Partial bool `yaml:"partial"`
	// Verbose enables debug logs.
	Verbose bool `yaml:"verbose"`
}

func Default() Config {
	return Config{
		MaxSymlinks: realpath.DefaultMaxSymlinks,
		Size:        realpath.PathMax,
	}
}

// Fill sets zero or negative numeric fields to their defaults.
func (c Config) Fill() Config {
	d := Default()
	if c.MaxSymlinks <= 0 {
		c.MaxSymlinks = d.MaxSymlinks
	}
	if c.Size <= 0 {
		c.Size = d.Size
	}
	return c
}

// Load reads a yaml file at path.
// Unknown keys are rejected. The result is filled with defaults.
func Load(path string) (Config, error) {
	bin, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(bin)
}

// Parse decodes bin as yaml. Empty input yields [Default].
func Parse(bin []byte) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(bin))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return c.Fill(), nil
}
