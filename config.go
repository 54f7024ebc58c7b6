// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package razor2liquid

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Config is a configuration read from a YAML file, usually named
// razor2liquid.yaml. For example:
//
//	version: v1
//	ext: .liquid
//	helpers: true
//	symbols:
//	  filters:
//	    FormatDate: date
//	  partials:
//	    ShowFooter: Footer
//
// The symbols in the file are merged over the default symbols.
type Config struct {
	Version string   `yaml:"version"`
	Ext     string   `yaml:"ext"`
	Helpers bool     `yaml:"helpers"`
	Symbols *Symbols `yaml:"symbols"`
}

// LoadConfig reads a configuration from r. The version is required and its
// major version must be v1. If the configuration is not valid, the returned
// error wraps ErrInvalidConfig.
func LoadConfig(r io.Reader) (*Config, error) {
	config := &Config{Symbols: DefaultSymbols()}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(config)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	if config.Version == "" {
		return nil, fmt.Errorf("%w: missing version", ErrInvalidConfig)
	}
	version := config.Version
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return nil, fmt.Errorf("%w: invalid version %q", ErrInvalidConfig, config.Version)
	}
	if major := semver.Major(version); major != "v1" {
		return nil, fmt.Errorf("%w: unsupported version %s", ErrInvalidConfig, major)
	}
	if config.Ext != "" && !strings.HasPrefix(config.Ext, ".") {
		return nil, fmt.Errorf("%w: extension %q does not start with a dot", ErrInvalidConfig, config.Ext)
	}
	return config, nil
}

// Options returns the conversion options of the configuration.
func (c *Config) Options() *Options {
	return &Options{Symbols: c.Symbols, Ext: c.Ext, Helpers: c.Helpers}
}
