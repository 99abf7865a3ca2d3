// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knotfly/knotfly/base/errors"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Formats are the supported config file formats.
type Formats int32

const (
	TOML Formats = iota
	YAML
	JSON
)

// FormatOf returns the format of the given file path from its extension.
func FormatOf(path string) (Formats, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	}
	return TOML, fmt.Errorf("config: unsupported file extension %q (want .toml, .yaml, .yml or .json)", filepath.Ext(path))
}

// Open reads the config file at the given path on top of the defaults.
// A leading ~ in path is expanded to the home directory. Unknown fields
// are an error. The result is validated.
func Open(path string) (*Config, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("config.Open: %w", err)
	}
	fm, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Open: %w", err)
	}
	c := Default()
	c.Hotspots.Sections = nil
	c.Hotspots.Links = nil
	if err := c.Decode(fm, b); err != nil {
		return nil, fmt.Errorf("config.Open %q: %w", path, err)
	}
	if c.Hotspots.Sections == nil {
		c.Hotspots.Sections = DefaultSections()
	}
	if c.Hotspots.Links == nil {
		c.Hotspots.Links = DefaultLinks()
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config.Open %q: %w", path, err)
	}
	return c, nil
}

// Decode decodes the given data in the given format into the config.
func (c *Config) Decode(fm Formats, data []byte) error {
	switch fm {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err := dec.Decode(c)
		if errors.Is(err, io.EOF) {
			return nil // empty document
		}
		return err
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(c)
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(c)
	}
}

// Encode returns the config encoded in the given format.
func (c *Config) Encode(fm Formats) ([]byte, error) {
	switch fm {
	case YAML:
		return yaml.Marshal(c)
	case JSON:
		return json.MarshalIndent(c, "", "\t")
	default:
		return toml.Marshal(c)
	}
}

// Save writes the config to the given path, in the format
// given by its extension.
func (c *Config) Save(path string) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	fm, err := FormatOf(path)
	if err != nil {
		return err
	}
	b, err := c.Encode(fm)
	if err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	return os.WriteFile(path, b, 0666)
}
