// Package config loads World settings from YAML or TOML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/delaneyj/geomtoy/geomtoy"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for files that are neither YAML nor TOML.
var ErrUnknownFormat = errors.New("config: unknown file format")

// Format selects the decoder.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Config mirrors the World options. Zero fields keep the World defaults.
type Config struct {
	Epsilon        float64 `yaml:"epsilon" toml:"epsilon"`
	WatchdogMillis int64   `yaml:"watchdog_ms" toml:"watchdog_ms"`
	OnPriority     *int    `yaml:"on_priority" toml:"on_priority"`
	BindPriority   *int    `yaml:"bind_priority" toml:"bind_priority"`
}

// Load reads the file at path, picking the decoder from its extension.
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// FormatOf maps a file extension to a Format.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// Decode reads a Config in the given format.
func Decode(r io.Reader, format Format) (*Config, error) {
	cfg := &Config{}
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.NewDecoder(r).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	return cfg, nil
}

// Watchdog returns the configured drain budget, zero when unset.
func (c *Config) Watchdog() time.Duration {
	return time.Duration(c.WatchdogMillis) * time.Millisecond
}

// Options converts the config into World options.
func (c *Config) Options() []geomtoy.Option {
	var opts []geomtoy.Option
	if c.Epsilon != 0 {
		opts = append(opts, geomtoy.WithEpsilon(c.Epsilon))
	}
	if c.WatchdogMillis > 0 {
		opts = append(opts, geomtoy.WithWatchdog(c.Watchdog()))
	}
	if c.OnPriority != nil {
		opts = append(opts, geomtoy.WithOnPriority(*c.OnPriority))
	}
	if c.BindPriority != nil {
		opts = append(opts, geomtoy.WithBindPriority(*c.BindPriority))
	}
	return opts
}
