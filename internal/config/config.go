// Package config loads the settings of the edi-format command from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/go-edifmt/formatter"
	"github.com/arloliu/go-edifmt/logger"
)

// FileName is the config file looked up in the working directory.
const FileName = ".edi-format.yaml"

var (
	// ErrNotFound is returned when an explicitly named config file doesn't exist.
	ErrNotFound = errors.New("config file not found")
	// ErrInvalid is returned when the config file can't be decoded or holds invalid values.
	ErrInvalid = errors.New("invalid config")
)

// Config holds the command settings.
type Config struct {
	LogLevel      logger.Level
	LogFormat     logger.Format
	StrictMarker  bool
	DefaultHeader bool
	CRLF          bool

	// Path is the file the settings were loaded from, empty for defaults.
	Path string
}

// Default returns the settings used without config file.
func Default() Config {
	return Config{
		LogLevel:  logger.InfoLevel,
		LogFormat: logger.FormatJSON,
	}
}

// Load reads the config file at path and applies it on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", path, ErrNotFound)
		}

		return cfg, fmt.Errorf("load %s: %w", path, err)
	}

	if err := cfg.decode(b); err != nil {
		return Default(), fmt.Errorf("load %s: %w: %w", path, ErrInvalid, err)
	}
	cfg.Path = path

	return cfg, nil
}

// Discover loads FileName from dir. A missing file yields the defaults.
func Discover(dir string) (Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}

	return cfg, err
}

// FormatterOptions converts the settings into formatting options.
func (c Config) FormatterOptions() []formatter.Option {
	var opts []formatter.Option
	if c.StrictMarker {
		opts = append(opts, formatter.WithStrictMarker())
	}
	if c.DefaultHeader {
		opts = append(opts, formatter.WithDefaultHeader())
	}
	if c.CRLF {
		opts = append(opts, formatter.WithLineBreaks('\r', '\n'))
	}

	return opts
}

func (c *Config) decode(b []byte) error {
	var y yamlConfig

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&y); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	// apply parsed values on top of defaults
	if y.LogLevel != "" {
		level, err := logger.ParseLevel(y.LogLevel)
		if err != nil {
			return err
		}
		c.LogLevel = level
	}
	if y.LogFormat != "" {
		format, err := logger.ParseFormat(y.LogFormat)
		if err != nil {
			return err
		}
		c.LogFormat = format
	}
	if y.StrictMarker != nil {
		c.StrictMarker = *y.StrictMarker
	}
	if y.DefaultHeader != nil {
		c.DefaultHeader = *y.DefaultHeader
	}
	if y.CRLF != nil {
		c.CRLF = *y.CRLF
	}

	return nil
}

type yamlConfig struct {
	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"`
	StrictMarker  *bool  `yaml:"strict_marker"`
	DefaultHeader *bool  `yaml:"default_header"`
	CRLF          *bool  `yaml:"crlf"`
}
