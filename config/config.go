package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/laiambryant/scoped-reader/reader"
)

const (
	DEFAULT_FILE_PATH   = "testfile.txt"
	DEFAULT_BUFFER_SIZE = reader.DEFAULT_BUFFER_SIZE
	DEFAULT_FORMAT      = "text"
	DEFAULT_TIMES       = 2
)

// Config holds the configuration for reading a file from the command line
type Config struct {
	FilePath   string `toml:"file"`
	BufferSize int    `toml:"buffer_size"`
	Format     string `toml:"format"`
	NoColor    bool   `toml:"no_color"`
	Verbose    bool   `toml:"verbose"`
	Times      int    `toml:"times"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		FilePath:   DEFAULT_FILE_PATH,
		BufferSize: DEFAULT_BUFFER_SIZE,
		Format:     DEFAULT_FORMAT,
		NoColor:    false,
		Verbose:    false,
		Times:      DEFAULT_TIMES,
	}
}

// ConfigFileError represents an error when a config file cannot be loaded
type ConfigFileError struct {
	FilePath string
	Err      error
}

func (e *ConfigFileError) Error() string {
	return fmt.Sprintf("failed to load config file %s: %v", e.FilePath, e.Err)
}

func (e *ConfigFileError) Unwrap() error {
	return e.Err
}

// LoadFile overlays the values found in the TOML file at path onto cfg.
// Keys missing from the file keep their current value.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigFileError{FilePath: path, Err: err}
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return &ConfigFileError{FilePath: path, Err: err}
	}
	return cfg.Validate()
}

// Validate checks the values that cannot be corrected silently
func (c *Config) Validate() error {
	if c.BufferSize < 0 {
		return fmt.Errorf("invalid buffer size: %d (must not be negative)", c.BufferSize)
	}
	if c.Times < 1 {
		return fmt.Errorf("invalid times: %d (must be at least 1)", c.Times)
	}
	return nil
}
