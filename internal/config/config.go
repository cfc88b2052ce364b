package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the optional user settings stored in pdexec/config.toml.
// Every field has a default; the file may be absent entirely.
type Config struct {
	Color  string      `toml:"color"`
	Filter FilterBlock `toml:"filter"`
}

// FilterBlock governs how --filter reads and stages standard input.
type FilterBlock struct {
	MaxLineBytes     int    `toml:"max_line_bytes"`
	Spool            string `toml:"spool"`
	SpoolMemoryLimit int    `toml:"spool_memory_limit"`
}

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Spool backends for decoded stdin staging.
const (
	SpoolMemory = "memory"
	SpoolFile   = "file"
	SpoolAuto   = "auto"
)

const (
	defaultMaxLineBytes     = 10 * 1024 * 1024
	defaultSpoolMemoryLimit = 8 * 1024 * 1024
)

var (
	// ErrInvalidColor indicates an unrecognized color mode.
	ErrInvalidColor = errors.New("config.color must be auto, always, or never")
	// ErrInvalidSpool indicates an unrecognized spool backend.
	ErrInvalidSpool = errors.New("config.filter.spool must be memory, file, or auto")
)

func (c *Config) applyDefaults() {
	if c.Color == "" {
		c.Color = ColorAuto
	} else {
		c.Color = strings.ToLower(c.Color)
	}
	if c.Filter.MaxLineBytes <= 0 {
		c.Filter.MaxLineBytes = defaultMaxLineBytes
	}
	if c.Filter.Spool == "" {
		c.Filter.Spool = SpoolAuto
	} else {
		c.Filter.Spool = strings.ToLower(c.Filter.Spool)
	}
	if c.Filter.SpoolMemoryLimit <= 0 {
		c.Filter.SpoolMemoryLimit = defaultSpoolMemoryLimit
	}
}

func (c Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return ErrInvalidColor
	}
	switch c.Filter.Spool {
	case SpoolMemory, SpoolFile, SpoolAuto:
	default:
		return ErrInvalidSpool
	}
	return nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// Load reads the config for this invocation. PDEXEC_CONFIG overrides the
// lookup path; a missing file yields Default.
func Load() (Config, error) {
	path := os.Getenv("PDEXEC_CONFIG")
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(dir, "pdexec", "config.toml")
	}
	return LoadFile(path)
}

// LoadFile reads and validates the config file at path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
