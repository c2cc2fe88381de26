// Package config reads the optional config.toml next to the database.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/sodam-app/sodam/internal/constants"
	"github.com/sodam-app/sodam/internal/hangdam"
	"github.com/sodam-app/sodam/internal/validation"
)

// Config is the file based configuration of sodam.
type Config struct {
	Growth   hangdam.LevelTable `toml:"growth"`
	Reminder ReminderConfig     `toml:"reminder"`
	Log      LogConfig          `toml:"log"`
}

// ReminderConfig holds reminder defaults applied on first-run setup.
type ReminderConfig struct {
	DefaultTime string `toml:"default_time" validate:"required,timeofday"`
}

type LogConfig struct {
	Debug bool `toml:"debug"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Growth: hangdam.DefaultLevelTable(),
		Reminder: ReminderConfig{
			DefaultTime: constants.DefaultNotificationTime,
		},
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Growth.Validate(); err != nil {
		return err
	}
	if err := validation.Struct(c.Reminder); err != nil {
		return fmt.Errorf("invalid reminder config: %w", err)
	}
	return nil
}

// Read decodes a Config from r on top of the defaults.
func Read(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	// a [growth] section replaces the whole table
	if md.IsDefined("growth", "thresholds") && !md.IsDefined("growth", "capacity") && len(cfg.Growth.Thresholds) > 0 {
		cfg.Growth.Capacity = cfg.Growth.Thresholds[len(cfg.Growth.Thresholds)-1].Count
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys: %v", undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write encodes cfg to w.
func Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Load reads path, falling back to the defaults when the file does not exist.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// WriteDefault creates path with the default configuration.
// An existing file is left untouched and reported as false.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := Write(f, Default()); err != nil {
		return false, fmt.Errorf("writing config to %s: %w", path, err)
	}
	return true, nil
}
