// Package config loads the read-only startup configuration.
// The file is never written by the program.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"pomoblock/internal/core/model"
)

const (
	yamlFileName = "config.yaml"
	tomlFileName = "config.toml"
)

// Config holds startup defaults and driver cadences.
type Config struct {
	Durations    model.Durations
	TickInterval time.Duration
	ScanInterval time.Duration
	KillTimeout  time.Duration
	TopMostLock  bool
	CompactView  bool
}

type fileSettings struct {
	WorkMinutes    int   `yaml:"work_minutes" toml:"work_minutes"`
	BreakMinutes   int   `yaml:"break_minutes" toml:"break_minutes"`
	TickIntervalMS int   `yaml:"tick_interval_ms" toml:"tick_interval_ms"`
	ScanIntervalMS int   `yaml:"scan_interval_ms" toml:"scan_interval_ms"`
	KillTimeoutMS  int   `yaml:"kill_timeout_ms" toml:"kill_timeout_ms"`
	TopMostLock    *bool `yaml:"topmost_lock" toml:"topmost_lock"`
	CompactView    *bool `yaml:"compact_view" toml:"compact_view"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Durations:    model.DefaultDurations(),
		TickInterval: time.Second,
		ScanInterval: time.Second,
		KillTimeout:  500 * time.Millisecond,
		TopMostLock:  true,
		CompactView:  false,
	}
}

// LoadDefault reads the config file from the user config directory.
// A TOML file is used when no YAML file exists. Missing files yield defaults.
func LoadDefault(appName string) (Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Default(), fmt.Errorf("resolve user config dir: %w", err)
	}
	dir := filepath.Join(configDir, appName)
	path := filepath.Join(dir, yamlFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		path = filepath.Join(dir, tomlFileName)
	}
	return Load(path)
}

// Load reads the config file at path. The decoder is picked by extension.
// If the file does not exist, default settings are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fileData fileSettings
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(rawData, &fileData)
	default:
		err = yaml.Unmarshal(rawData, &fileData)
	}
	if err != nil {
		return cfg, &ParseError{Path: path, Err: err}
	}

	applyFileSettings(&cfg, fileData)
	return cfg, nil
}

func applyFileSettings(cfg *Config, fileData fileSettings) {
	if fileData.WorkMinutes >= model.MinWorkMinutes && fileData.WorkMinutes <= model.MaxWorkMinutes {
		cfg.Durations.WorkMinutes = fileData.WorkMinutes
	}
	if fileData.BreakMinutes >= model.MinBreakMinutes && fileData.BreakMinutes <= model.MaxBreakMinutes {
		cfg.Durations.BreakMinutes = fileData.BreakMinutes
	}
	if fileData.TickIntervalMS > 0 {
		cfg.TickInterval = time.Duration(fileData.TickIntervalMS) * time.Millisecond
	}
	if fileData.ScanIntervalMS > 0 {
		cfg.ScanInterval = time.Duration(fileData.ScanIntervalMS) * time.Millisecond
	}
	if fileData.KillTimeoutMS > 0 {
		cfg.KillTimeout = time.Duration(fileData.KillTimeoutMS) * time.Millisecond
	}
	if fileData.TopMostLock != nil {
		cfg.TopMostLock = *fileData.TopMostLock
	}
	if fileData.CompactView != nil {
		cfg.CompactView = *fileData.CompactView
	}
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
