// ABOUTME: Fitness configuration management.
// ABOUTME: Reads the JSON config file, applies environment overrides, and resolves defaults.

package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/fitness/internal/storage"
)

// Defaults applied when neither the config file nor the environment set a value.
const (
	DefaultAddr     = "127.0.0.1:5000"
	DefaultLogLevel = "info"
)

// Environment variables that override the config file.
const (
	EnvDataDir  = "FITNESS_DATA_DIR"
	EnvAddr     = "FITNESS_ADDR"
	EnvLogLevel = "FITNESS_LOG_LEVEL"
)

// Config stores fitness configuration.
type Config struct {
	// DataDir holds fitness_data.db. Supports ~ expansion.
	// Defaults to ~/.local/share/fitness.
	DataDir string `json:"data_dir,omitempty"`

	// Addr is the listen address of the web server.
	Addr string `json:"addr,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// DBPath returns the database file inside the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), storage.DBFileName)
}

// GetAddr returns the listen address, defaulting to DefaultAddr.
func (c *Config) GetAddr() string {
	if c.Addr == "" {
		return DefaultAddr
	}
	return c.Addr
}

// GetLogLevel returns the parsed log level. Unknown values fall back to info.
func (c *Config) GetLogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// Validate checks values that cannot be defaulted silently.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Set assigns a config key by its JSON name.
func (c *Config) Set(key, value string) error {
	switch key {
	case "data_dir":
		c.DataDir = value
	case "addr":
		c.Addr = value
	case "log_level":
		if _, err := parseLevel(value); err != nil {
			return err
		}
		c.LogLevel = value
	default:
		return fmt.Errorf("unknown config key: %q", key)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		s = DefaultLogLevel
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitness", "config.json")
}

// Load reads config from disk and applies environment overrides.
func Load() (*Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// LoadFile reads config from disk only. A missing file yields an empty Config.
func LoadFile() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.DataDir = getEnv(EnvDataDir, c.DataDir)
	c.Addr = getEnv(EnvAddr, c.Addr)
	c.LogLevel = getEnv(EnvLogLevel, c.LogLevel)
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
