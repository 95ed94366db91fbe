// ABOUTME: Gym configuration management backed by a TOML file.
// ABOUTME: Resolves the data directory, logging settings and default stat windows.

package config

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/harperreed/gym/internal/db"
	"github.com/harperreed/gym/internal/stats"
)

const (
	dbFileName      = "gym.db"
	defaultLogLevel = "warn"
)

// Config stores gym tool configuration.
type Config struct {
	// DataDir is the directory holding gym.db. Supports ~ expansion.
	// Defaults to $XDG_DATA_HOME/gym.
	DataDir string `toml:"data_dir"`

	// LogLevel is one of trace, debug, info, warn, error. Defaults to warn.
	LogLevel string `toml:"log_level"`
	// LogFile sends logs to a rotated file instead of stderr.
	LogFile string `toml:"log_file"`
	LogJSON bool   `toml:"log_json"`

	// DefaultWeeks and DefaultDays are the windows used by stats commands
	// when no flag is given.
	DefaultWeeks int `toml:"default_weeks"`
	DefaultDays  int `toml:"default_days"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return filepath.Dir(db.GetDefaultDBPath())
	}
	return ExpandPath(c.DataDir)
}

// DBPath returns the database file inside the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), dbFileName)
}

// GetLogLevel returns the configured level, defaulting to warn.
func (c *Config) GetLogLevel() string {
	if strings.TrimSpace(c.LogLevel) == "" {
		return defaultLogLevel
	}
	return c.LogLevel
}

// GetLogFile returns the log file path with ~ expanded, or "" for stderr.
func (c *Config) GetLogFile() string {
	return ExpandPath(c.LogFile)
}

// Weeks returns the default weekly window.
func (c *Config) Weeks() int {
	if c.DefaultWeeks <= 0 {
		return stats.DefaultWeeks
	}
	return c.DefaultWeeks
}

// Days returns the default day window.
func (c *Config) Days() int {
	if c.DefaultDays <= 0 {
		return stats.DefaultDistributionDays
	}
	return c.DefaultDays
}

// OpenDB opens or creates the database at DBPath.
func (c *Config) OpenDB() (*sql.DB, error) {
	conn, err := db.InitDB(c.DBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return conn, nil
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
	return filepath.Join(configDir, "gym", "config.toml")
}

// Load reads config from disk. A missing file yields the zero config.
func Load() (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(GetConfigPath(), &cfg); err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return f.Close()
}
