// ABOUTME: Tests for gym configuration management.
// ABOUTME: Covers load, save, defaults, TOML parsing, and path expansion.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDataDirDefault(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	cfg := &Config{}
	want := filepath.Join(dataHome, "gym")
	if got := cfg.GetDataDir(); got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
	if got := cfg.DBPath(); got != filepath.Join(want, "gym.db") {
		t.Errorf("DBPath() = %q", got)
	}
}

func TestGetDataDirExplicit(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/gym-test"}
	if got := cfg.GetDataDir(); got != "/tmp/gym-test" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/gym-test")
	}
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{DataDir: "~/gym-data"}
	want := filepath.Join(home, "gym-data")
	if got := cfg.GetDataDir(); got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/gym", filepath.Join(home, "data/gym")},
		{"data/gym", "data/gym"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetLogLevel(); got != "warn" {
		t.Errorf("GetLogLevel() = %q, want warn", got)
	}
	if got := cfg.Weeks(); got != 8 {
		t.Errorf("Weeks() = %d, want 8", got)
	}
	if got := cfg.Days(); got != 30 {
		t.Errorf("Days() = %d, want 30", got)
	}
	if got := cfg.GetLogFile(); got != "" {
		t.Errorf("GetLogFile() = %q, want empty", got)
	}

	cfg = &Config{LogLevel: "debug", DefaultWeeks: 12, DefaultDays: 7}
	if cfg.GetLogLevel() != "debug" || cfg.Weeks() != 12 || cfg.Days() != 7 {
		t.Errorf("explicit values not honored: %+v", cfg)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
	if cfg.DataDir != "" {
		t.Errorf("Expected empty DataDir, got %q", cfg.DataDir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{
		DataDir:      "/tmp/gym-data",
		LogLevel:     "info",
		LogFile:      "~/gym.log",
		LogJSON:      true,
		DefaultWeeks: 4,
		DefaultDays:  14,
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Load() = %+v, want %+v", loaded, cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "gym")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatal(err)
	}
	content := "data_dir = \"/srv/gym\"\nlog_level = \"debug\"\ndefault_weeks = 6\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.DataDir != "/srv/gym" || cfg.LogLevel != "debug" || cfg.DefaultWeeks != 6 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "nonexistent"))

	cfg := &Config{LogLevel: "error"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() should create directory: %v", err)
	}

	configDir := filepath.Join(tmpDir, "nonexistent", "gym")
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Error("Expected config directory to be created")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "gym")
	_ = os.MkdirAll(configDir, 0755)
	_ = os.WriteFile(filepath.Join(configDir, "config.toml"), []byte("data_dir = [unclosed"), 0600)

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid TOML config")
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	want := filepath.Join(tmpDir, "gym", "config.toml")
	if got := GetConfigPath(); got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestOpenDB(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := &Config{DataDir: filepath.Join(tmpDir, "data")}
	conn, err := cfg.OpenDB()
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	defer conn.Close()

	if _, err := os.Stat(filepath.Join(tmpDir, "data", "gym.db")); os.IsNotExist(err) {
		t.Error("Expected gym.db to be created")
	}
}
