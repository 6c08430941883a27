// Package paths resolves where homestead keeps its configuration, its
// database, its logs, and its backups.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// AppName is the directory name used under the platform config and data
// roots.
const AppName = "homestead"

// File and directory names inside the resolved directories.
const (
	ConfigFileName = "config.yaml"
	LogDirName     = "logs"
	LogFileName    = "homestead.log"
	BackupDirName  = "backups"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "HOMESTEAD_CONFIG_DIR"
	EnvDataDir   = "HOMESTEAD_DATA_DIR"
)

// platformDir holds platform lookups that tests replace.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/homestead (fallback ~/.config/homestead)
// macOS:   ~/Library/Application Support/homestead
// Windows: %APPDATA%/homestead
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// DefaultDataDir returns the platform data directory. Outside Linux it is
// the configuration directory.
//
// Linux: $XDG_DATA_HOME/homestead (fallback ~/.local/share/homestead)
func DefaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	}
	return DefaultConfigDir()
}

func xdgDir(env, fallback string) (string, error) {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, AppName), nil
}

// ResolveConfigDir applies the precedence flag > HOMESTEAD_CONFIG_DIR >
// DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return absolute(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return absolute(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir applies the precedence flag > config file value >
// HOMESTEAD_DATA_DIR > DefaultDataDir.
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, candidate := range []string{flag, configValue, os.Getenv(EnvDataDir)} {
		if candidate != "" {
			return absolute(candidate)
		}
	}
	return DefaultDataDir()
}

// absolute expands a leading ~ and makes p absolute.
func absolute(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return filepath.Abs(p)
}

// ConfigFile returns the config file inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// LogFile returns the rotated log file inside dataDir.
func LogFile(dataDir string) string {
	return filepath.Join(dataDir, LogDirName, LogFileName)
}

// BackupDir returns a fresh snapshot directory under dataDir named for at.
func BackupDir(dataDir string, at time.Time) string {
	return filepath.Join(dataDir, BackupDirName, at.UTC().Format("20060102T150405Z"))
}
