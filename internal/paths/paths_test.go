package paths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withHome points the home lookup at dir for the test.
func withHome(t *testing.T, dir string) {
	t.Helper()
	orig := platformDir.homeDir
	platformDir.homeDir = func() (string, error) { return dir, nil }
	t.Cleanup(func() { platformDir.homeDir = orig })
}

func TestDefaultDirs_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}
	withHome(t, "/home/alex")

	tests := []struct {
		name    string
		env     map[string]string
		resolve func() (string, error)
		want    string
	}{
		{
			name:    "config uses XDG_CONFIG_HOME",
			env:     map[string]string{"XDG_CONFIG_HOME": "/tmp/xdg-config"},
			resolve: DefaultConfigDir,
			want:    "/tmp/xdg-config/homestead",
		},
		{
			name:    "config falls back to ~/.config",
			env:     map[string]string{"XDG_CONFIG_HOME": ""},
			resolve: DefaultConfigDir,
			want:    "/home/alex/.config/homestead",
		},
		{
			name:    "data uses XDG_DATA_HOME",
			env:     map[string]string{"XDG_DATA_HOME": "/tmp/xdg-data"},
			resolve: DefaultDataDir,
			want:    "/tmp/xdg-data/homestead",
		},
		{
			name:    "data falls back to ~/.local/share",
			env:     map[string]string{"XDG_DATA_HOME": ""},
			resolve: DefaultDataDir,
			want:    "/home/alex/.local/share/homestead",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			got, err := tt.resolve()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultDirs_HomeLookupFails(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}
	orig := platformDir.homeDir
	platformDir.homeDir = func() (string, error) { return "", errors.New("no home") }
	t.Cleanup(func() { platformDir.homeDir = orig })
	t.Setenv("XDG_DATA_HOME", "")

	_, err := DefaultDataDir()
	assert.Error(t, err)
}

func TestResolveConfigDir(t *testing.T) {
	withHome(t, "/home/alex")
	t.Setenv("XDG_CONFIG_HOME", "")

	tests := []struct {
		name    string
		flag    string
		envVal  string
		wantSub string
	}{
		{"flag wins over env", "/explicit/config", "/env/config", "/explicit/config"},
		{"env wins when flag empty", "", "/env/config", "/env/config"},
		{"tilde expands to home", "~/cfg", "", "/home/alex/cfg"},
		{"platform default when both empty", "", "", AppName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.envVal)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Contains(t, got, tt.wantSub)
			assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	withHome(t, "/home/alex")
	t.Setenv("XDG_DATA_HOME", "")
	cwd, err := os.Getwd()
	require.NoError(t, err)
	def, err := DefaultDataDir()
	require.NoError(t, err)

	tests := []struct {
		name        string
		flag        string
		configValue string
		envVal      string
		want        string
	}{
		{"flag wins over all", "/flag/data", "/config/data", "/env/data", "/flag/data"},
		{"config wins over env", "", "/config/data", "/env/data", "/config/data"},
		{"env wins when flag and config empty", "", "", "/env/data", "/env/data"},
		{"relative values become absolute", "rel/data", "", "", filepath.Join(cwd, "rel/data")},
		{"platform default when all empty", "", "", "", def},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envVal)
			got, err := ResolveDataDir(tt.flag, tt.configValue)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDerivedPaths(t *testing.T) {
	assert.Equal(t, filepath.Join("/cfg", "config.yaml"), ConfigFile("/cfg"))
	assert.Equal(t, filepath.Join("/data", "logs", "homestead.log"), LogFile("/data"))

	at := time.Date(2024, time.March, 15, 10, 30, 5, 0, time.FixedZone("CET", 3600))
	assert.Equal(t, filepath.Join("/data", "backups", "20240315T093005Z"), BackupDir("/data", at))
}
