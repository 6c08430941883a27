package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/homestead/internal/logging"
	"github.com/mesh-intelligence/homestead/internal/paths"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyDataDir       = "data_dir"
	cfgKeyLogLevel      = "log.level"
	cfgKeyLogFormat     = "log.format"
	cfgKeyLogToFile     = "log.to_file"
	cfgKeyLogMaxSize    = "log.max_size_mb"
	cfgKeyLogMaxBackups = "log.max_backups"

	defaultLogLevel = "warn"
)

// configFile is the shape of config.yaml as written by init.
type configFile struct {
	DataDir string    `yaml:"data_dir,omitempty"`
	Log     logConfig `yaml:"log"`
}

type logConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	ToFile     bool   `yaml:"to_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

func defaultConfigFile(dataDir string) configFile {
	return configFile{
		DataDir: dataDir,
		Log: logConfig{
			Level:      defaultLogLevel,
			Format:     "console",
			ToFile:     true,
			MaxSizeMB:  logging.DefaultMaxSizeMB,
			MaxBackups: logging.DefaultMaxBackups,
		},
	}
}

// loadConfig reads config.yaml from configDir. A missing file yields the
// defaults. Log settings may also come from HOMESTEAD_LOG_* variables.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogFormat, "console")
	v.SetDefault(cfgKeyLogToFile, false)
	v.SetDefault(cfgKeyLogMaxSize, logging.DefaultMaxSizeMB)
	v.SetDefault(cfgKeyLogMaxBackups, logging.DefaultMaxBackups)
	for key, env := range map[string]string{
		cfgKeyLogLevel:  "HOMESTEAD_LOG_LEVEL",
		cfgKeyLogFormat: "HOMESTEAD_LOG_FORMAT",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with defaults. An existing file
// is left untouched; the return value reports whether a file was written.
func writeConfigIfMissing(configDir, dataDir string) (bool, error) {
	path := paths.ConfigFile(configDir)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(defaultConfigFile(dataDir))
	if err != nil {
		return false, fmt.Errorf("encoding config: %w", err)
	}
	header := []byte("# homestead configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, fmt.Errorf("writing config: %w", err)
	}
	return true, nil
}
