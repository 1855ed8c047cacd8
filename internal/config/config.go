// Package config loads ptsim settings. PTSIM_* environment variables override
// ~/.ptsim/config.toml, which overrides the defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".ptsim"
	envPrefix  = "PTSIM"

	OutputDirKey        = "output.dir"
	WorkersKey          = "batch.workers"
	SimulationFormatKey = "simulation.format"
	LogLevelKey         = "log.level"
)

type Config struct {
	OutputDir        string
	Workers          int
	SimulationFormat string
	LogLevel         slog.Level
}

func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(OutputDirKey, ".")
	cfg.SetDefault(WorkersKey, runtime.NumCPU())
	cfg.SetDefault(SimulationFormatKey, "toml")
	cfg.SetDefault(LogLevelKey, "warn")

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	level, err := ParseLevel(cfg.GetString(LogLevelKey))
	if err != nil {
		return Config{}, err
	}

	workers := cfg.GetInt(WorkersKey)
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	outputDir := cfg.GetString(OutputDirKey)
	if strings.TrimSpace(outputDir) == "" {
		outputDir = "."
	}

	return Config{
		OutputDir:        filepath.Clean(outputDir),
		Workers:          workers,
		SimulationFormat: strings.ToLower(cfg.GetString(SimulationFormatKey)),
		LogLevel:         level,
	}, nil
}

func ParseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", raw, err)
	}
	return level, nil
}
