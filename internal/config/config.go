// Package config loads spanarena runtime settings from spanarena.yaml and
// SPANARENA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pavanmanishd/spanarena"
)

// Config represents the runtime configuration.
type Config struct {
	Container ContainerConfig `mapstructure:"container"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Log       LogConfig       `mapstructure:"log"`
}

// ContainerConfig applies to every container of an index.
type ContainerConfig struct {
	ChunkSize   int  `mapstructure:"chunk_size"`
	MaxSlots    int  `mapstructure:"max_slots"`
	DebugChecks bool `mapstructure:"debug_checks"`
}

// MetricsConfig configures metrics stores.
type MetricsConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// Load reads the configuration. path may name a config file; when empty,
// spanarena.yaml is looked up in the working directory and a missing file
// means defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("container.chunk_size", spanarena.DefaultChunkSize)
	v.SetDefault("container.max_slots", 0)
	v.SetDefault("container.debug_checks", true)
	v.SetDefault("metrics.interval", spanarena.DefaultMetricsInterval)
	v.SetDefault("log.development", false)
	v.SetDefault("log.level", "info")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("spanarena")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("spanarena")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Container.ChunkSize <= 0 {
		return fmt.Errorf("container.chunk_size must be positive, got: %d", cfg.Container.ChunkSize)
	}
	if cfg.Container.MaxSlots < 0 {
		return fmt.Errorf("container.max_slots must not be negative, got: %d", cfg.Container.MaxSlots)
	}
	if cfg.Metrics.Interval <= 0 {
		return fmt.Errorf("metrics.interval must be positive, got: %s", cfg.Metrics.Interval)
	}
	if _, err := zap.ParseAtomicLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Logger builds the zap logger described by the log section.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}

// Options converts the container section to spanarena options.
func (c *Config) Options(logger *zap.Logger) []spanarena.Option {
	return []spanarena.Option{
		spanarena.WithChunkSize(c.Container.ChunkSize),
		spanarena.WithMaxSlots(c.Container.MaxSlots),
		spanarena.WithDebugChecks(c.Container.DebugChecks),
		spanarena.WithLogger(logger),
	}
}
