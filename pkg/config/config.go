// Package config provides viper-backed configuration loading for lingua.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidMaxEntries = errors.New("aggregate max entries must be positive")
	ErrInvalidWorkers    = errors.New("aggregate workers must be non-negative")
)

// Default configuration values.
const (
	defaultMaxEntries = 100000
	defaultWorkers    = 0 // 0 means runtime.GOMAXPROCS(0).
)

// Config holds all configuration for lingua.
type Config struct {
	Registry  RegistryConfig  `mapstructure:"registry"`
	Aggregate AggregateConfig `mapstructure:"aggregate"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// RegistryConfig controls where the language catalogue is loaded from.
// An empty CataloguePath uses the embedded default shipped in
// pkg/language/data/languages.yml.
type RegistryConfig struct {
	CataloguePath string `mapstructure:"catalogue_path"`
}

// AggregateConfig controls the repository aggregator's resource limits and
// its optional on-disk cache.
type AggregateConfig struct {
	// MaxEntries bounds the number of files a snapshot aggregation will
	// analyse; an oversized tree is refused with an empty result.
	MaxEntries int `mapstructure:"max_entries"`
	// Workers bounds directory-aggregator parallelism. Zero means
	// runtime.GOMAXPROCS(0).
	Workers int `mapstructure:"workers"`
	// CacheDir is an optional directory holding the persisted aggregation
	// cache (pkg/aggregate.SaveCache/LoadCache) used to seed incremental
	// snapshot refreshes. Empty disables cache persistence.
	CacheDir string `mapstructure:"cache_dir"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// LoadConfig loads configuration from file and environment variables. An
// empty configPath searches the working directory, ./config, and
// /etc/lingua for a file named config.yaml; a missing file is not an error,
// since every field has a usable default.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("config")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("/etc/lingua")
	}

	viperCfg.SetEnvPrefix("LINGUA")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	if err := viperCfg.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("aggregate.max_entries", defaultMaxEntries)
	viperCfg.SetDefault("aggregate.workers", defaultWorkers)
	viperCfg.SetDefault("aggregate.cache_dir", "")

	viperCfg.SetDefault("registry.catalogue_path", "")

	viperCfg.SetDefault("logging.level", "info")
	viperCfg.SetDefault("logging.format", "json")
	viperCfg.SetDefault("logging.output", "stdout")
}

func validateConfig(cfg *Config) error {
	if cfg.Aggregate.MaxEntries <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxEntries, cfg.Aggregate.MaxEntries)
	}

	if cfg.Aggregate.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, cfg.Aggregate.Workers)
	}

	return nil
}
