package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Search SearchConfig `yaml:"search" mapstructure:"search"`
	Bulk   BulkConfig   `yaml:"bulk" mapstructure:"bulk"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// DataConfig points at the ingested source file.
type DataConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// SearchConfig tunes fuzzy matching.
type SearchConfig struct {
	FuzzyThreshold     float64 `yaml:"fuzzy_threshold" mapstructure:"fuzzy_threshold"`
	MinTokenLen        int     `yaml:"min_token_len" mapstructure:"min_token_len"`
	MaxFuzzyCandidates int     `yaml:"max_fuzzy_candidates" mapstructure:"max_fuzzy_candidates"`
}

// BulkConfig bounds bulk request fan-out.
type BulkConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// CacheConfig controls how long bulk results stay exportable.
type CacheConfig struct {
	TTLMinutes int `yaml:"ttl_minutes" mapstructure:"ttl_minutes"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port          int     `yaml:"port" mapstructure:"port"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst     int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PCM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.file", "data/contributions.txt")
	v.SetDefault("search.fuzzy_threshold", 0.7)
	v.SetDefault("search.min_token_len", 2)
	v.SetDefault("search.max_fuzzy_candidates", 1000)
	v.SetDefault("bulk.concurrency", 8)
	v.SetDefault("cache.ttl_minutes", 10)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_per_second", 50)
	v.SetDefault("server.rate_burst", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
