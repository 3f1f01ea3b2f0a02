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
	Dataset DatasetConfig `yaml:"dataset" mapstructure:"dataset"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Geocode GeocodeConfig `yaml:"geocode" mapstructure:"geocode"`
	Session SessionConfig `yaml:"session" mapstructure:"session"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// DatasetConfig selects and locates the immutable town dataset source.
type DatasetConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // csv, xlsx, sqlite, postgres
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	Table       string `yaml:"table" mapstructure:"table"`
	Sheet       string `yaml:"sheet" mapstructure:"sheet"`
}

// ServerConfig configures the dashboard HTTP server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// GeocodeConfig configures the Google geocoding client and cache.
type GeocodeConfig struct {
	GoogleAPIKey string  `yaml:"google_api_key" mapstructure:"google_api_key"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	CacheEnabled bool    `yaml:"cache_enabled" mapstructure:"cache_enabled"`
	Concurrency  int     `yaml:"concurrency" mapstructure:"concurrency"`
}

// SessionConfig configures per-session behavior.
type SessionConfig struct {
	// InlineDeleteRemoves controls whether a row deleted directly in the
	// town-list table is removed from the backing accumulator, or only
	// from the rendered table.
	InlineDeleteRemoves bool `yaml:"inline_delete_removes" mapstructure:"inline_delete_removes"`
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
	v.SetEnvPrefix("LOCEXP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dataset.driver", "csv")
	v.SetDefault("dataset.path", "data/final_data.csv")
	v.SetDefault("dataset.table", "towns")
	v.SetDefault("dataset.database_url", "")
	v.SetDefault("dataset.sheet", "")
	v.SetDefault("server.port", 5001)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("geocode.google_api_key", "")
	v.SetDefault("geocode.rate_limit_rps", 10)
	v.SetDefault("geocode.timeout_secs", 30)
	v.SetDefault("geocode.cache_enabled", true)
	v.SetDefault("geocode.concurrency", 8)
	v.SetDefault("session.inline_delete_removes", true)
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
