// Package config loads process settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port     int `env:"PORT" envDefault:"8080"`
	GRPCPort int `env:"GRPC_PORT" envDefault:"9090"` // 0 disables gRPC

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`

	Storage     string `env:"STORAGE" envDefault:"postgres"`
	DatabaseURL string `env:"DATABASE_URL"`
	DBMaxConns  int    `env:"DB_MAX_CONNS" envDefault:"10"`

	ConfigDir string `env:"CONFIG_DIR" envDefault:"configs"`
	Game      string `env:"GAME"`
	Pool      string `env:"POOL"`
	RNGSeed   uint64 `env:"RNG_SEED" envDefault:"0"` // 0 seeds from crypto/rand

	ProfileCacheSize    int           `env:"PROFILE_CACHE_SIZE" envDefault:"1024"`
	ProfileCacheTTL     time.Duration `env:"PROFILE_CACHE_TTL" envDefault:"30s"`
	ConfigWatchInterval time.Duration `env:"CONFIG_WATCH_INTERVAL" envDefault:"5s"` // 0 disables watching
}

// Load reads an optional .env file, then parses and validates the environment.
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseEnv, err)
	}
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unusable combinations, reporting every problem at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, errors.New(ErrMsgInvalidPort))
	}
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		errs = append(errs, errors.New(ErrMsgInvalidGRPCPort))
	}
	if c.GRPCPort != 0 && c.GRPCPort == c.Port {
		errs = append(errs, errors.New(ErrMsgPortsCollide))
	}
	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			errs = append(errs, errors.New(ErrMsgDatabaseURL))
		}
	default:
		errs = append(errs, errors.New(ErrMsgInvalidStorage))
	}
	if c.Pool != "" && c.Game == "" {
		errs = append(errs, errors.New(ErrMsgPoolWithoutGame))
	}
	if c.ProfileCacheSize < 1 {
		errs = append(errs, errors.New(ErrMsgInvalidCacheSize))
	}
	if c.ProfileCacheTTL <= 0 {
		errs = append(errs, errors.New(ErrMsgInvalidCacheTTL))
	}
	if c.ConfigWatchInterval < 0 {
		errs = append(errs, errors.New(ErrMsgInvalidWatchEvery))
	}
	return errors.Join(errs...)
}
