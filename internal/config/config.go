// Package config handles application configuration from environment variables
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/recipebox/mealdb"
)

// Config holds all application configuration
type Config struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	MealDBBaseURL   string        `env:"MEALDB_BASE_URL"`
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	HTTPCache       bool          `env:"HTTP_CACHE"`
	GridDelay       time.Duration `env:"GRID_DELAY" envDefault:"500ms"`
	SessionLifetime time.Duration `env:"SESSION_LIFETIME" envDefault:"12h"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`

	Warm  WarmConfig  `envPrefix:"WARM_"`
	Redis RedisConfig `envPrefix:"REDIS_"`
}

// WarmConfig controls the category warm-up
type WarmConfig struct {
	OnStart     bool `env:"ON_START"`
	Concurrency int  `env:"CONCURRENCY" envDefault:"4"`
}

// RedisConfig holds the optional Redis connection shared by the session
// cache and the job queue
type RedisConfig struct {
	Addr     string `env:"ADDR"`
	URL      string `env:"URL"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"`
	Prefix   string `env:"PREFIX" envDefault:"recipebox:"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.MealDBBaseURL == "" {
		cfg.MealDBBaseURL = mealdb.DefaultBaseURL
	}
	return &cfg, nil
}

// HasRedis returns true if a Redis server is configured
func (c *Config) HasRedis() bool {
	return c.Redis.Addr != "" || c.Redis.URL != ""
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Level parses LogLevel, falling back to info
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Validate checks the values Load cannot check on its own
func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1-65535, got %d", c.Port))
	}
	if u, err := url.Parse(c.MealDBBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("MEALDB_BASE_URL is not an absolute URL: %q", c.MealDBBaseURL))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, errors.New("HTTP_TIMEOUT must be positive"))
	}
	if c.GridDelay < 0 {
		errs = append(errs, errors.New("GRID_DELAY must not be negative"))
	}
	if c.Warm.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("WARM_CONCURRENCY must be at least 1, got %d", c.Warm.Concurrency))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid LOG_LEVEL: %v", err))
	}
	return errors.Join(errs...)
}
