package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Prefix is prepended to every environment variable name
const Prefix = "SCAFFOLD_"

// Save backends
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config holds all configuration for the scaffold CLI
type Config struct {
	// Save file configuration
	SaveFile    string        `env:"SAVE_FILE" envDefault:"save.json"`
	SaveBackend string        `env:"SAVE_BACKEND" envDefault:"file"`
	SaveTTL     time.Duration `env:"SAVE_TTL" envDefault:"0s"`

	// Redis configuration, used by the redis save backend and the event stream
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:""`
	RedisPassword string        `env:"REDIS_PASS" envDefault:""`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	RedisTimeout  time.Duration `env:"REDIS_TIMEOUT" envDefault:"5s"`

	// Event stream; empty disables publishing
	EventStream string `env:"EVENT_STREAM" envDefault:""`

	// Rendering configuration
	RenderConcurrency int  `env:"RENDER_CONCURRENCY" envDefault:"0"`
	NoEscape          bool `env:"NO_ESCAPE" envDefault:"true"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom loads configuration from the given environment, or from the
// process environment when environment is nil
func LoadFrom(environment map[string]string) (*Config, error) {
	cfg := &Config{}
	opts := env.Options{Prefix: Prefix}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.SaveFile == "" {
		return fmt.Errorf("SAVE_FILE is required")
	}

	switch c.SaveBackend {
	case BackendFile:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis save backend")
		}
	default:
		return fmt.Errorf("SAVE_BACKEND must be one of: file, redis")
	}

	if c.EventStream != "" && c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required when EVENT_STREAM is set")
	}

	if c.SaveTTL < 0 {
		return fmt.Errorf("SAVE_TTL must be non-negative")
	}

	if c.RedisTimeout <= 0 {
		return fmt.Errorf("REDIS_TIMEOUT must be positive")
	}

	if c.RenderConcurrency < 0 {
		return fmt.Errorf("RENDER_CONCURRENCY must be non-negative")
	}

	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	return nil
}

// UsesRedis reports whether any component needs a Redis client
func (c *Config) UsesRedis() bool {
	return c.SaveBackend == BackendRedis || c.EventStream != ""
}

// isValidLogLevel checks if the log level is valid
func isValidLogLevel(level string) bool {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	return validLevels[level]
}

// String returns a string representation of the config (without sensitive data)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{SaveFile=%s, SaveBackend=%s, RedisAddr=%s, RedisDB=%d, EventStream=%s, "+
			"RenderConcurrency=%d, NoEscape=%v, LogLevel=%s}",
		c.SaveFile,
		c.SaveBackend,
		c.RedisAddr,
		c.RedisDB,
		c.EventStream,
		c.RenderConcurrency,
		c.NoEscape,
		c.LogLevel,
	)
}
