// Package config loads service configuration from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration structure
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Cache     CacheConfig     `yaml:"cache"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr" env:"LOANSIM_ADDR"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"LOANSIM_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"LOANSIM_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"LOANSIM_IDLE_TIMEOUT"`
}

// RateLimitConfig is applied per client IP.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" env:"LOANSIM_RATE_LIMIT_RPM"`
	Burst             int `yaml:"burst" env:"LOANSIM_RATE_LIMIT_BURST"`
}

// CacheConfig controls where seeded simulation results are memoized.
type CacheConfig struct {
	Backend       string        `yaml:"backend" env:"LOANSIM_CACHE_BACKEND"` // "memory" o "redis"
	RedisAddr     string        `yaml:"redis_addr" env:"LOANSIM_REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" env:"LOANSIM_REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" env:"LOANSIM_REDIS_DB"`
	TTL           time.Duration `yaml:"ttl" env:"LOANSIM_CACHE_TTL"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOANSIM_LOG_LEVEL"`
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation failed for %s: %s", e.Field, e.Message)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 5,
			Burst:             5,
		},
		Cache: CacheConfig{
			Backend:   "memory",
			RedisAddr: "localhost:6379",
			TTL:       10 * time.Minute,
		},
		Log: LogConfig{
			Level: "INFO",
		},
	}
}

// Load reads filename (optional) over the defaults, applies LOANSIM_*
// environment overrides and validates the result.
func Load(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandEnvVars replaces ${VAR} references in the YAML content
func expandEnvVars(content string) string {
	return os.ExpandEnv(content)
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return ValidationError{Field: "server.addr", Message: "is required"}
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.IdleTimeout <= 0 {
		return ValidationError{Field: "server", Message: "timeouts must be positive"}
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		return ValidationError{Field: "rate_limit.requests_per_minute", Message: "must be positive"}
	}
	if c.RateLimit.Burst <= 0 {
		return ValidationError{Field: "rate_limit.burst", Message: "must be positive"}
	}

	c.Cache.Backend = strings.ToLower(c.Cache.Backend)
	switch c.Cache.Backend {
	case "memory":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return ValidationError{Field: "cache.redis_addr", Message: "is required for the redis backend"}
		}
	default:
		return ValidationError{Field: "cache.backend", Message: fmt.Sprintf("unsupported backend %q", c.Cache.Backend)}
	}
	if c.Cache.TTL < 0 {
		return ValidationError{Field: "cache.ttl", Message: "must not be negative"}
	}

	switch strings.ToUpper(c.Log.Level) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return ValidationError{Field: "log.level", Message: fmt.Sprintf("invalid level %q", c.Log.Level)}
	}

	return nil
}
