// Package config loads pantry configuration from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	perrors "github.com/vnykmshr/pantry/pkg/common/errors"
	"github.com/vnykmshr/pantry/pkg/common/validation"
)

const module = "config"

// Environment variables that override file values.
const (
	EnvLogLevel       = "PANTRY_LOG_LEVEL"
	EnvRedisAddr      = "PANTRY_REDIS_ADDR"
	EnvProfileBackend = "PANTRY_PROFILE_BACKEND"
	EnvServerAddr     = "PANTRY_SERVER_ADDR"
)

// Profile backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Config holds all pantry configuration.
type Config struct {
	// Recipe checked when the CLI is given no ingredients
	Recipe RecipeConfig `yaml:"recipe"`

	// Allergens checked when the CLI is given neither a consumer nor allergens
	Allergens []string `yaml:"allergens"`

	// Profile storage
	Profile ProfileConfig `yaml:"profile"`

	// Profiles seed the memory backend, keyed by consumer
	Profiles map[string][]string `yaml:"profiles"`

	// HTTP server
	Server ServerConfig `yaml:"server"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// RecipeConfig names a recipe and its ordered ingredients.
type RecipeConfig struct {
	Name        string   `yaml:"name"`
	Ingredients []string `yaml:"ingredients"`
}

// ProfileConfig configures consumer profile storage.
type ProfileConfig struct {
	Backend      string        `yaml:"backend"` // memory, redis, sqlite
	RedisAddr    string        `yaml:"redis_addr"`
	SQLitePath   string        `yaml:"sqlite_path"`
	KeyPrefix    string        `yaml:"key_prefix"`
	Timeout      time.Duration `yaml:"timeout"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
	WarmSchedule string        `yaml:"warm_schedule"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // DEBUG, INFO, WARN, ERROR
}

// Default returns the built-in configuration: the cake recipe checked
// against eggs, with profiles kept in memory.
func Default() Config {
	return Config{
		Recipe: RecipeConfig{
			Name:        "cake",
			Ingredients: []string{"Flour", "salt", "baking powder", "butter", "eggs", "milk"},
		},
		Allergens: []string{"eggs"},
		Profile: ProfileConfig{
			Backend:      BackendMemory,
			RedisAddr:    "localhost:6379",
			SQLitePath:   "pantry.db",
			KeyPrefix:    "pantry",
			Timeout:      500 * time.Millisecond,
			CacheTTL:     time.Minute,
			WarmSchedule: "@every 5m",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "WARN",
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path skips the file. A .env file in the working directory is
// loaded first when present; variables already set win over it.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from PANTRY_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Profile.RedisAddr = v
	}
	if v := os.Getenv(EnvProfileBackend); v != "" {
		c.Profile.Backend = v
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Server.Addr = v
	}
}

// Validate checks the configuration. Errors match errors.ErrInvalidConfiguration.
func (c Config) Validate() error {
	p := c.Profile
	switch p.Backend {
	case BackendMemory:
	case BackendRedis:
		if p.RedisAddr == "" {
			return perrors.NewConfigError(module, "profile.redis_addr", p.RedisAddr, "cannot be empty").
				WithHint("set " + EnvRedisAddr + " or profile.redis_addr")
		}
		if p.KeyPrefix == "" {
			return perrors.NewConfigError(module, "profile.key_prefix", p.KeyPrefix, "cannot be empty")
		}
		if err := validation.ValidatePositiveDuration(module, "profile.timeout", p.Timeout); err != nil {
			return err
		}
	case BackendSQLite:
		if p.SQLitePath == "" {
			return perrors.NewConfigError(module, "profile.sqlite_path", p.SQLitePath, "cannot be empty")
		}
	default:
		return perrors.NewConfigError(module, "profile.backend", p.Backend, "unknown backend").
			WithHint("use memory, redis or sqlite")
	}

	if err := validation.ValidatePositiveDuration(module, "profile.cache_ttl", p.CacheTTL); err != nil {
		return err
	}
	if p.WarmSchedule == "" {
		return perrors.NewConfigError(module, "profile.warm_schedule", p.WarmSchedule, "cannot be empty")
	}

	if c.Server.Addr == "" {
		return perrors.NewConfigError(module, "server.addr", c.Server.Addr, "cannot be empty").
			WithHint("set " + EnvServerAddr + " or server.addr")
	}
	if err := validation.ValidatePositiveDuration(module, "server.shutdown_timeout", c.Server.ShutdownTimeout); err != nil {
		return err
	}
	return nil
}
