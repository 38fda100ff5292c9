package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/platefork/recipe-core/cache"
	"github.com/platefork/recipe-core/database"
)

// Backend names a cache store implementation.
const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds all configuration for the application.
type Config struct {
	Database database.Config `mapstructure:"database"`
	Cache    CacheConfig     `mapstructure:"cache"`
	Log      LogConfig       `mapstructure:"log"`
}

// CacheConfig selects the cache backend and overrides the TTL policy.
type CacheConfig struct {
	Backend       string        `mapstructure:"backend"` // "redis" or "memory"
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	RecipeTTL     time.Duration `mapstructure:"recipe_ttl"`
	ListTTL       time.Duration `mapstructure:"list_ttl"`
	QueryTTL      time.Duration `mapstructure:"query_ttl"`
	PrimeTTL      time.Duration `mapstructure:"prime_ttl"`
	StoreTimeout  time.Duration `mapstructure:"store_timeout"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Policy converts the cache section to the coordinator's TTL policy,
// keeping defaults where no override is set.
func (c CacheConfig) Policy() cache.Config {
	policy := cache.DefaultConfig()
	if c.RecipeTTL > 0 {
		policy.RecipeTTL = c.RecipeTTL
	}
	if c.ListTTL > 0 {
		policy.ListTTL = c.ListTTL
	}
	if c.QueryTTL > 0 {
		policy.QueryTTL = c.QueryTTL
	}
	if c.PrimeTTL > 0 {
		policy.PrimeTTL = c.PrimeTTL
	}
	if c.StoreTimeout > 0 {
		policy.StoreTimeout = c.StoreTimeout
	}
	return policy
}

// Load reads configuration from an optional config file and RECIPECORE_*
// environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("RECIPECORE")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; environment variables and defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("cache.backend", BackendMemory)
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("log.level", "info")
}

func validate(cfg *Config) error {
	switch cfg.Cache.Backend {
	case BackendRedis:
		if cfg.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("cache.backend must be %q or %q, got %q", BackendRedis, BackendMemory, cfg.Cache.Backend)
	}
	return cfg.Cache.Policy().Validate()
}
