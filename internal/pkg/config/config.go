package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port            string        `env:"PORT, required"`
	Env             string        `env:"ENV, default=development"`
	LogLevel        string        `env:"LOG_LEVEL, default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Auth     AuthConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Mongo    MongoConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=1h"`
	// AdminRegistrationKey unlocks role "admin" at registration. Empty
	// disables admin self-registration entirely.
	AdminRegistrationKey string `env:"ADMIN_REGISTRATION_KEY"`
	HashWorkers          int    `env:"HASH_WORKERS, default=0"`
}

type DatabaseConfig struct {
	Driver       string        `env:"DB_DRIVER, default=sqlite"`
	URL          string        `env:"DATABASE_URL, required"`
	QueryTimeout time.Duration `env:"DB_QUERY_TIMEOUT, default=5s"`
}

// RedisConfig enables login throttling when Addr is set.
type RedisConfig struct {
	Addr          string        `env:"REDIS_ADDR"`
	Password      string        `env:"REDIS_PASSWORD"`
	DB            int           `env:"REDIS_DB, default=0"`
	MaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	LockoutWindow time.Duration `env:"LOGIN_LOCKOUT_WINDOW, default=15m"`
}

// MongoConfig enables the authentication audit trail when URI is set.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=movies"`
}

// IsDevelopment reports whether pretty console logging should be used.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads the configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	// go-envconfig's "required" accepts a variable that is set but empty.
	for key, value := range map[string]string{
		"PORT":         c.Port,
		"JWT_SECRET":   c.Auth.JWTSecret,
		"DATABASE_URL": c.Database.URL,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}

	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.Auth.HashWorkers < 0 {
		return fmt.Errorf("HASH_WORKERS must not be negative")
	}
	return nil
}
