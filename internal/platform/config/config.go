// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	LogMode string `env:"LOG_MODE" envDefault:"development"`
	Port    string `env:"PORT" envDefault:"8080"`
	Version string `env:"APP_VERSION" envDefault:"1.0.0"`

	DB DBConfig

	JWTSecretKey   string        `env:"JWT_SECRET_KEY" envDefault:"dev_secret_key"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`

	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173,http://127.0.0.1:3000,http://127.0.0.1:5173"`

	SeedEndpointEnabled bool `env:"SEED_ENDPOINT_ENABLED" envDefault:"false"`

	Redis RedisConfig
	OTel  OTelConfig
}

type DBConfig struct {
	// Driver is one of postgres, mysql or sqlite.
	Driver      string        `env:"DB_DRIVER" envDefault:"sqlite"`
	URL         string        `env:"DATABASE_URL" envDefault:"motodiag.db"`
	MaxOpenConn int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	SlowQuery   time.Duration `env:"DB_SLOW_QUERY" envDefault:"1s"`
}

type RedisConfig struct {
	Addr    string `env:"REDIS_ADDR"`
	Channel string `env:"REDIS_CHANNEL" envDefault:"consultations"`
}

type OTelConfig struct {
	Enabled     bool    `env:"OTEL_ENABLED" envDefault:"false"`
	ServiceName string  `env:"OTEL_SERVICE_NAME" envDefault:"motodiag"`
	SampleRatio float64 `env:"OTEL_SAMPLER_RATIO" envDefault:"0.1"`
	Endpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Insecure    bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
	// Headers is a comma separated list of key=value pairs.
	Headers map[string]string `env:"OTEL_EXPORTER_OTLP_HEADERS" envKeyValSeparator:"="`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DB.Driver = strings.ToLower(strings.TrimSpace(cfg.DB.Driver))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DB.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if strings.TrimSpace(c.DB.URL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.IsProduction() && c.JWTSecretKey == "dev_secret_key" {
		return fmt.Errorf("JWT_SECRET_KEY must be set in production")
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}
	if c.OTel.SampleRatio < 0 || c.OTel.SampleRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLER_RATIO must be within [0,1]")
	}
	return nil
}

func (c Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
