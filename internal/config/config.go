// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"your-secret-key",
}

// MinJWTSecretLength is the minimum required length for the JWT signing secret.
const MinJWTSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ServerPort int    `env:"RUMBA_SERVER_PORT" envDefault:"8080"`
	DBPath     string `env:"RUMBA_DB_PATH" envDefault:"./data/rumba.db"`
	Env        string `env:"RUMBA_ENV" envDefault:"development"`
	LogLevel   string `env:"RUMBA_LOG_LEVEL" envDefault:"info"`

	// Auth
	JWTSecret string        `env:"RUMBA_JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"RUMBA_TOKEN_TTL" envDefault:"24h"`

	// Reporting. Revenue is estimated as RevenueMultiplier x expenses until a
	// real revenue feed exists; see the report service for how it is applied.
	RevenueMultiplier   float64 `env:"RUMBA_REVENUE_MULTIPLIER" envDefault:"1.5"`
	MonthlyWindowMonths int     `env:"RUMBA_MONTHLY_WINDOW_MONTHS" envDefault:"6"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the listen address in :port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

// Load reads an optional .env file, parses environment variables and returns
// a validated Config.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid RUMBA_SERVER_PORT %d: must be between 1 and 65535", c.ServerPort)
	}

	if len(c.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("RUMBA_JWT_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinJWTSecretLength, len(c.JWTSecret))
	}
	for _, weak := range knownWeakSecrets {
		if c.JWTSecret == weak {
			return fmt.Errorf("RUMBA_JWT_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if c.RevenueMultiplier <= 0 {
		return fmt.Errorf("invalid RUMBA_REVENUE_MULTIPLIER %v: must be positive", c.RevenueMultiplier)
	}
	if c.MonthlyWindowMonths < 1 {
		return fmt.Errorf("invalid RUMBA_MONTHLY_WINDOW_MONTHS %d: must be at least 1", c.MonthlyWindowMonths)
	}
	return nil
}
