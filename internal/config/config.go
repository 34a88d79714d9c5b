// Package config loads process-wide settings once at startup. The resulting
// Config is treated as immutable and passed explicitly to the components
// that need it.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/types"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string        `env:"PORT" envDefault:"3000"`
	DatabaseDriver string        `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseURL    string        `env:"DATABASE_URL,required,notEmpty"`
	JWTSecret      string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL       time.Duration `env:"JWT_TTL" envDefault:"1h"`
	DefaultRole    types.Role    `env:"DEFAULT_ROLE" envDefault:"submitter"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	ClientURL      string        `env:"CLIENT_URL"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	GinMode        string        `env:"GIN_MODE" envDefault:"debug"`
}

// Load reads an optional .env file and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DatabaseDriver)
	}

	if !c.DefaultRole.Valid() {
		return fmt.Errorf("invalid DEFAULT_ROLE %q", c.DefaultRole)
	}

	if c.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}

	return nil
}

// Origins returns the CORS/websocket origin allow-list.
func (c *Config) Origins() []string {
	origins := make([]string, 0, len(types.DefaultOrigins)+len(c.AllowedOrigins)+1)
	origins = append(origins, types.DefaultOrigins...)

	if c.ClientURL != "" {
		origins = append(origins, c.ClientURL)
	}

	for _, origin := range c.AllowedOrigins {
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	return origins
}
