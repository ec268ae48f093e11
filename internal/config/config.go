package config // package config loads application configuration from the environment

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// DefaultSecretKey is the hardcoded signing secret used when SECRET_KEY is
// not set.  It is fine for local development and nothing else.
const DefaultSecretKey = "devkey"

// Supported values for DB_DRIVER.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Supported values for SESSION_BACKEND.
const (
	SessionCookie = "cookie"
	SessionJWT    = "jwt"
	SessionRedis  = "redis"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable; defaults live in the envDefault tags.
type Config struct {
	Env  string `env:"APP_ENV" envDefault:"development"` // application environment (development/production)
	Port string `env:"APP_PORT" envDefault:"5000"`       // HTTP port to listen on

	SecretKey string `env:"SECRET_KEY" envDefault:"devkey"` // secret used to sign session cookies

	DBDriver string `env:"DB_DRIVER" envDefault:"sqlite"`      // sqlite or mysql
	DBPath   string `env:"DB_PATH" envDefault:"trackforge.db"` // sqlite database file
	DBUser   string `env:"DB_USER" envDefault:"root"`          // mysql user
	DBPass   string `env:"DB_PASS"`                            // mysql password (empty allowed)
	DBHost   string `env:"DB_HOST"`                            // mysql host
	DBPort   string `env:"DB_PORT" envDefault:"3306"`          // mysql port
	DBName   string `env:"DB_NAME"`                            // mysql database name

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"` // bcrypt cost for password hashing

	SessionBackend string        `env:"SESSION_BACKEND" envDefault:"cookie"`
	SessionMaxAge  time.Duration `env:"SESSION_MAX_AGE" envDefault:"744h"`
	RedisURL       string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads an optional .env file, then the process environment, and
// validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.SecretKey == "" {
		return errors.New("SECRET_KEY must not be empty")
	}

	switch cfg.DBDriver {
	case DriverSQLite:
		if cfg.DBPath == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	case DriverMySQL:
		if cfg.DBHost == "" || cfg.DBName == "" {
			return errors.New("DB_HOST and DB_NAME are required for the mysql driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	switch cfg.SessionBackend {
	case SessionCookie, SessionJWT, SessionRedis:
	default:
		return fmt.Errorf("unsupported SESSION_BACKEND %q", cfg.SessionBackend)
	}

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.SessionMaxAge <= 0 {
		return errors.New("SESSION_MAX_AGE must be positive")
	}
	return nil
}
