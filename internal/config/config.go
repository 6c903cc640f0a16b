package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

type Config struct {
	Env      string `env:"APP_ENV" env-default:"local" env-description:"local, dev or prod"`
	HTTP     HTTPConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Ballot   BallotConfig
}

type HTTPConfig struct {
	Addr           string   `env:"HTTP_ADDR" env-default:"0.0.0.0:8080"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:8081"`
	CookieDomain   string   `env:"COOKIE_DOMAIN"`
	CookieSecure   bool     `env:"COOKIE_SECURE" env-default:"true"`
}

type DatabaseConfig struct {
	Type       string `env:"DATABASE_TYPE" env-default:"postgres" env-description:"postgres or sqlite"`
	URL        string `env:"DATABASE_URL"`
	Host       string `env:"POSTGRES_HOST" env-default:"localhost"`
	Port       string `env:"POSTGRES_PORT" env-default:"5432"`
	User       string `env:"POSTGRES_USER"`
	Password   string `env:"POSTGRES_PASSWORD"`
	Name       string `env:"POSTGRES_DB"`
	SQLitePath string `env:"SQLITE_PATH" env-default:"tarotstamp.db"`
}

type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET" env-required:"true"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" env-default:"24h"`
	AdminPassword  string        `env:"ADMIN_PASSWORD"`
}

type BallotConfig struct {
	SubmitTimeout     time.Duration `env:"SUBMIT_TIMEOUT" env-default:"10s"`
	ReadRetryAttempts int           `env:"READ_RETRY_ATTEMPTS" env-default:"3"`
	ReadRetryDelay    time.Duration `env:"READ_RETRY_DELAY" env-default:"1s"`
}

// ConnectionString returns DATABASE_URL when set, otherwise a URL built from
// the POSTGRES_* variables.
func (d DatabaseConfig) ConnectionString() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", d.User, d.Password, d.Host, d.Port, d.Name)
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	switch cfg.Database.Type {
	case DatabasePostgres, DatabaseSQLite:
	default:
		return nil, fmt.Errorf("unsupported DATABASE_TYPE %q", cfg.Database.Type)
	}
	if cfg.Ballot.ReadRetryAttempts < 1 {
		return nil, fmt.Errorf("READ_RETRY_ATTEMPTS must be at least 1, got %d", cfg.Ballot.ReadRetryAttempts)
	}

	return &cfg, nil
}
