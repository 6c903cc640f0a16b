package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, DatabasePostgres, cfg.Database.Type)
	assert.Equal(t, 10*time.Second, cfg.Ballot.SubmitTimeout)
	assert.Equal(t, 3, cfg.Ballot.ReadRetryAttempts)
	assert.Equal(t, time.Second, cfg.Ballot.ReadRetryDelay)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.True(t, cfg.HTTP.CookieSecure)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("DATABASE_TYPE", DatabaseSQLite)
	t.Setenv("SQLITE_PATH", "/tmp/votes.db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SUBMIT_TIMEOUT", "3s")
	t.Setenv("READ_RETRY_ATTEMPTS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, DatabaseSQLite, cfg.Database.Type)
	assert.Equal(t, "/tmp/votes.db", cfg.Database.SQLitePath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.Ballot.SubmitTimeout)
	assert.Equal(t, 5, cfg.Ballot.ReadRetryAttempts)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("unknown database type", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("DATABASE_TYPE", "mysql")

		_, err := Load()
		assert.ErrorContains(t, err, "DATABASE_TYPE")
	})

	t.Run("no retry attempts", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("READ_RETRY_ATTEMPTS", "0")

		_, err := Load()
		assert.ErrorContains(t, err, "READ_RETRY_ATTEMPTS")
	})
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5433", User: "app", Password: "pw", Name: "stamps"}
	assert.Equal(t, "postgres://app:pw@db:5433/stamps?sslmode=disable", d.ConnectionString())

	d.URL = "postgres://override"
	assert.Equal(t, "postgres://override", d.ConnectionString())
}
