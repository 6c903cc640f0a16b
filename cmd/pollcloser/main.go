package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/vncsmyrnk/tarotstamp/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/tarotstamp/internal/config"
	"github.com/vncsmyrnk/tarotstamp/internal/core/services"
	"github.com/vncsmyrnk/tarotstamp/internal/logger"
)

func main() {
	_ = godotenv.Load()

	log := logger.New(os.Getenv("APP_ENV"))

	db := config.DatabaseConfig{URL: os.Getenv("DATABASE_URL")}
	flag.StringVar(&db.URL, "db-url", db.URL, "Database URL, overrides the other db flags")
	flag.StringVar(&db.Host, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	flag.StringVar(&db.Port, "db-port", os.Getenv("POSTGRES_PORT"), "Database port")
	flag.StringVar(&db.User, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	flag.StringVar(&db.Password, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	flag.StringVar(&db.Name, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	flag.Parse()

	if err := run(log, db.ConnectionString()); err != nil {
		log.Error("poll closing failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, connStr string) error {
	conn, err := postgres.Open(connStr)
	if err != nil {
		return err
	}
	defer conn.Close()

	closer := services.NewCloserService(postgres.NewPollRepository(conn), log)

	// Use a timeout for the job execution to prevent it from hanging indefinitely
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Info("starting poll closing job")

	closed, err := closer.CloseExpired(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("closed %d polls before failing: %w", closed, err)
	}

	log.Info("poll closing completed", "closed", closed)
	return nil
}
