package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vncsmyrnk/tarotstamp/internal/adapters/handler/http"
	"github.com/vncsmyrnk/tarotstamp/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/tarotstamp/internal/adapters/repository/sqlite"
	"github.com/vncsmyrnk/tarotstamp/internal/config"
	"github.com/vncsmyrnk/tarotstamp/internal/core/ports"
	"github.com/vncsmyrnk/tarotstamp/internal/core/services"
	"github.com/vncsmyrnk/tarotstamp/internal/logger"
)

type repositories struct {
	polls     ports.PollRepository
	responses ports.ResponseRepository
	customers ports.CustomerRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	db, repos, err := openStore(cfg.Database)
	if err != nil {
		log.Error("failed to open database", "type", cfg.Database.Type, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	retry := services.RetryPolicy{
		Attempts: cfg.Ballot.ReadRetryAttempts,
		Delay:    cfg.Ballot.ReadRetryDelay,
	}

	// Initialize Services
	authService := services.NewAuthService(repos.customers, cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	customerService := services.NewCustomerService(repos.customers)
	pollService := services.NewPollService(repos.polls, retry, log)
	ballotService := services.NewBallotService(repos.polls, repos.responses, services.BallotConfig{
		SubmitTimeout: cfg.Ballot.SubmitTimeout,
		ReadRetry:     retry,
	}, log)

	// Initialize Handlers
	handler := http.NewHandler(http.Handlers{
		Auth:     http.NewAuthHandler(authService, cfg.Auth.AccessTokenTTL, cfg.HTTP.CookieDomain, cfg.HTTP.CookieSecure),
		Customer: http.NewCustomerHandler(customerService),
		Poll:     http.NewPollHandler(pollService, ballotService),
		Ballot:   http.NewBallotHandler(ballotService),
	}, http.NewAuthMiddleware(authService, cfg.Auth.AdminPassword), cfg.HTTP.AllowedOrigins)

	server := &stdhttp.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           otelhttp.NewHandler(handler, "tarotstamp"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server listening", "addr", cfg.HTTP.Addr, "env", cfg.Env, "database", cfg.Database.Type)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}

func openStore(cfg config.DatabaseConfig) (*sql.DB, repositories, error) {
	switch cfg.Type {
	case config.DatabaseSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, repositories{}, err
		}
		return db, repositories{
			polls:     sqlite.NewPollRepository(db),
			responses: sqlite.NewResponseRepository(db),
			customers: sqlite.NewCustomerRepository(db),
		}, nil
	case config.DatabasePostgres:
		connStr := cfg.ConnectionString()
		if err := postgres.Migrate(connStr); err != nil {
			return nil, repositories{}, err
		}
		db, err := postgres.Open(connStr)
		if err != nil {
			return nil, repositories{}, err
		}
		return db, repositories{
			polls:     postgres.NewPollRepository(db),
			responses: postgres.NewResponseRepository(db),
			customers: postgres.NewCustomerRepository(db),
		}, nil
	default:
		return nil, repositories{}, fmt.Errorf("unsupported database type %q", cfg.Type)
	}
}
