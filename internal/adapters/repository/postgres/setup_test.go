package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vncsmyrnk/tarotstamp/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	container, connStr, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	require.NoError(t, postgres.Migrate(connStr))

	db, err := postgres.Open(connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func createCustomer(t *testing.T, db *sql.DB, phone string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(
		"INSERT INTO customers (name, phone_number, stamps) VALUES ($1, $2, $3) RETURNING id",
		"Customer "+phone, phone, 3,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func newPoll(allowMultiple bool, maxSelections int, optionIDs ...string) *domain.Poll {
	poll := &domain.Poll{
		ID:            uuid.New(),
		Title:         "Poll " + uuid.NewString()[:8],
		Description:   "integration",
		AllowMultiple: allowMultiple,
		MaxSelections: maxSelections,
		Active:        true,
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
	for _, id := range optionIDs {
		poll.Options = append(poll.Options, domain.PollOption{ID: id, Text: "Option " + id})
	}
	return poll
}
