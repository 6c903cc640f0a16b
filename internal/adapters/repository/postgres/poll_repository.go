package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
	"github.com/vncsmyrnk/tarotstamp/internal/core/ports"
)

type pollRepository struct {
	db *sql.DB
}

func NewPollRepository(db *sql.DB) ports.PollRepository {
	return &pollRepository{
		db: db,
	}
}

const pollColumns = `id, title, description, allow_multiple, max_selections, is_anonymous, is_active, closes_at, created_at`

func (r *pollRepository) Save(ctx context.Context, poll *domain.Poll) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryPoll := `
		INSERT INTO polls (id, title, description, allow_multiple, max_selections, is_anonymous, is_active, closes_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = tx.ExecContext(ctx, queryPoll,
		poll.ID, poll.Title, poll.Description, poll.AllowMultiple, poll.SelectionLimit(),
		poll.Anonymous, poll.Active, poll.ClosesAt, poll.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	queryOption := `
		INSERT INTO poll_options (poll_id, id, position, text)
		VALUES ($1, $2, $3, $4)
	`
	stmt, err := tx.PrepareContext(ctx, queryOption)
	if err != nil {
		return fmt.Errorf("failed to prepare option statement: %w", err)
	}
	defer stmt.Close()

	for i, opt := range poll.Options {
		_, err = stmt.ExecContext(ctx, poll.ID, opt.ID, i, opt.Text)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *pollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	queryPoll := `SELECT ` + pollColumns + ` FROM polls WHERE id = $1`

	poll, err := scanPoll(r.db.QueryRowContext(ctx, queryPoll, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}

	options, err := r.fetchOptions(ctx, poll.ID)
	if err != nil {
		return nil, err
	}
	poll.Options = options

	return poll, nil
}

func (r *pollRepository) ListActive(ctx context.Context) ([]*domain.Poll, error) {
	query := `
		SELECT ` + pollColumns + `
		FROM polls
		WHERE is_active
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	var polls []*domain.Poll
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}
	rows.Close()

	for _, poll := range polls {
		options, err := r.fetchOptions(ctx, poll.ID)
		if err != nil {
			return nil, err
		}
		poll.Options = options
	}
	return polls, nil
}

func (r *pollRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE polls SET is_active = FALSE WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate poll: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrPollNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPoll(row rowScanner) (*domain.Poll, error) {
	var poll domain.Poll
	var closesAt sql.NullTime
	err := row.Scan(
		&poll.ID, &poll.Title, &poll.Description, &poll.AllowMultiple, &poll.MaxSelections,
		&poll.Anonymous, &poll.Active, &closesAt, &poll.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if closesAt.Valid {
		poll.ClosesAt = &closesAt.Time
	}
	return &poll, nil
}

func (r *pollRepository) fetchOptions(ctx context.Context, pollID uuid.UUID) ([]domain.PollOption, error) {
	queryOptions := `
		SELECT id, text
		FROM poll_options
		WHERE poll_id = $1
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, queryOptions, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll options: %w", err)
	}
	defer rows.Close()

	var options []domain.PollOption
	for rows.Next() {
		var opt domain.PollOption
		if err := rows.Scan(&opt.ID, &opt.Text); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating options: %w", err)
	}
	return options, nil
}
