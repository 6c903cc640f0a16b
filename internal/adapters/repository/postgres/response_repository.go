package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
	"github.com/vncsmyrnk/tarotstamp/internal/core/ports"
)

type responseRepository struct {
	db *sql.DB
}

// NewResponseRepository relies on the vote_responses_poll_customer_key
// constraint for the one-response-per-customer rule.
func NewResponseRepository(db *sql.DB) ports.ResponseRepository {
	return &responseRepository{
		db: db,
	}
}

const responseColumns = `id, poll_id, customer_id, selected_options, voted_at`

func (r *responseRepository) ListByPoll(ctx context.Context, pollID uuid.UUID) ([]domain.Response, error) {
	query := `SELECT ` + responseColumns + ` FROM vote_responses WHERE poll_id = $1`

	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	defer rows.Close()

	var responses []domain.Response
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, *resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating responses: %w", err)
	}
	return responses, nil
}

func (r *responseRepository) GetByPollAndCustomer(ctx context.Context, pollID, customerID uuid.UUID) (*domain.Response, error) {
	query := `SELECT ` + responseColumns + ` FROM vote_responses WHERE poll_id = $1 AND customer_id = $2`

	resp, err := scanResponse(r.db.QueryRowContext(ctx, query, pollID, customerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get response: %w", err)
	}
	return resp, nil
}

func (r *responseRepository) Insert(ctx context.Context, resp *domain.Response) error {
	query := `
		INSERT INTO vote_responses (id, poll_id, customer_id, selected_options, voted_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		resp.ID, resp.PollID, resp.CustomerID, pq.Array([]string(resp.SelectedOptions)), resp.VotedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyResponded
		}
		return fmt.Errorf("failed to save response: %w", err)
	}
	return nil
}

func (r *responseRepository) Update(ctx context.Context, id uuid.UUID, selection domain.Selection, votedAt time.Time) (*domain.Response, error) {
	query := `
		UPDATE vote_responses
		SET selected_options = $1, voted_at = $2
		WHERE id = $3
		RETURNING ` + responseColumns

	resp, err := scanResponse(r.db.QueryRowContext(ctx, query, pq.Array([]string(selection)), votedAt, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResponseNotFound
		}
		return nil, fmt.Errorf("failed to update response: %w", err)
	}
	return resp, nil
}

func scanResponse(row rowScanner) (*domain.Response, error) {
	var resp domain.Response
	var selected []string
	if err := row.Scan(&resp.ID, &resp.PollID, &resp.CustomerID, pq.Array(&selected), &resp.VotedAt); err != nil {
		return nil, err
	}
	resp.SelectedOptions = selected
	return &resp, nil
}
