package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
)

// ResponseRepository stores poll responses.
//
// Implementations must reject a second response for the same poll and
// customer with domain.ErrAlreadyResponded; services rely on the store for
// that uniqueness and do not serialize submissions themselves.
type ResponseRepository interface {
	ListByPoll(ctx context.Context, pollID uuid.UUID) ([]domain.Response, error)
	// GetByPollAndCustomer returns nil, nil when the customer has not answered.
	GetByPollAndCustomer(ctx context.Context, pollID, customerID uuid.UUID) (*domain.Response, error)
	Insert(ctx context.Context, resp *domain.Response) error
	// Update replaces the whole selection and the vote time of the response
	// with the given id, or fails with domain.ErrResponseNotFound.
	Update(ctx context.Context, id uuid.UUID, selection domain.Selection, votedAt time.Time) (*domain.Response, error)
}

type SubmitInput struct {
	PollID             uuid.UUID
	CustomerID         uuid.UUID
	Selection          domain.Selection
	ExistingResponseID *uuid.UUID
}

type BallotService interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.Response, error)
	OpenBallot(ctx context.Context, pollID, customerID uuid.UUID) (*domain.Ballot, error)
	SubmitBallot(ctx context.Context, ballot *domain.Ballot, customerID uuid.UUID) (*domain.Response, error)
	MyResponse(ctx context.Context, pollID, customerID uuid.UUID) (*domain.Response, error)
	Results(ctx context.Context, pollID uuid.UUID) (*domain.Results, error)
}
