package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
	"github.com/vncsmyrnk/tarotstamp/internal/core/ports"
)

const DefaultSubmitTimeout = 10 * time.Second

type BallotConfig struct {
	SubmitTimeout time.Duration
	ReadRetry     RetryPolicy
}

type ballotService struct {
	pollRepo     ports.PollRepository
	responseRepo ports.ResponseRepository
	cfg          BallotConfig
	logger       *slog.Logger
	now          func() time.Time
}

func NewBallotService(pollRepo ports.PollRepository, responseRepo ports.ResponseRepository, cfg BallotConfig, logger *slog.Logger) ports.BallotService {
	if cfg.SubmitTimeout <= 0 {
		cfg.SubmitTimeout = DefaultSubmitTimeout
	}
	return &ballotService{
		pollRepo:     pollRepo,
		responseRepo: responseRepo,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// Submit stores input.Selection as the customer's response: an update of
// ExistingResponseID when set, an insert otherwise. An insert that loses a
// race against another submission for the same poll and customer is turned
// into an update of the stored response. Tallies are not refreshed.
func (s *ballotService) Submit(ctx context.Context, input ports.SubmitInput) (*domain.Response, error) {
	if len(input.Selection) == 0 {
		return nil, domain.ErrEmptySelection
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.SubmitTimeout)
	defer cancel()

	votedAt := s.now().UTC()
	selection := input.Selection.Clone()

	if input.ExistingResponseID != nil {
		resp, err := s.responseRepo.Update(ctx, *input.ExistingResponseID, selection, votedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to update response: %w", submitErr(ctx, err))
		}
		return resp, nil
	}

	resp := &domain.Response{
		ID:              uuid.New(),
		PollID:          input.PollID,
		CustomerID:      input.CustomerID,
		SelectedOptions: selection,
		VotedAt:         votedAt,
	}

	err := s.responseRepo.Insert(ctx, resp)
	if errors.Is(err, domain.ErrConflict) {
		s.logger.Warn("response already stored, updating instead",
			"poll_id", input.PollID, "customer_id", input.CustomerID)
		return s.replaceStored(ctx, input.PollID, input.CustomerID, selection, votedAt)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert response: %w", submitErr(ctx, err))
	}

	return resp, nil
}

func (s *ballotService) replaceStored(ctx context.Context, pollID, customerID uuid.UUID, selection domain.Selection, votedAt time.Time) (*domain.Response, error) {
	stored, err := s.responseRepo.GetByPollAndCustomer(ctx, pollID, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stored response: %w", submitErr(ctx, err))
	}
	if stored == nil {
		return nil, domain.ErrAlreadyResponded
	}

	resp, err := s.responseRepo.Update(ctx, stored.ID, selection, votedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update response: %w", submitErr(ctx, err))
	}
	return resp, nil
}

// submitErr reports an expired submit deadline as transient even when the
// driver hides the context error behind its own.
func submitErr(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrTransient, err)
	}
	return classify(err)
}

func (s *ballotService) OpenBallot(ctx context.Context, pollID, customerID uuid.UUID) (*domain.Ballot, error) {
	poll, err := s.getPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}

	existing, err := s.MyResponse(ctx, pollID, customerID)
	if err != nil {
		return nil, err
	}

	return domain.NewBallot(poll, existing), nil
}

func (s *ballotService) SubmitBallot(ctx context.Context, ballot *domain.Ballot, customerID uuid.UUID) (*domain.Response, error) {
	if ballot.State() == domain.BallotViewing {
		return nil, domain.ErrBallotNotEditable
	}

	poll := ballot.Poll()
	selection := ballot.Selection()
	if err := domain.ValidateSelection(poll, selection); err != nil {
		return nil, err
	}

	resp, err := s.Submit(ctx, ports.SubmitInput{
		PollID:             poll.ID,
		CustomerID:         customerID,
		Selection:          selection,
		ExistingResponseID: ballot.ExistingResponseID(),
	})
	if err != nil {
		return nil, err
	}

	ballot.Commit(resp)
	s.logger.Info("ballot submitted", "poll_id", poll.ID, "response_id", resp.ID, "options", len(selection))
	return resp, nil
}

func (s *ballotService) MyResponse(ctx context.Context, pollID, customerID uuid.UUID) (*domain.Response, error) {
	resp, err := withReadRetry(ctx, s.cfg.ReadRetry, s.logger, "responses.get", func(ctx context.Context) (*domain.Response, error) {
		return s.responseRepo.GetByPollAndCustomer(ctx, pollID, customerID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get response: %w", err)
	}
	return resp, nil
}

// Results recomputes the tally from every stored response of the poll.
func (s *ballotService) Results(ctx context.Context, pollID uuid.UUID) (*domain.Results, error) {
	poll, err := s.getPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}

	responses, err := withReadRetry(ctx, s.cfg.ReadRetry, s.logger, "responses.list", func(ctx context.Context) ([]domain.Response, error) {
		return s.responseRepo.ListByPoll(ctx, pollID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	results := domain.Summarize(poll, responses)
	return &results, nil
}

func (s *ballotService) getPoll(ctx context.Context, pollID uuid.UUID) (*domain.Poll, error) {
	poll, err := withReadRetry(ctx, s.cfg.ReadRetry, s.logger, "polls.get", func(ctx context.Context) (*domain.Poll, error) {
		return s.pollRepo.GetByID(ctx, pollID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	return poll, nil
}
