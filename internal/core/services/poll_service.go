package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
	"github.com/vncsmyrnk/tarotstamp/internal/core/ports"
)

type pollService struct {
	repo   ports.PollRepository
	retry  RetryPolicy
	logger *slog.Logger
}

func NewPollService(repo ports.PollRepository, retry RetryPolicy, logger *slog.Logger) ports.PollService {
	return &pollService{
		repo:   repo,
		retry:  retry,
		logger: logger,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, error) {
	poll := &domain.Poll{
		ID:            uuid.New(),
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		AllowMultiple: input.AllowMultiple,
		MaxSelections: input.MaxSelections,
		Anonymous:     input.Anonymous,
		Active:        true,
		ClosesAt:      input.ClosesAt,
		CreatedAt:     time.Now().UTC(),
	}
	if !poll.AllowMultiple {
		poll.MaxSelections = 1
	}

	for _, optText := range input.Options {
		optText = strings.TrimSpace(optText)
		if optText == "" {
			continue
		}
		poll.Options = append(poll.Options, domain.PollOption{
			ID:   strconv.Itoa(len(poll.Options) + 1),
			Text: optText,
		})
	}

	if err := poll.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, poll); err != nil {
		return nil, fmt.Errorf("failed to save poll: %w", classify(err))
	}

	s.logger.Info("poll created", "poll_id", poll.ID, "options", len(poll.Options), "allow_multiple", poll.AllowMultiple)
	return poll, nil
}

func (s *pollService) GetPoll(ctx context.Context, id string) (*domain.Poll, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	return withReadRetry(ctx, s.retry, s.logger, "polls.get", func(ctx context.Context) (*domain.Poll, error) {
		return s.repo.GetByID(ctx, pollID)
	})
}

func (s *pollService) ListActive(ctx context.Context) ([]*domain.Poll, error) {
	polls, err := withReadRetry(ctx, s.retry, s.logger, "polls.list", s.repo.ListActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	return polls, nil
}
