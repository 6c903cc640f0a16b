package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/tarotstamp/internal/core/ports"
)

type closerService struct {
	pollRepo ports.PollRepository
	logger   *slog.Logger
}

func NewCloserService(pollRepo ports.PollRepository, logger *slog.Logger) ports.CloserService {
	return &closerService{
		pollRepo: pollRepo,
		logger:   logger,
	}
}

// CloseExpired deactivates every active poll whose closing time is not
// after now and returns how many were closed.
func (s *closerService) CloseExpired(ctx context.Context, now time.Time) (int, error) {
	polls, err := s.pollRepo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch active polls: %w", err)
	}

	var expired []uuid.UUID
	for _, poll := range polls {
		if !poll.IsOpen(now) {
			expired = append(expired, poll.ID)
		}
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(expired))

	for _, id := range expired {
		wg.Add(1)
		go func(pID uuid.UUID) {
			defer wg.Done()
			if err := s.pollRepo.Deactivate(ctx, pID); err != nil {
				errChan <- fmt.Errorf("failed to close poll %s: %w", pID, err)
				return
			}
			s.logger.Info("poll closed", "poll_id", pID)
		}(id)
	}

	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}

	return len(expired) - len(errs), errors.Join(errs...)
}
