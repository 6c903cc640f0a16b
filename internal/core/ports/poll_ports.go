package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
)

type PollRepository interface {
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	ListActive(ctx context.Context) ([]*domain.Poll, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type CreatePollInput struct {
	Title         string
	Description   string
	Options       []string
	AllowMultiple bool
	MaxSelections int
	Anonymous     bool
	ClosesAt      *time.Time
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (*domain.Poll, error)
	GetPoll(ctx context.Context, id string) (*domain.Poll, error)
	ListActive(ctx context.Context) ([]*domain.Poll, error)
}

type CloserService interface {
	CloseExpired(ctx context.Context, now time.Time) (int, error)
}
