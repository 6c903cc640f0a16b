package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
)

type CustomerRepository interface {
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
}

type AuthService interface {
	Login(ctx context.Context, phone string) (*domain.Customer, string, error) // returns customer, access_token, error
	ParseToken(token string) (*domain.Session, error)
}

type CustomerService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
}
