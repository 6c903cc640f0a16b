package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
	"github.com/vncsmyrnk/tarotstamp/internal/core/ports"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) ports.CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	query := `SELECT id, name, phone_number, stamps, coupons, created_at FROM customers WHERE phone_number = $1`
	return r.get(ctx, query, phone)
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := `SELECT id, name, phone_number, stamps, coupons, created_at FROM customers WHERE id = $1`
	return r.get(ctx, query, id)
}

func (r *CustomerRepository) get(ctx context.Context, query string, arg any) (*domain.Customer, error) {
	customer := &domain.Customer{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&customer.ID, &customer.Name, &customer.PhoneNumber, &customer.Stamps, &customer.Coupons, &customer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return customer, nil
}
