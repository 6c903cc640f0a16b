package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
	"github.com/vncsmyrnk/tarotstamp/internal/core/ports"
)

type CustomerRepository struct {
	db *sql.DB
}

var _ ports.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	query := `SELECT id, name, phone_number, stamps, coupons, created_at FROM customers WHERE phone_number = ?`
	return r.get(ctx, query, phone)
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := `SELECT id, name, phone_number, stamps, coupons, created_at FROM customers WHERE id = ?`
	return r.get(ctx, query, id)
}

// Create registers a customer. Sign-up happens outside this service, so it
// is used by seeding tools and tests only.
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (id, name, phone_number, stamps, coupons, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		customer.ID, customer.Name, customer.PhoneNumber, customer.Stamps, customer.Coupons, formatTime(customer.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) get(ctx context.Context, query string, arg any) (*domain.Customer, error) {
	customer := &domain.Customer{}
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&customer.ID, &customer.Name, &customer.PhoneNumber, &customer.Stamps, &customer.Coupons, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if customer.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return customer, nil
}
