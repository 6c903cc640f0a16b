package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
)

type mockPollRepository struct {
	mock.Mock
}

func (m *mockPollRepository) Save(ctx context.Context, poll *domain.Poll) error {
	return m.Called(ctx, poll).Error(0)
}

func (m *mockPollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	args := m.Called(ctx, id)
	poll, _ := args.Get(0).(*domain.Poll)
	return poll, args.Error(1)
}

func (m *mockPollRepository) ListActive(ctx context.Context) ([]*domain.Poll, error) {
	args := m.Called(ctx)
	polls, _ := args.Get(0).([]*domain.Poll)
	return polls, args.Error(1)
}

func (m *mockPollRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockResponseRepository struct {
	mock.Mock
}

func (m *mockResponseRepository) ListByPoll(ctx context.Context, pollID uuid.UUID) ([]domain.Response, error) {
	args := m.Called(ctx, pollID)
	responses, _ := args.Get(0).([]domain.Response)
	return responses, args.Error(1)
}

func (m *mockResponseRepository) GetByPollAndCustomer(ctx context.Context, pollID, customerID uuid.UUID) (*domain.Response, error) {
	args := m.Called(ctx, pollID, customerID)
	resp, _ := args.Get(0).(*domain.Response)
	return resp, args.Error(1)
}

func (m *mockResponseRepository) Insert(ctx context.Context, resp *domain.Response) error {
	return m.Called(ctx, resp).Error(0)
}

func (m *mockResponseRepository) Update(ctx context.Context, id uuid.UUID, selection domain.Selection, votedAt time.Time) (*domain.Response, error) {
	args := m.Called(ctx, id, selection, votedAt)
	resp, _ := args.Get(0).(*domain.Response)
	return resp, args.Error(1)
}

type mockCustomerRepository struct {
	mock.Mock
}

func (m *mockCustomerRepository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	args := m.Called(ctx, phone)
	customer, _ := args.Get(0).(*domain.Customer)
	return customer, args.Error(1)
}

func (m *mockCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	customer, _ := args.Get(0).(*domain.Customer)
	return customer, args.Error(1)
}
