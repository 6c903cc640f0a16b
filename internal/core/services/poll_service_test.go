package services

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
	"github.com/vncsmyrnk/tarotstamp/internal/core/ports"
)

func TestPollService_Create(t *testing.T) {
	repo := new(mockPollRepository)
	svc := NewPollService(repo, RetryPolicy{Attempts: 1}, discardLogger())

	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Poll")).Return(nil).Once()

	poll, err := svc.Create(context.Background(), ports.CreatePollInput{
		Title:         "  Next seasonal drink ",
		Options:       []string{"Yuzu tea", "", "Hot chocolate", "Chai"},
		AllowMultiple: true,
		MaxSelections: 2,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, poll.ID)
	assert.Equal(t, "Next seasonal drink", poll.Title)
	assert.True(t, poll.Active)
	assert.Equal(t, []domain.PollOption{
		{ID: "1", Text: "Yuzu tea"},
		{ID: "2", Text: "Hot chocolate"},
		{ID: "3", Text: "Chai"},
	}, poll.Options)
	repo.AssertExpectations(t)
}

func TestPollService_CreateSingleChoiceForcesLimit(t *testing.T) {
	repo := new(mockPollRepository)
	svc := NewPollService(repo, RetryPolicy{Attempts: 1}, discardLogger())
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	poll, err := svc.Create(context.Background(), ports.CreatePollInput{
		Title:         "Open on Sundays?",
		Options:       []string{"Yes", "No"},
		MaxSelections: 5,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, poll.MaxSelections)
	assert.Equal(t, 1, poll.SelectionLimit())
}

func TestPollService_CreateInvalid(t *testing.T) {
	repo := new(mockPollRepository)
	svc := NewPollService(repo, RetryPolicy{Attempts: 1}, discardLogger())

	tests := []ports.CreatePollInput{
		{Title: "", Options: []string{"A", "B"}},
		{Title: "Only one", Options: []string{"A", " "}},
		{Title: "Limit too high", Options: []string{"A", "B"}, AllowMultiple: true, MaxSelections: 3},
		{Title: "No limit", Options: []string{"A", "B"}, AllowMultiple: true},
	}
	for _, input := range tests {
		_, err := svc.Create(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrValidation, input.Title)
	}
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPollService_GetPoll(t *testing.T) {
	repo := new(mockPollRepository)
	svc := NewPollService(repo, RetryPolicy{Attempts: 2, Delay: time.Millisecond}, discardLogger())

	_, err := svc.GetPoll(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidPollID)

	poll := testPoll()
	repo.On("GetByID", mock.Anything, poll.ID).Return(nil, driver.ErrBadConn).Once()
	repo.On("GetByID", mock.Anything, poll.ID).Return(poll, nil).Once()

	got, err := svc.GetPoll(context.Background(), poll.ID.String())
	require.NoError(t, err)
	assert.Equal(t, poll, got)

	missing := uuid.New()
	repo.On("GetByID", mock.Anything, missing).Return(nil, domain.ErrPollNotFound).Once()
	_, err = svc.GetPoll(context.Background(), missing.String())
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestPollService_ListActive(t *testing.T) {
	repo := new(mockPollRepository)
	svc := NewPollService(repo, RetryPolicy{Attempts: 1}, discardLogger())

	polls := []*domain.Poll{testPoll(), testPoll()}
	repo.On("ListActive", mock.Anything).Return(polls, nil).Once()

	got, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
