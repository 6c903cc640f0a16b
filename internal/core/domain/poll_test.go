package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
)

func TestPoll_SelectionLimit(t *testing.T) {
	assert.Equal(t, 1, newPoll(false, 4, "A", "B").SelectionLimit())
	assert.Equal(t, 3, newPoll(true, 3, "A", "B", "C").SelectionLimit())
	assert.Equal(t, 1, newPoll(true, 0, "A", "B").SelectionLimit())
}

func TestPoll_IsOpen(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	poll := newPoll(false, 0, "A", "B")
	assert.True(t, poll.IsOpen(now))

	later := now.Add(time.Hour)
	poll.ClosesAt = &later
	assert.True(t, poll.IsOpen(now))
	assert.False(t, poll.IsOpen(later))

	poll.ClosesAt = nil
	poll.Active = false
	assert.False(t, poll.IsOpen(now))
}

func TestPoll_Validate(t *testing.T) {
	assert.NoError(t, newPoll(true, 2, "A", "B", "C").Validate())
	assert.NoError(t, newPoll(false, 0, "A", "B").Validate())

	assert.ErrorIs(t, newPoll(false, 0, "A").Validate(), domain.ErrInvalidPoll)
	assert.ErrorIs(t, newPoll(false, 0, "A", "A").Validate(), domain.ErrInvalidPoll)
	assert.ErrorIs(t, newPoll(true, 0, "A", "B").Validate(), domain.ErrInvalidPoll)
	assert.ErrorIs(t, newPoll(true, 3, "A", "B").Validate(), domain.ErrInvalidPoll)

	untitled := newPoll(false, 0, "A", "B")
	untitled.Title = ""
	assert.ErrorIs(t, untitled.Validate(), domain.ErrValidation)
}
