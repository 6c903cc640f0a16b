package services

import (
	"context"
	"database/sql/driver"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
	"github.com/vncsmyrnk/tarotstamp/internal/core/ports"
)

var fixedNow = time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestBallotService(pollRepo *mockPollRepository, responseRepo *mockResponseRepository, timeout time.Duration) *ballotService {
	svc := NewBallotService(pollRepo, responseRepo, BallotConfig{
		SubmitTimeout: timeout,
		ReadRetry:     RetryPolicy{Attempts: 3, Delay: time.Millisecond},
	}, discardLogger()).(*ballotService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func testPoll() *domain.Poll {
	return &domain.Poll{
		ID:            uuid.New(),
		Title:         "Favourite card",
		AllowMultiple: true,
		MaxSelections: 2,
		Active:        true,
		Options: []domain.PollOption{
			{ID: "A", Text: "The Fool"},
			{ID: "B", Text: "The Magician"},
			{ID: "C", Text: "The Star"},
		},
	}
}

func TestBallotService_SubmitEmptySelection(t *testing.T) {
	pollRepo := new(mockPollRepository)
	responseRepo := new(mockResponseRepository)
	svc := newTestBallotService(pollRepo, responseRepo, time.Second)

	resp, err := svc.Submit(context.Background(), ports.SubmitInput{
		PollID:     uuid.New(),
		CustomerID: uuid.New(),
		Selection:  domain.Selection{},
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrEmptySelection)
	assert.ErrorIs(t, err, domain.ErrValidation)
	responseRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	responseRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBallotService_SubmitInserts(t *testing.T) {
	pollRepo := new(mockPollRepository)
	responseRepo := new(mockResponseRepository)
	svc := newTestBallotService(pollRepo, responseRepo, time.Second)

	pollID, customerID := uuid.New(), uuid.New()
	responseRepo.On("Insert", mock.Anything, mock.MatchedBy(func(r *domain.Response) bool {
		return r.PollID == pollID && r.CustomerID == customerID &&
			assert.ObjectsAreEqual(domain.Selection{"A", "B"}, r.SelectedOptions) &&
			r.VotedAt.Equal(fixedNow) && r.ID != uuid.Nil
	})).Return(nil).Once()

	resp, err := svc.Submit(context.Background(), ports.SubmitInput{
		PollID:     pollID,
		CustomerID: customerID,
		Selection:  domain.Selection{"A", "B"},
	})

	require.NoError(t, err)
	assert.Equal(t, pollID, resp.PollID)
	assert.Equal(t, domain.Selection{"A", "B"}, resp.SelectedOptions)
	responseRepo.AssertExpectations(t)
}

func TestBallotService_SubmitUpdatesExisting(t *testing.T) {
	pollRepo := new(mockPollRepository)
	responseRepo := new(mockResponseRepository)
	svc := newTestBallotService(pollRepo, responseRepo, time.Second)

	existingID := uuid.New()
	updated := &domain.Response{ID: existingID, SelectedOptions: domain.Selection{"B", "C"}, VotedAt: fixedNow}
	responseRepo.On("Update", mock.Anything, existingID, domain.Selection{"B", "C"}, fixedNow).Return(updated, nil).Once()

	resp, err := svc.Submit(context.Background(), ports.SubmitInput{
		PollID:             uuid.New(),
		CustomerID:         uuid.New(),
		Selection:          domain.Selection{"B", "C"},
		ExistingResponseID: &existingID,
	})

	require.NoError(t, err)
	assert.Equal(t, updated, resp)
	responseRepo.AssertExpectations(t)
	responseRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestBallotService_SubmitUpdateMissing(t *testing.T) {
	pollRepo := new(mockPollRepository)
	responseRepo := new(mockResponseRepository)
	svc := newTestBallotService(pollRepo, responseRepo, time.Second)

	existingID := uuid.New()
	responseRepo.On("Update", mock.Anything, existingID, mock.Anything, mock.Anything).Return(nil, domain.ErrResponseNotFound).Once()

	_, err := svc.Submit(context.Background(), ports.SubmitInput{
		Selection:          domain.Selection{"A"},
		ExistingResponseID: &existingID,
	})

	assert.ErrorIs(t, err, domain.ErrResponseNotFound)
	assert.NotErrorIs(t, err, domain.ErrTransient)
}

func TestBallotService_SubmitConflictBecomesUpdate(t *testing.T) {
	pollRepo := new(mockPollRepository)
	responseRepo := new(mockResponseRepository)
	svc := newTestBallotService(pollRepo, responseRepo, time.Second)

	pollID, customerID := uuid.New(), uuid.New()
	stored := &domain.Response{ID: uuid.New(), PollID: pollID, CustomerID: customerID, SelectedOptions: domain.Selection{"A"}}
	updated := &domain.Response{ID: stored.ID, PollID: pollID, CustomerID: customerID, SelectedOptions: domain.Selection{"C"}, VotedAt: fixedNow}

	responseRepo.On("Insert", mock.Anything, mock.Anything).Return(domain.ErrAlreadyResponded).Once()
	responseRepo.On("GetByPollAndCustomer", mock.Anything, pollID, customerID).Return(stored, nil).Once()
	responseRepo.On("Update", mock.Anything, stored.ID, domain.Selection{"C"}, fixedNow).Return(updated, nil).Once()

	resp, err := svc.Submit(context.Background(), ports.SubmitInput{
		PollID:     pollID,
		CustomerID: customerID,
		Selection:  domain.Selection{"C"},
	})

	require.NoError(t, err)
	assert.Equal(t, stored.ID, resp.ID)
	responseRepo.AssertExpectations(t)
}

func TestBallotService_SubmitTimeoutIsTransient(t *testing.T) {
	pollRepo := new(mockPollRepository)
	responseRepo := new(mockResponseRepository)
	svc := newTestBallotService(pollRepo, responseRepo, 20*time.Millisecond)

	responseRepo.On("Insert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		<-args.Get(0).(context.Context).Done()
	}).Return(context.DeadlineExceeded).Once()

	_, err := svc.Submit(context.Background(), ports.SubmitInput{
		PollID:     uuid.New(),
		CustomerID: uuid.New(),
		Selection:  domain.Selection{"A"},
	})

	assert.ErrorIs(t, err, domain.ErrTransient)
	responseRepo.AssertNumberOfCalls(t, "Insert", 1)
}

func TestBallotService_SubmitBadConnIsNotRetried(t *testing.T) {
	pollRepo := new(mockPollRepository)
	responseRepo := new(mockResponseRepository)
	svc := newTestBallotService(pollRepo, responseRepo, time.Second)

	responseRepo.On("Insert", mock.Anything, mock.Anything).Return(driver.ErrBadConn).Once()

	_, err := svc.Submit(context.Background(), ports.SubmitInput{
		PollID:     uuid.New(),
		CustomerID: uuid.New(),
		Selection:  domain.Selection{"A"},
	})

	assert.ErrorIs(t, err, domain.ErrTransient)
	responseRepo.AssertNumberOfCalls(t, "Insert", 1)
}

func TestBallotService_ResultsRetriesTransientReads(t *testing.T) {
	pollRepo := new(mockPollRepository)
	responseRepo := new(mockResponseRepository)
	svc := newTestBallotService(pollRepo, responseRepo, time.Second)

	poll := testPoll()
	responses := []domain.Response{
		{ID: uuid.New(), PollID: poll.ID, CustomerID: uuid.New(), SelectedOptions: domain.Selection{"A", "B"}},
		{ID: uuid.New(), PollID: poll.ID, CustomerID: uuid.New(), SelectedOptions: domain.Selection{"B"}},
	}

	pollRepo.On("GetByID", mock.Anything, poll.ID).Return(poll, nil).Once()
	responseRepo.On("ListByPoll", mock.Anything, poll.ID).Return(nil, driver.ErrBadConn).Once()
	responseRepo.On("ListByPoll", mock.Anything, poll.ID).Return(responses, nil).Once()

	results, err := svc.Results(context.Background(), poll.ID)

	require.NoError(t, err)
	assert.Equal(t, 2, results.TotalResponses)
	assert.Equal(t, []domain.OptionResult{
		{OptionID: "A", Text: "The Fool", Votes: 1, Percentage: 50},
		{OptionID: "B", Text: "The Magician", Votes: 2, Percentage: 100},
		{OptionID: "C", Text: "The Star", Votes: 0, Percentage: 0},
	}, results.Options)
	responseRepo.AssertNumberOfCalls(t, "ListByPoll", 2)
}

func TestBallotService_ResultsGivesUpAfterAttempts(t *testing.T) {
	pollRepo := new(mockPollRepository)
	responseRepo := new(mockResponseRepository)
	svc := newTestBallotService(pollRepo, responseRepo, time.Second)

	poll := testPoll()
	pollRepo.On("GetByID", mock.Anything, poll.ID).Return(poll, nil)
	responseRepo.On("ListByPoll", mock.Anything, poll.ID).Return(nil, driver.ErrBadConn)

	_, err := svc.Results(context.Background(), poll.ID)

	assert.ErrorIs(t, err, domain.ErrTransient)
	responseRepo.AssertNumberOfCalls(t, "ListByPoll", 3)
}

func TestBallotService_ResultsPollNotFound(t *testing.T) {
	pollRepo := new(mockPollRepository)
	responseRepo := new(mockResponseRepository)
	svc := newTestBallotService(pollRepo, responseRepo, time.Second)

	pollID := uuid.New()
	pollRepo.On("GetByID", mock.Anything, pollID).Return(nil, domain.ErrPollNotFound)

	_, err := svc.Results(context.Background(), pollID)

	assert.ErrorIs(t, err, domain.ErrPollNotFound)
	pollRepo.AssertNumberOfCalls(t, "GetByID", 1)
	responseRepo.AssertNotCalled(t, "ListByPoll", mock.Anything, mock.Anything)
}

func TestBallotService_BallotLifecycle(t *testing.T) {
	pollRepo := new(mockPollRepository)
	responseRepo := new(mockResponseRepository)
	svc := newTestBallotService(pollRepo, responseRepo, time.Second)

	poll := testPoll()
	customerID := uuid.New()
	pollRepo.On("GetByID", mock.Anything, poll.ID).Return(poll, nil)
	responseRepo.On("GetByPollAndCustomer", mock.Anything, poll.ID, customerID).Return(nil, nil).Once()

	var inserted *domain.Response
	responseRepo.On("Insert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		inserted = args.Get(1).(*domain.Response)
	}).Return(nil).Once()

	ballot, err := svc.OpenBallot(context.Background(), poll.ID, customerID)
	require.NoError(t, err)
	assert.Equal(t, domain.BallotUnanswered, ballot.State())

	require.NoError(t, ballot.Toggle("A"))
	require.NoError(t, ballot.Toggle("B"))

	resp, err := svc.SubmitBallot(context.Background(), ballot, customerID)
	require.NoError(t, err)
	assert.Equal(t, inserted, resp)
	assert.Equal(t, domain.BallotViewing, ballot.State())

	_, err = svc.SubmitBallot(context.Background(), ballot, customerID)
	assert.ErrorIs(t, err, domain.ErrBallotNotEditable)

	require.NoError(t, ballot.Edit())
	require.NoError(t, ballot.Toggle("A"))
	require.NoError(t, ballot.Toggle("C"))

	edited := &domain.Response{ID: resp.ID, PollID: poll.ID, CustomerID: customerID, SelectedOptions: domain.Selection{"B", "C"}, VotedAt: fixedNow}
	responseRepo.On("Update", mock.Anything, resp.ID, domain.Selection{"B", "C"}, fixedNow).Return(edited, nil).Once()

	resp, err = svc.SubmitBallot(context.Background(), ballot, customerID)
	require.NoError(t, err)
	assert.Equal(t, edited, resp)
	assert.Equal(t, domain.Selection{"B", "C"}, ballot.Selection())
	responseRepo.AssertExpectations(t)
	responseRepo.AssertNumberOfCalls(t, "Insert", 1)
}

func TestBallotService_SubmitBallotValidatesAgainstPoll(t *testing.T) {
	pollRepo := new(mockPollRepository)
	responseRepo := new(mockResponseRepository)
	svc := newTestBallotService(pollRepo, responseRepo, time.Second)

	ballot := domain.NewBallot(testPoll(), nil)

	_, err := svc.SubmitBallot(context.Background(), ballot, uuid.New())

	assert.ErrorIs(t, err, domain.ErrEmptySelection)
	responseRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}
