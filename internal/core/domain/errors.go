package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrTransient  = errors.New("temporary failure, try again")
)

var (
	ErrEmptySelection     = fmt.Errorf("%w: select at least one option", ErrValidation)
	ErrTooManySelections  = fmt.Errorf("%w: too many options selected", ErrValidation)
	ErrInvalidOption      = fmt.Errorf("%w: invalid option for this poll", ErrValidation)
	ErrDuplicateOption    = fmt.Errorf("%w: option selected more than once", ErrValidation)
	ErrInvalidPhoneNumber = fmt.Errorf("%w: phone number must look like 010-1234-5678", ErrValidation)
	ErrInvalidPoll        = fmt.Errorf("%w: invalid poll definition", ErrValidation)

	ErrAlreadyResponded = fmt.Errorf("%w: customer already responded to this poll", ErrConflict)

	ErrPollNotFound      = errors.New("poll not found")
	ErrInvalidPollID     = errors.New("invalid poll id")
	ErrResponseNotFound  = errors.New("response not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrPollClosed        = errors.New("poll is closed")
	ErrBallotNotEditable = errors.New("ballot is not editable")
	ErrInvalidToken      = errors.New("invalid access token")

	// ErrSelectionLimitReached is a signal, not a failure: the selection is
	// returned unchanged.
	ErrSelectionLimitReached = errors.New("selection limit reached")
)
