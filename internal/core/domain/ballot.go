package domain

import "github.com/google/uuid"

type BallotState int

const (
	BallotUnanswered BallotState = iota
	BallotViewing
	BallotEditing
)

func (s BallotState) String() string {
	switch s {
	case BallotUnanswered:
		return "unanswered"
	case BallotViewing:
		return "viewing"
	case BallotEditing:
		return "editing"
	default:
		return "unknown"
	}
}

func (s BallotState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Ballot tracks one customer's in-progress selection for one poll.
//
//	Unanswered --Commit--> Viewing --Edit--> Editing
//	Editing --Commit--> Viewing
//	Editing --Cancel--> Viewing (selection reverted)
type Ballot struct {
	poll      *Poll
	persisted *Response
	selection Selection
	state     BallotState
}

func NewBallot(poll *Poll, existing *Response) *Ballot {
	b := &Ballot{poll: poll, selection: Selection{}}
	if existing != nil {
		b.persisted = existing
		b.selection = existing.SelectedOptions.Clone()
		b.state = BallotViewing
	}
	return b
}

func (b *Ballot) Poll() *Poll { return b.poll }
func (b *Ballot) State() BallotState { return b.state }
func (b *Ballot) Persisted() *Response { return b.persisted }
func (b *Ballot) Selection() Selection { return b.selection.Clone() }
func (b *Ballot) Answered() bool { return b.persisted != nil }

// ExistingResponseID is the ID to update on submit, nil for a first answer.
func (b *Ballot) ExistingResponseID() *uuid.UUID {
	if b.persisted == nil {
		return nil
	}
	id := b.persisted.ID
	return &id
}

func (b *Ballot) editable() bool {
	return b.state == BallotUnanswered || b.state == BallotEditing
}

// Toggle applies ToggleOption to the in-progress selection. On
// ErrSelectionLimitReached the selection is left as it was.
func (b *Ballot) Toggle(optionID string) error {
	if !b.editable() {
		return ErrBallotNotEditable
	}
	next, err := ToggleOption(b.selection, optionID, b.poll)
	if err != nil {
		return err
	}
	b.selection = next
	return nil
}

// Choose replaces the in-progress selection wholesale after validating it.
func (b *Ballot) Choose(selection Selection) error {
	if !b.editable() {
		return ErrBallotNotEditable
	}
	if err := ValidateSelection(b.poll, selection); err != nil {
		return err
	}
	b.selection = selection.Clone()
	return nil
}

func (b *Ballot) Edit() error {
	if b.state != BallotViewing {
		return ErrBallotNotEditable
	}
	b.state = BallotEditing
	return nil
}

func (b *Ballot) Cancel() error {
	if b.state != BallotEditing {
		return ErrBallotNotEditable
	}
	b.selection = b.persisted.SelectedOptions.Clone()
	b.state = BallotViewing
	return nil
}

// Commit records resp as the persisted answer after a successful submit.
func (b *Ballot) Commit(resp *Response) {
	b.persisted = resp
	b.selection = resp.SelectedOptions.Clone()
	b.state = BallotViewing
}
