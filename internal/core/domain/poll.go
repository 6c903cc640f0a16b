package domain

import (
	"time"

	"github.com/google/uuid"
)

type Poll struct {
	ID            uuid.UUID    `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Options       []PollOption `json:"options"`
	AllowMultiple bool         `json:"allow_multiple"`
	MaxSelections int          `json:"max_selections"`
	Anonymous     bool         `json:"is_anonymous"`
	Active        bool         `json:"is_active"`
	ClosesAt      *time.Time   `json:"closes_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// PollOption IDs are unique within their poll only.
type PollOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// SelectionLimit is the largest selection a response to p may hold.
func (p *Poll) SelectionLimit() int {
	if !p.AllowMultiple || p.MaxSelections < 1 {
		return 1
	}
	return p.MaxSelections
}

func (p *Poll) HasOption(id string) bool {
	for _, opt := range p.Options {
		if opt.ID == id {
			return true
		}
	}
	return false
}

// IsOpen reports whether p accepts submissions at now. The store does not
// enforce this; callers check it before submitting.
func (p *Poll) IsOpen(now time.Time) bool {
	if !p.Active {
		return false
	}
	return p.ClosesAt == nil || now.Before(*p.ClosesAt)
}

func (p *Poll) Validate() error {
	if p.Title == "" {
		return ErrInvalidPoll
	}
	if len(p.Options) < 2 {
		return ErrInvalidPoll
	}
	seen := make(map[string]struct{}, len(p.Options))
	for _, opt := range p.Options {
		if opt.ID == "" || opt.Text == "" {
			return ErrInvalidPoll
		}
		if _, dup := seen[opt.ID]; dup {
			return ErrInvalidPoll
		}
		seen[opt.ID] = struct{}{}
	}
	if p.AllowMultiple && (p.MaxSelections < 1 || p.MaxSelections > len(p.Options)) {
		return ErrInvalidPoll
	}
	return nil
}
