package domain

import (
	"time"

	"github.com/google/uuid"
)

// Response is one customer's recorded selection for a poll. There is at
// most one per (PollID, CustomerID) and edits replace SelectedOptions as a
// whole.
type Response struct {
	ID              uuid.UUID `json:"id"`
	PollID          uuid.UUID `json:"poll_id"`
	CustomerID      uuid.UUID `json:"customer_id"`
	SelectedOptions Selection `json:"selected_options"`
	VotedAt         time.Time `json:"voted_at"`
}
