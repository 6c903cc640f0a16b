package domain

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	Stamps      int       `json:"stamps"`
	Coupons     int       `json:"coupons"`
	CreatedAt   time.Time `json:"created_at"`
}

// Session identifies the customer behind a request. It is passed
// explicitly; nothing reads it from package state.
type Session struct {
	CustomerID uuid.UUID
	ExpiresAt  time.Time
}
