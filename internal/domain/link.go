package domain

import (
	"time"

	"github.com/google/uuid"
)

// Link is a URL attached to a trip: booking confirmations, house rules,
// shared documents. Links are never mutated after creation.
type Link struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
