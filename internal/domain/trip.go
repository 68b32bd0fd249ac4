// Package domain contains the core data types for the trip planner API.
// This package has no dependencies beyond uuid and is imported by every
// other internal package (repo, service, handler, mail).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a planned journey to a destination over a date range.
// A trip is the top-level aggregate; participants, activities, and links
// all belong to a trip.
//
// A trip starts unconfirmed. The owner confirms it through the link in the
// trip-confirmation email, which is also the moment invite emails go out to
// the other participants.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	IsConfirmed bool      `json:"is_confirmed"`
	CreatedAt   time.Time `json:"created_at"`
}
