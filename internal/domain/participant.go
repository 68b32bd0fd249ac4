package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a person invited to a trip, identified by email.
// Name is empty for participants created through a plain invite; they only
// supply a name when they confirm through the web app.
// IsConfirmed starts false and flips to true exactly once; re-confirmation
// is a no-op.
type Participant struct {
	ID          uuid.UUID `json:"id"`
	TripID      uuid.UUID `json:"trip_id"`
	Name        string    `json:"name,omitempty"`
	Email       string    `json:"email"`
	IsConfirmed bool      `json:"is_confirmed"`
	IsOwner     bool      `json:"is_owner"`
	CreatedAt   time.Time `json:"created_at"`
}
