package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a single scheduled item on a trip's itinerary.
// Activities are listed ascending by OccursAt and must fall within the
// owning trip's date window.
type Activity struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Title     string    `json:"title"`
	OccursAt  time.Time `json:"occurs_at"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityDay groups the activities occurring on one calendar day of a trip.
// The itinerary endpoint returns one ActivityDay per day of the trip,
// inclusive of both endpoints, so days without activities still appear with
// an empty slice.
type ActivityDay struct {
	Date       time.Time  `json:"date"`
	Activities []Activity `json:"activities"`
}
