package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/repo"
)

// minDestinationLen matches the web app's form validation.
const minDestinationLen = 4

// CreateTripInput carries everything needed to create a trip: the trip
// itself, its owner, and the addresses to invite once the owner confirms.
type CreateTripInput struct {
	Destination    string
	StartsAt       time.Time
	EndsAt         time.Time
	OwnerName      string
	OwnerEmail     string
	EmailsToInvite []string
}

// TripService implements business logic for Trip operations.
type TripService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	composer     Composer
	nudger       Nudger
}

// NewTripService constructs a TripService. nudger may be nil.
func NewTripService(trips repo.TripRepo, participants repo.ParticipantRepo, composer Composer, nudger Nudger) *TripService {
	return &TripService{trips: trips, participants: participants, composer: composer, nudger: nudger}
}

// Create validates and persists a new trip together with its owner (created
// confirmed), the invited participants (unconfirmed), and the owner's
// trip-confirmation email, all in one transaction.
func (s *TripService) Create(ctx context.Context, in CreateTripInput) (domain.Trip, error) {
	if err := validateTripFields(in.Destination, in.StartsAt, in.EndsAt); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	if strings.TrimSpace(in.OwnerName) == "" {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: owner name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.OwnerEmail) == "" {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: owner email is required", domain.ErrValidation)
	}
	if in.StartsAt.Before(time.Now()) {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: trip start date is in the past", domain.ErrValidation)
	}

	// Ids are generated here so the confirmation email (which embeds the
	// trip id) can be rendered before anything is written.
	trip := domain.Trip{
		ID:          uuid.New(),
		Destination: in.Destination,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
	}

	owner := domain.Participant{
		ID:          uuid.New(),
		TripID:      trip.ID,
		Name:        in.OwnerName,
		Email:       in.OwnerEmail,
		IsConfirmed: true,
		IsOwner:     true,
	}

	participants := []domain.Participant{owner}
	for _, email := range in.EmailsToInvite {
		if strings.TrimSpace(email) == "" {
			continue
		}
		participants = append(participants, domain.Participant{
			ID:     uuid.New(),
			TripID: trip.ID,
			Email:  email,
		})
	}

	confirmation, err := s.composer.TripConfirmationEmail(trip, owner)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	created, err := s.trips.CreateWithParticipants(ctx, trip, participants, confirmation)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	nudge(s.nudger)
	return created, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return s.trips.GetByID(ctx, id)
}

// Update validates and updates the destination and dates of an existing trip.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTripFields(trip.Destination, trip.StartsAt, trip.EndsAt); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return s.trips.Update(ctx, trip)
}

// Confirm marks the trip confirmed and, on the first confirmation, queues an
// invite email for every not-yet-confirmed participant. Confirming an
// already-confirmed trip is a no-op that sends nothing.
func (s *TripService) Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Confirm: %w", err)
	}
	if trip.IsConfirmed {
		return trip, nil
	}
	trip.IsConfirmed = true

	pending, err := s.participants.ListUnconfirmedByTripID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Confirm: %w", err)
	}

	invites := make([]domain.OutboxEmail, 0, len(pending))
	for _, p := range pending {
		invite, err := s.composer.InviteEmail(trip, p)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Confirm: %w", err)
		}
		invites = append(invites, invite)
	}

	// The flag flip and the invites commit together. If the write fails the
	// trip stays unconfirmed and a later confirm repeats the whole fan-out,
	// so no participant's invite is lost to a partial failure.
	if err := s.trips.Confirm(ctx, id, invites); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Confirm: %w", err)
	}

	nudge(s.nudger)
	return trip, nil
}

// validateTripFields checks the rules shared by Create and Update.
func validateTripFields(destination string, startsAt, endsAt time.Time) error {
	if len(strings.TrimSpace(destination)) < minDestinationLen {
		return fmt.Errorf("%w: destination must be at least %d characters", domain.ErrValidation, minDestinationLen)
	}
	if endsAt.Before(startsAt) {
		return fmt.Errorf("%w: trip end date is before the start date", domain.ErrValidation)
	}
	return nil
}
