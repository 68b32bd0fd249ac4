package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/repo"
)

// ParticipantService implements business logic for Participant operations,
// including the confirmation workflow.
type ParticipantService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
}

// NewParticipantService constructs a ParticipantService.
func NewParticipantService(trips repo.TripRepo, participants repo.ParticipantRepo) *ParticipantService {
	return &ParticipantService{trips: trips, participants: participants}
}

// GetByID returns a single participant by ID.
func (s *ParticipantService) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	return s.participants.GetByID(ctx, id)
}

// Confirm transitions a participant from invited to confirmed. Confirming an
// already-confirmed participant succeeds without writing anything; the
// confirmation link in the email can be clicked any number of times.
func (s *ParticipantService) Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	p, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Confirm: %w", err)
	}
	if p.IsConfirmed {
		return p, nil
	}

	if err := s.participants.Confirm(ctx, id); err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Confirm: %w", err)
	}
	p.IsConfirmed = true
	return p, nil
}

// ListByTrip returns the trip's non-owner participants, paginated.
// Returns domain.ErrNotFound if the trip itself does not exist.
func (s *ParticipantService) ListByTrip(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams) ([]domain.Participant, int64, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, 0, fmt.Errorf("service.ParticipantService.ListByTrip: %w", err)
	}

	participants, total, err := s.participants.ListByTripID(ctx, tripID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ParticipantService.ListByTrip: %w", err)
	}
	if participants == nil {
		// Callers serialize this straight to JSON; an empty list must be
		// [] rather than null.
		participants = []domain.Participant{}
	}
	return participants, total, nil
}
