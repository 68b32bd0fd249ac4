package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/repo"
)

// InviteService implements the invite workflow: register a participant on an
// existing trip and queue their confirmation email.
type InviteService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	composer     Composer
	nudger       Nudger
}

// NewInviteService constructs an InviteService. nudger may be nil.
func NewInviteService(trips repo.TripRepo, participants repo.ParticipantRepo, composer Composer, nudger Nudger) *InviteService {
	return &InviteService{trips: trips, participants: participants, composer: composer, nudger: nudger}
}

// CreateInvite registers a new participant invited to the trip and queues the
// confirmation email addressed to them. The participant row and the queued
// email commit in one transaction, so an invite is never created without its
// notification. Delivery failures never undo the invite; the outbox worker
// retries.
//
// Email syntax is validated at the HTTP boundary; tripID referencing no trip
// returns domain.ErrNotFound with no rows written. Repeated invites for the
// same address are allowed and produce distinct participants.
func (s *InviteService) CreateInvite(ctx context.Context, tripID uuid.UUID, email string) (domain.Participant, error) {
	if strings.TrimSpace(email) == "" {
		return domain.Participant{}, fmt.Errorf("service.InviteService.CreateInvite: %w: email is required", domain.ErrValidation)
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.InviteService.CreateInvite: %w", err)
	}

	// The id is generated here, not by the database, because the rendered
	// email embeds the confirmation link for this exact participant.
	participant := domain.Participant{
		ID:     uuid.New(),
		TripID: trip.ID,
		Email:  email,
	}

	invite, err := s.composer.InviteEmail(trip, participant)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.InviteService.CreateInvite: %w", err)
	}

	created, err := s.participants.CreateWithEmail(ctx, participant, invite)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.InviteService.CreateInvite: %w", err)
	}

	nudge(s.nudger)
	return created, nil
}
