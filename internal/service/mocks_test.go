package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/repo"
	"github.com/plannerhq/planner-api/internal/service"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field: set only the ones your test needs.
// This is idiomatic Go: no mock generation library required for simple cases.

type mockTripRepo struct {
	createWithParticipants func(ctx context.Context, trip domain.Trip, participants []domain.Participant, email domain.OutboxEmail) (domain.Trip, error)
	getByID                func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	update                 func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	confirm                func(ctx context.Context, id uuid.UUID, invites []domain.OutboxEmail) error
}

func (m *mockTripRepo) CreateWithParticipants(ctx context.Context, trip domain.Trip, participants []domain.Participant, email domain.OutboxEmail) (domain.Trip, error) {
	return m.createWithParticipants(ctx, trip, participants, email)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Confirm(ctx context.Context, id uuid.UUID, invites []domain.OutboxEmail) error {
	return m.confirm(ctx, id, invites)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockParticipantRepo struct {
	createWithEmail         func(ctx context.Context, p domain.Participant, email domain.OutboxEmail) (domain.Participant, error)
	getByID                 func(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	listByTripID            func(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams) ([]domain.Participant, int64, error)
	listUnconfirmedByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
	confirm                 func(ctx context.Context, id uuid.UUID) error
}

func (m *mockParticipantRepo) CreateWithEmail(ctx context.Context, p domain.Participant, email domain.OutboxEmail) (domain.Participant, error) {
	return m.createWithEmail(ctx, p, email)
}
func (m *mockParticipantRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	return m.getByID(ctx, id)
}
func (m *mockParticipantRepo) ListByTripID(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams) ([]domain.Participant, int64, error) {
	return m.listByTripID(ctx, tripID, params)
}
func (m *mockParticipantRepo) ListUnconfirmedByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	return m.listUnconfirmedByTripID(ctx, tripID)
}
func (m *mockParticipantRepo) Confirm(ctx context.Context, id uuid.UUID) error {
	return m.confirm(ctx, id)
}

var _ repo.ParticipantRepo = (*mockParticipantRepo)(nil)

type mockActivityRepo struct {
	create       func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
}

func (m *mockActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.listByTripID(ctx, tripID)
}

var _ repo.ActivityRepo = (*mockActivityRepo)(nil)

type mockLinkRepo struct {
	create       func(ctx context.Context, l domain.Link) (domain.Link, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

func (m *mockLinkRepo) Create(ctx context.Context, l domain.Link) (domain.Link, error) {
	return m.create(ctx, l)
}
func (m *mockLinkRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	return m.listByTripID(ctx, tripID)
}

var _ repo.LinkRepo = (*mockLinkRepo)(nil)

// stubComposer renders predictable email rows so tests can assert which
// participant an email was composed for without dragging in the real
// renderer and its locale catalogs.
type stubComposer struct{}

func (stubComposer) InviteEmail(trip domain.Trip, p domain.Participant) (domain.OutboxEmail, error) {
	return domain.OutboxEmail{
		Recipient: p.Email,
		Subject:   "invite: " + trip.Destination,
		BodyHTML:  "<a href=\"/participants/" + p.ID.String() + "/confirm\">confirm</a>",
	}, nil
}

func (stubComposer) TripConfirmationEmail(trip domain.Trip, owner domain.Participant) (domain.OutboxEmail, error) {
	return domain.OutboxEmail{
		Recipient: owner.Email,
		Subject:   "confirm trip: " + trip.Destination,
		BodyHTML:  "<a href=\"/trips/" + trip.ID.String() + "/confirm\">confirm</a>",
	}, nil
}

var _ service.Composer = stubComposer{}

// countingNudger records how many times the outbox worker would have been woken.
type countingNudger struct {
	nudges int
}

func (n *countingNudger) Nudge() { n.nudges++ }

var _ service.Nudger = (*countingNudger)(nil)
