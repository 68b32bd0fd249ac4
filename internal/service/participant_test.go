package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/service"
)

func TestParticipantService_Confirm_FirstClick(t *testing.T) {
	p := domain.Participant{ID: uuid.New(), TripID: uuid.New(), Email: "bruno@example.com"}

	confirmCalls := 0
	participants := &mockParticipantRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Participant, error) { return p, nil },
		confirm: func(context.Context, uuid.UUID) error { confirmCalls++; return nil },
	}
	svc := service.NewParticipantService(&mockTripRepo{}, participants)

	got, err := svc.Confirm(context.Background(), p.ID)

	require.NoError(t, err)
	assert.True(t, got.IsConfirmed)
	assert.Equal(t, 1, confirmCalls)
}

func TestParticipantService_Confirm_SecondClickIsNoOp(t *testing.T) {
	p := domain.Participant{ID: uuid.New(), Email: "bruno@example.com", IsConfirmed: true}

	participants := &mockParticipantRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Participant, error) { return p, nil },
		// confirm deliberately unset: a write would panic the test.
	}
	svc := service.NewParticipantService(&mockTripRepo{}, participants)

	got, err := svc.Confirm(context.Background(), p.ID)

	require.NoError(t, err)
	assert.True(t, got.IsConfirmed)
}

func TestParticipantService_Confirm_NotFound(t *testing.T) {
	participants := &mockParticipantRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Participant, error) {
			return domain.Participant{}, domain.ErrNotFound
		},
	}
	svc := service.NewParticipantService(&mockTripRepo{}, participants)

	_, err := svc.Confirm(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParticipantService_ListByTrip_TripNotFound(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewParticipantService(trips, &mockParticipantRepo{})

	_, _, err := svc.ListByTrip(context.Background(), uuid.New(), domain.NewPaginationParams(nil, nil))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParticipantService_ListByTrip_EmptyIsNotNil(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Trip, error) { return storedTrip(), nil },
	}
	participants := &mockParticipantRepo{
		listByTripID: func(context.Context, uuid.UUID, domain.PaginationParams) ([]domain.Participant, int64, error) {
			return nil, 0, nil
		},
	}
	svc := service.NewParticipantService(trips, participants)

	got, total, err := svc.ListByTrip(context.Background(), uuid.New(), domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, total)
}

func TestParticipantService_ListByTrip_PassesPagination(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Trip, error) { return storedTrip(), nil },
	}
	var gotParams domain.PaginationParams
	participants := &mockParticipantRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID, params domain.PaginationParams) ([]domain.Participant, int64, error) {
			gotParams = params
			return []domain.Participant{{ID: uuid.New()}}, 42, nil
		},
	}
	svc := service.NewParticipantService(trips, participants)

	page, limit := 3, 10
	got, total, err := svc.ListByTrip(context.Background(), uuid.New(), domain.NewPaginationParams(&page, &limit))

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.EqualValues(t, 42, total)
	assert.Equal(t, 3, gotParams.Page)
	assert.Equal(t, 10, gotParams.Limit)
}
