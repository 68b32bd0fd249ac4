package repo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/repo"
)

// seedTrip inserts a trip with its owner so participant tests have a parent row.
func seedTrip(t *testing.T, tx pgx.Tx) domain.Trip {
	t.Helper()

	trip := tripFixture()
	created, err := repo.NewTripRepo(tx).CreateWithParticipants(
		context.Background(), trip,
		[]domain.Participant{ownerFixture(trip.ID)},
		emailFixture("ana@example.com"),
	)
	require.NoError(t, err)
	return created
}

func TestParticipantRepo_CreateWithEmail(t *testing.T) {
	tx := newTestTx(t)
	participants := repo.NewParticipantRepo(tx)
	outbox := repo.NewOutboxRepo(tx)
	ctx := context.Background()

	trip := seedTrip(t, tx)
	invitee := inviteeFixture(trip.ID, "dani@example.com")

	got, err := participants.CreateWithEmail(ctx, invitee, emailFixture(invitee.Email))

	require.NoError(t, err)
	assert.Equal(t, invitee.ID, got.ID, "participant keeps the service-assigned id")
	assert.Equal(t, trip.ID, got.TripID)
	assert.Empty(t, got.Name, "invited participants have no name until they confirm")
	assert.False(t, got.IsConfirmed)
	assert.False(t, got.IsOwner)

	// The invite email committed alongside the participant row.
	due, err := outbox.ListDue(ctx, time.Now().UTC(), 10)
	require.NoError(t, err)

	var found bool
	for _, e := range due {
		if e.Recipient == invitee.Email {
			found = true
		}
	}
	assert.True(t, found, "invite email should be queued")
}

func TestParticipantRepo_CreateWithEmail_DuplicateEmailAllowed(t *testing.T) {
	tx := newTestTx(t)
	participants := repo.NewParticipantRepo(tx)
	ctx := context.Background()

	trip := seedTrip(t, tx)

	first := inviteeFixture(trip.ID, "dani@example.com")
	_, err := participants.CreateWithEmail(ctx, first, emailFixture(first.Email))
	require.NoError(t, err)

	second := inviteeFixture(trip.ID, "dani@example.com")
	_, err = participants.CreateWithEmail(ctx, second, emailFixture(second.Email))
	require.NoError(t, err, "inviting the same address twice creates two rows")
}

func TestParticipantRepo_GetByID_NotFound(t *testing.T) {
	tx := newTestTx(t)
	participants := repo.NewParticipantRepo(tx)

	_, err := participants.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParticipantRepo_ListByTripID_ExcludesOwnerAndPaginates(t *testing.T) {
	tx := newTestTx(t)
	participants := repo.NewParticipantRepo(tx)
	ctx := context.Background()

	trip := seedTrip(t, tx)
	for i := 0; i < 5; i++ {
		invitee := inviteeFixture(trip.ID, fmt.Sprintf("guest%d@example.com", i))
		_, err := participants.CreateWithEmail(ctx, invitee, emailFixture(invitee.Email))
		require.NoError(t, err)
	}

	page, limit := 1, 3
	got, total, err := participants.ListByTripID(ctx, trip.ID, domain.NewPaginationParams(&page, &limit))

	require.NoError(t, err)
	assert.EqualValues(t, 5, total, "owner must not be counted")
	require.Len(t, got, 3)
	for _, p := range got {
		assert.False(t, p.IsOwner)
	}

	// Second page holds the remainder.
	page = 2
	got, _, err = participants.ListByTripID(ctx, trip.ID, domain.NewPaginationParams(&page, &limit))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestParticipantRepo_ListUnconfirmedByTripID(t *testing.T) {
	tx := newTestTx(t)
	participants := repo.NewParticipantRepo(tx)
	ctx := context.Background()

	trip := seedTrip(t, tx)

	confirmed := inviteeFixture(trip.ID, "bruno@example.com")
	_, err := participants.CreateWithEmail(ctx, confirmed, emailFixture(confirmed.Email))
	require.NoError(t, err)
	require.NoError(t, participants.Confirm(ctx, confirmed.ID))

	pending := inviteeFixture(trip.ID, "carla@example.com")
	_, err = participants.CreateWithEmail(ctx, pending, emailFixture(pending.Email))
	require.NoError(t, err)

	got, err := participants.ListUnconfirmedByTripID(ctx, trip.ID)

	require.NoError(t, err)
	// The confirmed owner and the confirmed invitee are both excluded.
	require.Len(t, got, 1)
	assert.Equal(t, "carla@example.com", got[0].Email)
}

func TestParticipantRepo_Confirm(t *testing.T) {
	tx := newTestTx(t)
	participants := repo.NewParticipantRepo(tx)
	ctx := context.Background()

	trip := seedTrip(t, tx)
	invitee := inviteeFixture(trip.ID, "dani@example.com")
	_, err := participants.CreateWithEmail(ctx, invitee, emailFixture(invitee.Email))
	require.NoError(t, err)

	require.NoError(t, participants.Confirm(ctx, invitee.ID))

	got, err := participants.GetByID(ctx, invitee.ID)
	require.NoError(t, err)
	assert.True(t, got.IsConfirmed)
}

func TestParticipantRepo_Confirm_NotFound(t *testing.T) {
	tx := newTestTx(t)
	participants := repo.NewParticipantRepo(tx)

	err := participants.Confirm(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
