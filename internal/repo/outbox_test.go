package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/repo"
)

func TestOutboxRepo_Enqueue(t *testing.T) {
	tx := newTestTx(t)
	outbox := repo.NewOutboxRepo(tx)
	ctx := context.Background()

	got, err := outbox.Enqueue(ctx, emailFixture("dani@example.com"))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, domain.EmailStatusPending, got.Status)
	assert.Zero(t, got.AttemptCount)
	assert.Empty(t, got.Receipt)
	assert.False(t, got.NextAttemptAt.IsZero(), "rows are due immediately")
}

func TestOutboxRepo_ListDue(t *testing.T) {
	tx := newTestTx(t)
	outbox := repo.NewOutboxRepo(tx)
	ctx := context.Background()

	first, err := outbox.Enqueue(ctx, emailFixture("a@example.com"))
	require.NoError(t, err)
	_, err = outbox.Enqueue(ctx, emailFixture("b@example.com"))
	require.NoError(t, err)

	// A row rescheduled into the future is not due.
	future, err := outbox.Enqueue(ctx, emailFixture("later@example.com"))
	require.NoError(t, err)
	require.NoError(t, outbox.Reschedule(ctx, future.ID, time.Now().UTC().Add(time.Hour)))

	due, err := outbox.ListDue(ctx, time.Now().UTC(), 10)

	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, first.ID, due[0].ID, "oldest first")
}

func TestOutboxRepo_MarkSent(t *testing.T) {
	tx := newTestTx(t)
	outbox := repo.NewOutboxRepo(tx)
	ctx := context.Background()

	row, err := outbox.Enqueue(ctx, emailFixture("dani@example.com"))
	require.NoError(t, err)

	require.NoError(t, outbox.MarkSent(ctx, row.ID, "<msg-123@smtp>"))

	// Sent rows no longer show up as due.
	due, err := outbox.ListDue(ctx, time.Now().UTC().Add(time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestOutboxRepo_Reschedule_BumpsAttemptCount(t *testing.T) {
	tx := newTestTx(t)
	outbox := repo.NewOutboxRepo(tx)
	ctx := context.Background()

	row, err := outbox.Enqueue(ctx, emailFixture("dani@example.com"))
	require.NoError(t, err)

	next := time.Now().UTC().Add(time.Minute)
	require.NoError(t, outbox.Reschedule(ctx, row.ID, next))

	// Due once the reschedule horizon passes, carrying the bumped count.
	due, err := outbox.ListDue(ctx, next.Add(time.Second), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, 1, due[0].AttemptCount)
}

func TestOutboxRepo_MarkFailed(t *testing.T) {
	tx := newTestTx(t)
	outbox := repo.NewOutboxRepo(tx)
	ctx := context.Background()

	row, err := outbox.Enqueue(ctx, emailFixture("dani@example.com"))
	require.NoError(t, err)

	require.NoError(t, outbox.MarkFailed(ctx, row.ID))

	due, err := outbox.ListDue(ctx, time.Now().UTC().Add(time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, due, "failed rows are never retried")
}

func TestOutboxRepo_MarkSent_NotFound(t *testing.T) {
	tx := newTestTx(t)
	outbox := repo.NewOutboxRepo(tx)

	err := outbox.MarkSent(context.Background(), uuid.New(), "r")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
