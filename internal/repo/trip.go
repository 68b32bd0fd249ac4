// Package repo contains all database access logic for the trip planner API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/plannerhq/planner-api/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txdb adds transaction support to db. It is satisfied by *pgxpool.Pool and
// by pgx.Tx (which begins a nested savepoint), so repos that need multi-row
// atomic writes still work under the test rollback harness.
type txdb interface {
	db
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// CreateWithParticipants inserts a trip, its participant rows, and the
	// owner's confirmation email in a single transaction. Either everything
	// commits or nothing does. Returns the persisted trip with DB-generated
	// fields populated.
	CreateWithParticipants(ctx context.Context, trip domain.Trip, participants []domain.Participant, email domain.OutboxEmail) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// Update overwrites destination and dates of an existing trip and returns
	// the updated record. Returns domain.ErrNotFound if no trip matches.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Confirm sets is_confirmed on the trip and enqueues the invite emails
	// in the same transaction, so a failed enqueue leaves the trip
	// unconfirmed and a later confirm repeats the whole fan-out. The update
	// only matches unconfirmed trips; if a concurrent request won the race,
	// nothing is enqueued. Returns domain.ErrNotFound if no trip with that
	// ID exists.
	Confirm(ctx context.Context, id uuid.UUID, invites []domain.OutboxEmail) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db txdb
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db txdb) TripRepo {
	return &pgTripRepo{db: db}
}

func (r *pgTripRepo) CreateWithParticipants(ctx context.Context, trip domain.Trip, participants []domain.Participant, email domain.OutboxEmail) (domain.Trip, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.CreateWithParticipants: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	// The id arrives from the service layer rather than the DB default:
	// the owner's confirmation email embeds the trip id and is rendered
	// before this transaction begins.
	const q = `
		INSERT INTO trips (id, destination, starts_at, ends_at)
		VALUES (@id, @destination, @starts_at, @ends_at)
		RETURNING id, destination, starts_at, ends_at, is_confirmed, created_at`

	args := pgx.NamedArgs{
		"id":          trip.ID,
		"destination": trip.Destination,
		"starts_at":   trip.StartsAt,
		"ends_at":     trip.EndsAt,
	}

	created, err := scanTrip(tx.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.CreateWithParticipants: insert trip: %w", err)
	}

	for _, p := range participants {
		p.TripID = created.ID
		if _, err := insertParticipant(ctx, tx, p); err != nil {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.CreateWithParticipants: insert participant: %w", err)
		}
	}

	if _, err := insertOutboxEmail(ctx, tx, email); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.CreateWithParticipants: enqueue email: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.CreateWithParticipants: commit: %w", err)
	}
	return created, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT id, destination, starts_at, ends_at, is_confirmed, created_at
		FROM trips
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET destination = @destination,
		    starts_at   = @starts_at,
		    ends_at     = @ends_at
		WHERE id = @id
		RETURNING id, destination, starts_at, ends_at, is_confirmed, created_at`

	args := pgx.NamedArgs{
		"id":          trip.ID,
		"destination": trip.Destination,
		"starts_at":   trip.StartsAt,
		"ends_at":     trip.EndsAt,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Confirm(ctx context.Context, id uuid.UUID, invites []domain.OutboxEmail) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Confirm: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	const q = `UPDATE trips SET is_confirmed = true WHERE id = @id AND is_confirmed = false`

	tag, err := tx.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Confirm: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either the trip is missing or a concurrent request already
		// confirmed it and queued the invites.
		var exists bool
		err := tx.QueryRow(ctx, `SELECT true FROM trips WHERE id = @id`, pgx.NamedArgs{"id": id}).Scan(&exists)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("repo.TripRepo.Confirm: %w", domain.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("repo.TripRepo.Confirm: %w", err)
		}
		return nil
	}

	for _, email := range invites {
		if _, err := insertOutboxEmail(ctx, tx, email); err != nil {
			return fmt.Errorf("repo.TripRepo.Confirm: enqueue email: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.TripRepo.Confirm: commit: %w", err)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t  domain.Trip
		id pgtype.UUID
	)

	err := s.Scan(&id, &t.Destination, &t.StartsAt, &t.EndsAt, &t.IsConfirmed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}
