package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/plannerhq/planner-api/internal/domain"
)

// ParticipantRepo defines the persistence operations for Participants.
// List operations exclude the trip owner; the owner is a participant row for
// schema simplicity but is never shown in the participant list.
type ParticipantRepo interface {
	// CreateWithEmail inserts a participant and their invite email in a single
	// transaction: a participant row with its queued notification, or nothing.
	// Returns the persisted participant with DB-generated fields populated.
	CreateWithEmail(ctx context.Context, p domain.Participant, email domain.OutboxEmail) (domain.Participant, error)

	// GetByID retrieves a single participant by its UUID primary key.
	// Returns domain.ErrNotFound if no participant with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error)

	// ListByTripID returns the non-owner participants of a trip ordered by
	// created_at ascending, along with the total count for pagination.
	ListByTripID(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams) ([]domain.Participant, int64, error)

	// ListUnconfirmedByTripID returns every non-owner participant of a trip
	// that has not confirmed yet. Used when a trip is confirmed to fan out
	// invite emails.
	ListUnconfirmedByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)

	// Confirm sets is_confirmed on the participant.
	// Returns domain.ErrNotFound if no participant with that ID exists.
	Confirm(ctx context.Context, id uuid.UUID) error
}

// pgParticipantRepo is the Postgres implementation of ParticipantRepo.
type pgParticipantRepo struct {
	db txdb
}

// NewParticipantRepo constructs a ParticipantRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation.
func NewParticipantRepo(db txdb) ParticipantRepo {
	return &pgParticipantRepo{db: db}
}

func (r *pgParticipantRepo) CreateWithEmail(ctx context.Context, p domain.Participant, email domain.OutboxEmail) (domain.Participant, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.CreateWithEmail: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	created, err := insertParticipant(ctx, tx, p)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.CreateWithEmail: insert: %w", err)
	}

	if _, err := insertOutboxEmail(ctx, tx, email); err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.CreateWithEmail: enqueue email: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.CreateWithEmail: commit: %w", err)
	}
	return created, nil
}

func (r *pgParticipantRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	const q = `
		SELECT id, trip_id, name, email, is_confirmed, is_owner, created_at
		FROM participants
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanParticipant(row)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgParticipantRepo) ListByTripID(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams) ([]domain.Participant, int64, error) {
	const countQ = `
		SELECT count(*) FROM participants
		WHERE trip_id = @trip_id AND is_owner = false`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"trip_id": tripID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ParticipantRepo.ListByTripID: count: %w", err)
	}

	const q = `
		SELECT id, trip_id, name, email, is_confirmed, is_owner, created_at
		FROM participants
		WHERE trip_id = @trip_id AND is_owner = false
		ORDER BY created_at ASC
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{
		"trip_id": tripID,
		"limit":   params.Limit,
		"offset":  params.Offset(),
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ParticipantRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	participants, err := collectParticipants(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ParticipantRepo.ListByTripID: %w", err)
	}
	return participants, total, nil
}

func (r *pgParticipantRepo) ListUnconfirmedByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	const q = `
		SELECT id, trip_id, name, email, is_confirmed, is_owner, created_at
		FROM participants
		WHERE trip_id = @trip_id AND is_owner = false AND is_confirmed = false
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListUnconfirmedByTripID: %w", err)
	}
	defer rows.Close()

	participants, err := collectParticipants(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListUnconfirmedByTripID: %w", err)
	}
	return participants, nil
}

func (r *pgParticipantRepo) Confirm(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE participants SET is_confirmed = true WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ParticipantRepo.Confirm: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ParticipantRepo.Confirm: %w", domain.ErrNotFound)
	}
	return nil
}

// insertParticipant runs the participant INSERT on the given executor so it
// can participate in a caller-managed transaction (trip creation inserts the
// owner and invitees alongside the trip row). The id arrives from the service
// layer: invite emails embed the participant id and are rendered before the
// transaction begins.
func insertParticipant(ctx context.Context, db db, p domain.Participant) (domain.Participant, error) {
	const q = `
		INSERT INTO participants (id, trip_id, name, email, is_confirmed, is_owner)
		VALUES (@id, @trip_id, @name, @email, @is_confirmed, @is_owner)
		RETURNING id, trip_id, name, email, is_confirmed, is_owner, created_at`

	args := pgx.NamedArgs{
		"id":           p.ID,
		"trip_id":      p.TripID,
		"name":         p.Name,
		"email":        p.Email,
		"is_confirmed": p.IsConfirmed,
		"is_owner":     p.IsOwner,
	}

	return scanParticipant(db.QueryRow(ctx, q, args))
}

func scanParticipant(s scanner) (domain.Participant, error) {
	var (
		p      domain.Participant
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &p.Name, &p.Email, &p.IsConfirmed, &p.IsOwner, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Participant{}, domain.ErrNotFound
		}
		return domain.Participant{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)
	return p, nil
}

func collectParticipants(rows pgx.Rows) ([]domain.Participant, error) {
	var participants []domain.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return participants, nil
}
