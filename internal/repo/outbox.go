package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/plannerhq/planner-api/internal/domain"
)

// OutboxRepo defines the persistence operations for the email outbox.
// Production flows queue mail through the transactional create and confirm
// methods on TripRepo and ParticipantRepo; the standalone Enqueue exists for
// one-off writes outside those flows (operational resends, seeding).
type OutboxRepo interface {
	// Enqueue inserts a pending email and returns the persisted row.
	Enqueue(ctx context.Context, email domain.OutboxEmail) (domain.OutboxEmail, error)

	// ListDue returns up to limit pending emails whose next_attempt_at is at
	// or before now, oldest first. The worker is the only consumer, so no
	// row locking is taken; running multiple workers against one database
	// would require FOR UPDATE SKIP LOCKED here.
	ListDue(ctx context.Context, now time.Time, limit int) ([]domain.OutboxEmail, error)

	// MarkSent flips the row to sent and records the transport receipt.
	MarkSent(ctx context.Context, id uuid.UUID, receipt string) error

	// Reschedule keeps the row pending, bumps attempt_count, and sets the
	// next delivery attempt time.
	Reschedule(ctx context.Context, id uuid.UUID, nextAttemptAt time.Time) error

	// MarkFailed flips the row to failed after delivery attempts are
	// exhausted. Failed rows are kept for inspection, never deleted.
	MarkFailed(ctx context.Context, id uuid.UUID) error
}

// pgOutboxRepo is the Postgres implementation of OutboxRepo.
type pgOutboxRepo struct {
	db db
}

// NewOutboxRepo constructs an OutboxRepo backed by the provided db connection.
func NewOutboxRepo(db db) OutboxRepo {
	return &pgOutboxRepo{db: db}
}

func (r *pgOutboxRepo) Enqueue(ctx context.Context, email domain.OutboxEmail) (domain.OutboxEmail, error) {
	result, err := insertOutboxEmail(ctx, r.db, email)
	if err != nil {
		return domain.OutboxEmail{}, fmt.Errorf("repo.OutboxRepo.Enqueue: %w", err)
	}
	return result, nil
}

func (r *pgOutboxRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.OutboxEmail, error) {
	const q = `
		SELECT id, recipient, subject, body_html, status, attempt_count, next_attempt_at, receipt, created_at, updated_at
		FROM email_outbox
		WHERE status = 'pending' AND next_attempt_at <= @now
		ORDER BY next_attempt_at ASC
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"now": now, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.OutboxRepo.ListDue: %w", err)
	}
	defer rows.Close()

	var emails []domain.OutboxEmail
	for rows.Next() {
		e, err := scanOutboxEmail(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.OutboxRepo.ListDue: scan: %w", err)
		}
		emails = append(emails, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.OutboxRepo.ListDue: rows: %w", err)
	}

	return emails, nil
}

func (r *pgOutboxRepo) MarkSent(ctx context.Context, id uuid.UUID, receipt string) error {
	const q = `
		UPDATE email_outbox
		SET status = 'sent', receipt = @receipt, updated_at = now()
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "receipt": receipt})
	if err != nil {
		return fmt.Errorf("repo.OutboxRepo.MarkSent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.OutboxRepo.MarkSent: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgOutboxRepo) Reschedule(ctx context.Context, id uuid.UUID, nextAttemptAt time.Time) error {
	const q = `
		UPDATE email_outbox
		SET attempt_count = attempt_count + 1, next_attempt_at = @next_attempt_at, updated_at = now()
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "next_attempt_at": nextAttemptAt})
	if err != nil {
		return fmt.Errorf("repo.OutboxRepo.Reschedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.OutboxRepo.Reschedule: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgOutboxRepo) MarkFailed(ctx context.Context, id uuid.UUID) error {
	const q = `
		UPDATE email_outbox
		SET status = 'failed', attempt_count = attempt_count + 1, updated_at = now()
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.OutboxRepo.MarkFailed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.OutboxRepo.MarkFailed: %w", domain.ErrNotFound)
	}
	return nil
}

// insertOutboxEmail runs the outbox INSERT on the given executor so it can
// participate in a caller-managed transaction alongside participant or trip
// inserts.
func insertOutboxEmail(ctx context.Context, db db, email domain.OutboxEmail) (domain.OutboxEmail, error) {
	const q = `
		INSERT INTO email_outbox (recipient, subject, body_html)
		VALUES (@recipient, @subject, @body_html)
		RETURNING id, recipient, subject, body_html, status, attempt_count, next_attempt_at, receipt, created_at, updated_at`

	args := pgx.NamedArgs{
		"recipient": email.Recipient,
		"subject":   email.Subject,
		"body_html": email.BodyHTML,
	}

	return scanOutboxEmail(db.QueryRow(ctx, q, args))
}

func scanOutboxEmail(s scanner) (domain.OutboxEmail, error) {
	var (
		e  domain.OutboxEmail
		id pgtype.UUID
	)

	err := s.Scan(&id, &e.Recipient, &e.Subject, &e.BodyHTML, &e.Status, &e.AttemptCount, &e.NextAttemptAt, &e.Receipt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.OutboxEmail{}, domain.ErrNotFound
		}
		return domain.OutboxEmail{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	return e, nil
}
