package domain

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus is the delivery state of an outbox row.
type EmailStatus string

const (
	// EmailStatusPending marks a row awaiting delivery (or retry).
	EmailStatusPending EmailStatus = "pending"
	// EmailStatusSent marks a row that was handed to the SMTP server.
	EmailStatusSent EmailStatus = "sent"
	// EmailStatusFailed marks a row that exhausted its delivery attempts.
	EmailStatusFailed EmailStatus = "failed"
)

// OutboxEmail is one email queued for delivery. Rows are written in the same
// transaction as the domain change that caused them (participant invite, trip
// creation), so a committed write and its notification are atomic. The
// subject and body are rendered at enqueue time and immutable afterwards.
type OutboxEmail struct {
	ID            uuid.UUID
	Recipient     string
	Subject       string
	BodyHTML      string
	Status        EmailStatus
	AttemptCount  int
	NextAttemptAt time.Time
	// Receipt is the message id reported by the SMTP transport after a
	// successful send. Empty until the row is marked sent.
	Receipt   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
