// Package service contains the business logic for the trip planner API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"github.com/plannerhq/planner-api/internal/domain"
)

// Composer renders outbox emails for domain events. Satisfied by
// mail.Composer; tests inject a fake to inspect the rendered rows.
type Composer interface {
	InviteEmail(trip domain.Trip, p domain.Participant) (domain.OutboxEmail, error)
	TripConfirmationEmail(trip domain.Trip, owner domain.Participant) (domain.OutboxEmail, error)
}

// Nudger wakes the outbox worker after emails are enqueued so delivery does
// not wait for the next polling tick. Satisfied by outbox.Worker.
type Nudger interface {
	Nudge()
}

// nudge is nil-safe: services constructed without a worker (tests, one-off
// tools) simply skip the wake-up.
func nudge(n Nudger) {
	if n != nil {
		n.Nudge()
	}
}
