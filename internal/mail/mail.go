// Package mail defines the outbound email contract for the trip planner and
// its SMTP implementation. Services never talk to a transport directly: they
// render copy with the Composer and enqueue it; the outbox worker hands the
// queued rows to a Dispatcher.
package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Message is the structured email handed to a Dispatcher: sender identity,
// recipient, subject, HTML body. It is an ephemeral value, built per
// delivery attempt from an outbox row and discarded afterwards.
type Message struct {
	FromName    string
	FromAddress string
	To          string
	Subject     string
	BodyHTML    string
}

// Dispatcher delivers one message and returns a delivery receipt: the
// transport's message identifier, used only for logging.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) (receipt string, err error)
}

// ParticipantConfirmationURL builds the link a participant clicks to confirm
// their attendance: {base}/participants/{id}/confirm.
func ParticipantConfirmationURL(base string, participantID uuid.UUID) string {
	return fmt.Sprintf("%s/participants/%s/confirm", strings.TrimRight(base, "/"), participantID)
}

// TripConfirmationURL builds the link the trip owner clicks to confirm the
// trip: {base}/trips/{id}/confirm.
func TripConfirmationURL(base string, tripID uuid.UUID) string {
	return fmt.Sprintf("%s/trips/%s/confirm", strings.TrimRight(base, "/"), tripID)
}
