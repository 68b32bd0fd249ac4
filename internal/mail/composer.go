package mail

import (
	"fmt"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/mail/render"
)

// Composer turns domain events into ready-to-queue outbox rows.
// It owns the API base URL used in confirmation links; the sender identity is
// applied later by the outbox worker, which is the component that talks to
// the transport.
type Composer struct {
	renderer   *render.Renderer
	apiBaseURL string
}

// NewComposer constructs a Composer rendering with the given Renderer and
// building confirmation links on apiBaseURL.
func NewComposer(renderer *render.Renderer, apiBaseURL string) *Composer {
	return &Composer{renderer: renderer, apiBaseURL: apiBaseURL}
}

// InviteEmail composes the confirmation email for one invited participant.
// The participant must already carry its id; the link embeds it.
func (c *Composer) InviteEmail(trip domain.Trip, p domain.Participant) (domain.OutboxEmail, error) {
	link := ParticipantConfirmationURL(c.apiBaseURL, p.ID)
	email, err := c.renderer.InviteEmail(trip.Destination, trip.StartsAt, trip.EndsAt, link)
	if err != nil {
		return domain.OutboxEmail{}, fmt.Errorf("mail.Composer.InviteEmail: %w", err)
	}

	return domain.OutboxEmail{
		Recipient: p.Email,
		Subject:   email.Subject,
		BodyHTML:  email.BodyHTML,
	}, nil
}

// TripConfirmationEmail composes the email asking the trip owner to confirm
// the newly created trip.
func (c *Composer) TripConfirmationEmail(trip domain.Trip, owner domain.Participant) (domain.OutboxEmail, error) {
	link := TripConfirmationURL(c.apiBaseURL, trip.ID)
	email, err := c.renderer.TripConfirmationEmail(trip.Destination, trip.StartsAt, trip.EndsAt, link)
	if err != nil {
		return domain.OutboxEmail{}, fmt.Errorf("mail.Composer.TripConfirmationEmail: %w", err)
	}

	return domain.OutboxEmail{
		Recipient: owner.Email,
		Subject:   email.Subject,
		BodyHTML:  email.BodyHTML,
	}, nil
}
