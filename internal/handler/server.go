// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, invite.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, in service.CreateTripInput) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

// InviteServicer defines the invite workflow operation.
type InviteServicer interface {
	CreateInvite(ctx context.Context, tripID uuid.UUID, email string) (domain.Participant, error)
}

// ParticipantServicer defines the participant operations, including the
// confirmation workflow.
type ParticipantServicer interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams) ([]domain.Participant, int64, error)
}

// ActivityServicer defines the itinerary operations.
type ActivityServicer interface {
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ActivityDay, error)
}

// LinkServicer defines the trip link operations.
type LinkServicer interface {
	Create(ctx context.Context, l domain.Link) (domain.Link, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

// Server holds the dependencies for all API endpoints.
// webBaseURL is where the confirmation endpoints redirect after flipping
// state: the frontend trip page.
type Server struct {
	trips        TripServicer
	invites      InviteServicer
	participants ParticipantServicer
	activities   ActivityServicer
	links        LinkServicer
	webBaseURL   string
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, invites InviteServicer, participants ParticipantServicer, activities ActivityServicer, links LinkServicer, webBaseURL string) *Server {
	return &Server{
		trips:        trips,
		invites:      invites,
		participants: participants,
		activities:   activities,
		links:        links,
		webBaseURL:   webBaseURL,
	}
}

// RegisterRoutes mounts every API endpoint on the given router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Get("/confirm", s.ConfirmTrip)
			r.Post("/invites", s.CreateInvite)
			r.Get("/participants", s.ListParticipants)
			r.Post("/activities", s.CreateActivity)
			r.Get("/activities", s.ListActivities)
			r.Post("/links", s.CreateLink)
			r.Get("/links", s.ListLinks)
		})
	})

	r.Route("/participants/{participantID}", func(r chi.Router) {
		r.Get("/", s.GetParticipant)
		r.Get("/confirm", s.ConfirmParticipant)
	})
}
