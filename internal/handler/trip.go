package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/service"
)

// createTripRequest is the body of POST /trips. Email fields use the
// oapi-codegen runtime Email type, which rejects malformed addresses during
// JSON decoding, so syntax validation happens at the boundary before any
// workflow runs.
type createTripRequest struct {
	Destination    string                `json:"destination"`
	StartsAt       time.Time             `json:"starts_at"`
	EndsAt         time.Time             `json:"ends_at"`
	OwnerName      string                `json:"owner_name"`
	OwnerEmail     openapi_types.Email   `json:"owner_email"`
	EmailsToInvite []openapi_types.Email `json:"emails_to_invite"`
}

type updateTripRequest struct {
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

type tripResponse struct {
	Trip domain.Trip `json:"trip"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	emails := make([]string, len(req.EmailsToInvite))
	for i, e := range req.EmailsToInvite {
		emails[i] = string(e)
	}

	created, err := s.trips.Create(r.Context(), service.CreateTripInput{
		Destination:    req.Destination,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		OwnerName:      req.OwnerName,
		OwnerEmail:     string(req.OwnerEmail),
		EmailsToInvite: emails,
	})
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]uuid.UUID{"tripId": created.ID})
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "tripID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, tripResponse{Trip: trip})
}

// UpdateTrip handles PUT /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "tripID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	var req updateTripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	updated, err := s.trips.Update(r.Context(), domain.Trip{
		ID:          id,
		Destination: req.Destination,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]uuid.UUID{"tripId": updated.ID})
}

// ConfirmTrip handles GET /trips/{tripID}/confirm.
// Confirming queues the invite emails (first time only) and redirects the
// owner to the trip page in the web app.
func (s *Server) ConfirmTrip(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "tripID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	trip, err := s.trips.Confirm(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	http.Redirect(w, r, s.tripPageURL(trip.ID), http.StatusFound)
}

// tripPageURL is the frontend destination for confirmation redirects.
func (s *Server) tripPageURL(tripID uuid.UUID) string {
	return s.webBaseURL + "/trips/" + tripID.String()
}
