package handler

import (
	"net/http"

	"github.com/plannerhq/planner-api/internal/domain"
)

type participantResponse struct {
	Participant domain.Participant `json:"participant"`
}

type participantListResponse struct {
	Participants []domain.Participant `json:"participants"`
	Pagination   pagination           `json:"pagination"`
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// GetParticipant handles GET /participants/{participantID}.
func (s *Server) GetParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "participantID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	participant, err := s.participants.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "participant not found")
		return
	}

	writeJSON(w, http.StatusOK, participantResponse{Participant: participant})
}

// ConfirmParticipant handles GET /participants/{participantID}/confirm.
// The participant clicks this link from their invite email; after flipping
// state (idempotently) they are redirected to the trip page in the web app.
func (s *Server) ConfirmParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "participantID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	participant, err := s.participants.Confirm(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "participant not found")
		return
	}

	http.Redirect(w, r, s.tripPageURL(participant.TripID), http.StatusFound)
}

// ListParticipants handles GET /trips/{tripID}/participants.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20,
// max=100). The trip owner is not included.
func (s *Server) ListParticipants(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	params := domain.NewPaginationParams(intQuery(r, "page"), intQuery(r, "limit"))
	participants, total, err := s.participants.ListByTrip(r.Context(), tripID, params)
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, participantListResponse{
		Participants: participants,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}
