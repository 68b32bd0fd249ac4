package handler

import (
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// createInviteRequest is the body of POST /trips/{tripID}/invites.
// The Email type rejects malformed addresses during decoding.
type createInviteRequest struct {
	Email openapi_types.Email `json:"email"`
}

// CreateInvite handles POST /trips/{tripID}/invites.
// Responds 200 with the new participant's id. The web app depends on this
// exact shape, so it stays 200 rather than 201.
func (s *Server) CreateInvite(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	var req createInviteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	participant, err := s.invites.CreateInvite(r.Context(), tripID, string(req.Email))
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]uuid.UUID{"participantId": participant.ID})
}
