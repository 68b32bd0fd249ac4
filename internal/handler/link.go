package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/plannerhq/planner-api/internal/domain"
)

type createLinkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type linkListResponse struct {
	Links []domain.Link `json:"links"`
}

// CreateLink handles POST /trips/{tripID}/links.
func (s *Server) CreateLink(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	var req createLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	created, err := s.links.Create(r.Context(), domain.Link{
		TripID: tripID,
		Title:  req.Title,
		URL:    req.URL,
	})
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]uuid.UUID{"linkId": created.ID})
}

// ListLinks handles GET /trips/{tripID}/links.
func (s *Server) ListLinks(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	links, err := s.links.ListByTrip(r.Context(), tripID)
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, linkListResponse{Links: links})
}
