package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/plannerhq/planner-api/internal/domain"
)

type createActivityRequest struct {
	Title    string    `json:"title"`
	OccursAt time.Time `json:"occurs_at"`
}

type activityListResponse struct {
	Activities []domain.ActivityDay `json:"activities"`
}

// CreateActivity handles POST /trips/{tripID}/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	var req createActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	created, err := s.activities.Create(r.Context(), domain.Activity{
		TripID:   tripID,
		Title:    req.Title,
		OccursAt: req.OccursAt,
	})
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]uuid.UUID{"activityId": created.ID})
}

// ListActivities handles GET /trips/{tripID}/activities.
// Returns one entry per trip day, each with that day's activities ordered by
// occurrence time.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	days, err := s.activities.ListByTrip(r.Context(), tripID)
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, activityListResponse{Activities: days})
}
