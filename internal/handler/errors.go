package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/plannerhq/planner-api/internal/domain"
)

// errorDetail is the machine-readable error payload.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the envelope for every non-2xx JSON response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// writeError maps a service error onto the HTTP response: domain.ErrNotFound
// becomes 404 with the supplied message, domain.ErrValidation becomes 422
// with the rule that failed, everything else is a logged 500 with no detail
// leaked to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody(notFoundMessage))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	default:
		slog.ErrorContext(r.Context(), "request failed", "error", err, "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorDetail{Code: "internal_error", Message: "internal server error"},
		})
	}
}

// notFoundBody returns an errorResponse for a missing resource.
// The caller supplies the human-readable message (e.g. "trip not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an errorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) errorResponse {
	return errorResponse{Error: errorDetail{Code: "validation_error", Message: unwrapMessage(err)}}
}

// requestBody returns an errorResponse for a bad request rejected before
// reaching the service layer (malformed JSON, bad UUID, bad email syntax).
func requestBody(message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: "validation_error", Message: message}}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error by cutting at the last occurrence of the sentinel's own text. That
// strips however many "service.X.Op:" wrap layers precede it without the
// handler having to know each service method by name.
// e.g. "service.TripService.Create: validation error: owner name is required"
// → "owner name is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
