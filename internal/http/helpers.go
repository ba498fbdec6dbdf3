package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/courtreign/courtreign/internal/invitations"
	"github.com/courtreign/courtreign/internal/matches"
	"github.com/courtreign/courtreign/internal/presence"
)

// errorResponse is the uniform error payload.
type errorResponse struct {
	Error          string   `json:"error"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// respondError maps the service error kinds onto HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	var tooFar *presence.TooFarError
	if errors.As(err, &tooFar) {
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Error:          tooFar.Error(),
			DistanceMeters: &tooFar.DistanceMeters,
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, invitations.ErrNotFound),
		errors.Is(err, invitations.ErrVenueNotFound),
		errors.Is(err, invitations.ErrSportNotFound),
		errors.Is(err, matches.ErrNotFound),
		errors.Is(err, presence.ErrVenueNotFound):
		status = http.StatusNotFound
	case errors.Is(err, invitations.ErrForbidden),
		errors.Is(err, matches.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, invitations.ErrNotPending),
		errors.Is(err, invitations.ErrDuplicatePending),
		errors.Is(err, matches.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, invitations.ErrSelfInvitation),
		errors.Is(err, invitations.ErrPastSchedule):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
	}
	respondJSON(w, status, errorResponse{Error: err.Error()})
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}
