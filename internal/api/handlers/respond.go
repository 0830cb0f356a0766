package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/casavia/casavia-be/internal/services"
	"github.com/rs/zerolog/log"
)

// errorResponse is the JSON body of every failure response.
type errorResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response body")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message})
}

// respondServiceError maps a service error onto an HTTP status. Unexpected
// errors are logged with detail and reported generically; nothing internal
// leaks to the caller.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		respondError(w, http.StatusConflict, "Username already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrNotHost):
		respondError(w, http.StatusForbidden, "This account is not a host account. Please login as a user.")
	case errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrCapacityExceeded):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("Unexpected service error")
		respondError(w, http.StatusInternalServerError, "An internal server error occurred")
	}
}
