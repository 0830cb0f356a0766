package handlers

import (
	"net/http"
	"strconv"

	"github.com/casavia/casavia-be/internal/services"
	"github.com/rs/zerolog/log"
)

const defaultEventLimit = 50

// EventHandler handles HTTP requests for the event log.
type EventHandler struct {
	events services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(events services.EventServiceProvider) *EventHandler {
	return &EventHandler{events: events}
}

// Recent returns the newest events, most recent first. The optional limit
// query parameter caps the result.
func (h *EventHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := defaultEventLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	events, err := h.events.GetRecentEvents(limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve events")
		respondError(w, http.StatusInternalServerError, "An internal server error occurred")
		return
	}

	respondJSON(w, http.StatusOK, events)
}
