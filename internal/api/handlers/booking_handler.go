package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/casavia/casavia-be/internal/auth"
	"github.com/casavia/casavia-be/internal/metrics"
	"github.com/casavia/casavia-be/internal/services"
	"github.com/rs/zerolog/log"
)

// BookingHandler handles HTTP requests for the booking ledger.
type BookingHandler struct {
	bookings  services.BookingServiceProvider
	events    services.EventServiceProvider
	collector *metrics.Collector
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookings services.BookingServiceProvider, events services.EventServiceProvider, collector *metrics.Collector) *BookingHandler {
	return &BookingHandler{bookings: bookings, events: events, collector: collector}
}

// Create runs the reservation workflow for the authenticated caller.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input services.NewBookingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	booking, err := h.bookings.CreateBooking(claims.UserID, input)
	if err != nil {
		h.collector.RecordBookingRejected(rejectionReason(err))
		respondServiceError(w, err)
		return
	}

	h.collector.RecordBookingCreated()
	if err := h.events.CreateEvent("booking.created", "info", "Booking "+booking.BookingID+" created for "+booking.Property.Name, &booking.BookingID); err != nil {
		log.Warn().Err(err).Msg("Failed to record booking event")
	}

	respondJSON(w, http.StatusCreated, booking)
}

// List returns the authenticated caller's bookings.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bookings, err := h.bookings.GetBookingsByUser(claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to list bookings")
		respondError(w, http.StatusInternalServerError, "An internal server error occurred")
		return
	}

	respondJSON(w, http.StatusOK, bookings)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, services.ErrMissingFields):
		return "missing_fields"
	case errors.Is(err, services.ErrNotFound):
		return "property_not_found"
	case errors.Is(err, services.ErrInvalidDateRange):
		return "invalid_date_range"
	case errors.Is(err, services.ErrCapacityExceeded):
		return "capacity_exceeded"
	default:
		return "internal"
	}
}
